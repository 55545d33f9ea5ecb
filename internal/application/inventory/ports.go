package inventory

import (
	"context"

	"github.com/andilac/lacteos-api/internal/domain/entity"
	"github.com/andilac/lacteos-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción de BD.
// El motor de inventario y los casos de uso que lo componen (recepción masiva,
// cierre de producción) trabajan siempre sobre este conjunto.
type TxRepos struct {
	Movements  repository.InventoryMovementRepository
	Stock      repository.StockRepository
	Batches    repository.BatchRepository
	Products   repository.ProductRepository
	Orders     repository.PurchaseOrderRepository
	Production repository.ProductionOrderRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad: Commit si fn retorna nil, Rollback si no.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}

// BatchLabelGenerator puerto de generación de la etiqueta PDF de un lote (con QR).
type BatchLabelGenerator interface {
	GenerateBatchLabel(batch *entity.Batch, product *entity.Product) ([]byte, error)
}
