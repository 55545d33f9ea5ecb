package repository

import (
	"github.com/shopspring/decimal"

	"github.com/andilac/lacteos-api/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar stock por bodega+producto.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	Get(productID, warehouseID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(productID, warehouseID string) (*entity.Stock, error)
	// TotalByProduct suma el stock de un producto en todas las bodegas.
	TotalByProduct(productID string) (decimal.Decimal, error)
	ListByProduct(productID string) ([]*entity.Stock, error)
}
