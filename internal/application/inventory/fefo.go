package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andilac/lacteos-api/internal/domain"
	"github.com/andilac/lacteos-api/internal/domain/entity"
	"github.com/andilac/lacteos-api/internal/domain/repository"
)

// BatchConsumption cantidad consumida de un lote concreto.
type BatchConsumption struct {
	BatchID  string
	Code     string
	Quantity decimal.Decimal
}

// ConsumeFEFO consume la cantidad pedida de los lotes activos de un producto en
// una bodega, en orden de vencimiento más próximo primero (First-Expiry-First-Out).
// Los lotes vencidos a la fecha se saltan; un lote que llega a cero queda depleted.
// Debe llamarse dentro de una transacción: muta los lotes vía el repositorio recibido.
func ConsumeFEFO(batchRepo repository.BatchRepository, productID, warehouseID string, quantity decimal.Decimal, now time.Time) ([]BatchConsumption, error) {
	batches, err := batchRepo.ListActiveFEFO(productID, warehouseID)
	if err != nil {
		return nil, err
	}

	remaining := quantity
	var consumed []BatchConsumption
	for _, b := range batches {
		if !remaining.GreaterThan(decimal.Zero) {
			break
		}
		if b.IsExpiredAt(now) || !b.CurrentQuantity.GreaterThan(decimal.Zero) {
			continue
		}
		take := decimal.Min(b.CurrentQuantity, remaining)
		b.CurrentQuantity = b.CurrentQuantity.Sub(take)
		if b.CurrentQuantity.IsZero() {
			b.Status = entity.BatchStatusDepleted
		}
		b.UpdatedAt = now
		if err := batchRepo.Update(b); err != nil {
			return nil, err
		}
		consumed = append(consumed, BatchConsumption{BatchID: b.ID, Code: b.Code, Quantity: take})
		remaining = remaining.Sub(take)
	}
	if remaining.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInsufficientStock
	}
	return consumed, nil
}
