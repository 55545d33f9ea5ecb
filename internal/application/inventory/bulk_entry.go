package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andilac/lacteos-api/internal/application/dto"
	"github.com/andilac/lacteos-api/internal/domain"
	"github.com/andilac/lacteos-api/internal/domain/entity"
	"github.com/andilac/lacteos-api/internal/domain/repository"
	"github.com/andilac/lacteos-api/internal/domain/workflow"
)

// BulkEntryUseCase recepción masiva de una orden de compra: una entrada por línea
// recibida, lote por producto almacenado por lotes, y transición issued -> received,
// todo dentro de una sola transacción (rollback ante cualquier falla parcial).
type BulkEntryUseCase struct {
	txRunner    TxRunner
	movementUC  *RegisterMovementUseCase
	orderRepo   repository.PurchaseOrderRepository
	productRepo repository.ProductRepository
}

// NewBulkEntryUseCase construye el caso de uso.
func NewBulkEntryUseCase(
	txRunner TxRunner,
	movementUC *RegisterMovementUseCase,
	orderRepo repository.PurchaseOrderRepository,
	productRepo repository.ProductRepository,
) *BulkEntryUseCase {
	return &BulkEntryUseCase{
		txRunner:    txRunner,
		movementUC:  movementUC,
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// BulkEntryFromPurchaseOrder registra las entradas contra la orden. La orden debe
// estar en estado issued; al confirmar la recepción pasa a received.
func (uc *BulkEntryUseCase) BulkEntryFromPurchaseOrder(ctx context.Context, responsibleID, orderID string, in dto.BulkEntryRequest) (*dto.BulkEntryResponse, error) {
	if len(in.Entries) == 0 {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if !workflow.PurchaseOrderMachine.CanTransition(order.Status, entity.OrderStatusReceived) {
		return nil, domain.ErrInvalidTransition
	}

	// Costos por producto según la orden, para defaults
	orderCosts := make(map[string]decimal.Decimal, len(order.Items))
	for _, item := range order.Items {
		orderCosts[item.ProductID] = item.UnitCost
	}

	// Productos validados fuera de la tx (solo lectura)
	products := make(map[string]*entity.Product, len(in.Entries))
	for _, e := range in.Entries {
		if !e.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if _, ok := products[e.ProductID]; ok {
			continue
		}
		p, err := uc.productRepo.GetByID(e.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		if p.RequiresExpiryControl && e.ExpiryDate == nil {
			return nil, domain.ErrInvalidInput
		}
		products[e.ProductID] = p
	}

	now := time.Now()
	txID := uuid.New().String()
	result := &MovementResult{}

	err = uc.txRunner.Run(ctx, func(r TxRepos) error {
		for _, e := range in.Entries {
			unitCost := orderCosts[e.ProductID]
			if e.UnitCost != nil {
				unitCost = *e.UnitCost
			}
			input := MovementInput{
				ResponsibleID:   responsibleID,
				ProductID:       e.ProductID,
				WarehouseID:     e.WarehouseID,
				Type:            entity.MovementTypeEntry,
				Quantity:        e.Quantity,
				UnitCost:        &unitCost,
				ExpiryDate:      e.ExpiryDate,
				Reason:          fmt.Sprintf("recepción orden %s", order.Number),
				PurchaseOrderID: order.ID,
			}
			if err := uc.movementUC.EntryInTx(r, products[e.ProductID], input, now, txID, result); err != nil {
				return err
			}
		}
		// La recepción completa mueve la orden a received
		next, err := workflow.PurchaseOrderMachine.Transition(order.Status, entity.OrderStatusReceived)
		if err != nil {
			return err
		}
		order.Status = next
		order.UpdatedAt = now
		return r.Orders.Update(order)
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.BulkEntryResponse{
		Success: true,
		Message: fmt.Sprintf("%d movimientos registrados, %d lotes creados", len(result.Movements), len(result.Batches)),
	}
	for _, m := range result.Movements {
		resp.Movements = append(resp.Movements, ToMovementResponse(m))
	}
	for _, b := range result.Batches {
		resp.Batches = append(resp.Batches, ToBatchResponse(b))
	}
	return resp, nil
}
