package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andilac/lacteos-api/internal/application/dto"
	"github.com/andilac/lacteos-api/internal/domain"
	"github.com/andilac/lacteos-api/internal/domain/entity"
	"github.com/andilac/lacteos-api/internal/domain/repository"
)

// QueryUseCase consultas de inventario: validación de salidas, stock bajo,
// lotes por vencer y kardex.
type QueryUseCase struct {
	stockRepo    repository.StockRepository
	productRepo  repository.ProductRepository
	batchRepo    repository.BatchRepository
	movementRepo repository.InventoryMovementRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	batchRepo repository.BatchRepository,
	movementRepo repository.InventoryMovementRepository,
) *QueryUseCase {
	return &QueryUseCase{
		stockRepo:    stockRepo,
		productRepo:  productRepo,
		batchRepo:    batchRepo,
		movementRepo: movementRepo,
	}
}

// ValidateStockForExit verifica si hay stock disponible para una salida.
// valid == true si y solo si quantity <= available. Con warehouseID vacío
// se evalúa el stock global del producto.
func (uc *QueryUseCase) ValidateStockForExit(productID string, quantity decimal.Decimal, warehouseID string) (*dto.ValidateExitResponse, error) {
	if productID == "" || !quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	var available decimal.Decimal
	if warehouseID != "" {
		stock, err := uc.stockRepo.Get(productID, warehouseID)
		if err != nil {
			return nil, err
		}
		if stock != nil {
			available = stock.Quantity
		}
	} else {
		available, err = uc.stockRepo.TotalByProduct(productID)
		if err != nil {
			return nil, err
		}
	}

	resp := &dto.ValidateExitResponse{Available: available}
	if quantity.LessThanOrEqual(available) {
		resp.Valid = true
		resp.Message = "stock disponible"
	} else {
		resp.Valid = false
		resp.Message = fmt.Sprintf("stock insuficiente: disponible %s, solicitado %s", available.String(), quantity.String())
	}
	return resp, nil
}

// GetProductStock devuelve el stock total de un producto (todas las bodegas).
func (uc *QueryUseCase) GetProductStock(productID string) (decimal.Decimal, error) {
	return uc.stockRepo.TotalByProduct(productID)
}

// LowStockProducts devuelve los productos cuyo stock total está por debajo del mínimo.
func (uc *QueryUseCase) LowStockProducts() ([]dto.LowStockProductResponse, error) {
	products, err := uc.productRepo.ListBelowMinStock()
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockProductResponse, 0, len(products))
	for _, p := range products {
		available, err := uc.stockRepo.TotalByProduct(p.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.LowStockProductResponse{
			ProductID: p.ID,
			Code:      p.Code,
			Name:      p.Name,
			MinStock:  p.MinStock,
			Available: available,
		})
	}
	return out, nil
}

// ExpiringBatches devuelve los lotes activos que vencen dentro de los próximos días.
func (uc *QueryUseCase) ExpiringBatches(days int) ([]dto.BatchResponse, error) {
	if days <= 0 {
		days = 7
	}
	limit := time.Now().AddDate(0, 0, days)
	batches, err := uc.batchRepo.ListExpiringBefore(limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, ToBatchResponse(b))
	}
	return out, nil
}

// ListBatches lista lotes con filtros opcionales.
func (uc *QueryUseCase) ListBatches(productID, warehouseID, status string, limit, offset int) ([]dto.BatchResponse, error) {
	batches, err := uc.batchRepo.List(productID, warehouseID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, ToBatchResponse(b))
	}
	return out, nil
}

// GetBatch obtiene un lote por ID.
func (uc *QueryUseCase) GetBatch(id string) (*dto.BatchResponse, error) {
	batch, err := uc.batchRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	resp := ToBatchResponse(batch)
	return &resp, nil
}

// ListMovements kardex simple: movimientos filtrados por producto/bodega/fechas.
func (uc *QueryUseCase) ListMovements(filter repository.MovementFilter) ([]dto.MovementResponse, error) {
	movements, err := uc.movementRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, ToMovementResponse(m))
	}
	return out, nil
}

// BatchForLabel obtiene el lote y su producto para generar la etiqueta PDF.
func (uc *QueryUseCase) BatchForLabel(id string) (*entity.Batch, *entity.Product, error) {
	batch, err := uc.batchRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if batch == nil {
		return nil, nil, domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(batch.ProductID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, domain.ErrNotFound
	}
	return batch, product, nil
}

// ToMovementResponse mapea un movimiento a su DTO.
func ToMovementResponse(m *entity.InventoryMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:                m.ID,
		TransactionID:     m.TransactionID,
		Type:              m.Type,
		ProductID:         m.ProductID,
		WarehouseID:       m.WarehouseID,
		BatchID:           m.BatchID,
		PurchaseOrderID:   m.PurchaseOrderID,
		ProductionOrderID: m.ProductionOrderID,
		Quantity:          m.Quantity,
		UnitCost:          m.UnitCost,
		TotalCost:         m.TotalCost,
		Reason:            m.Reason,
		ResponsibleID:     m.ResponsibleID,
		Date:              m.Date,
	}
}

// ToBatchResponse mapea un lote a su DTO.
func ToBatchResponse(b *entity.Batch) dto.BatchResponse {
	return dto.BatchResponse{
		ID:              b.ID,
		Code:            b.Code,
		ProductID:       b.ProductID,
		WarehouseID:     b.WarehouseID,
		PurchaseOrderID: b.PurchaseOrderID,
		InitialQuantity: b.InitialQuantity,
		CurrentQuantity: b.CurrentQuantity,
		EntryDate:       b.EntryDate,
		ExpiryDate:      b.ExpiryDate,
		QRCode:          b.QRCode,
		Status:          b.Status,
	}
}

// RegisterMovementFromRequest adapta el request HTTP al caso de uso RegisterMovement.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, responsibleID string, in dto.RegisterMovementRequest) (*MovementResult, error) {
	input := MovementInput{
		ResponsibleID:   responsibleID,
		ProductID:       in.ProductID,
		WarehouseID:     in.WarehouseID,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Type:            in.Type,
		Quantity:        in.Quantity,
		UnitCost:        in.UnitCost,
		ExpiryDate:      in.ExpiryDate,
		Reason:          in.Reason,
	}
	return uc.RegisterMovement(ctx, input)
}
