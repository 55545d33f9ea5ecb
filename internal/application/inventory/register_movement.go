package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andilac/lacteos-api/internal/domain"
	"github.com/andilac/lacteos-api/internal/domain/entity"
	domaininv "github.com/andilac/lacteos-api/internal/domain/inventory"
	"github.com/andilac/lacteos-api/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos de inventario de forma transaccional
// (entry, exit, adjustment, transfer) con bloqueo de fila y Commit/Rollback.
// Para productos por lote las entradas crean un lote y las salidas consumen
// lotes FEFO (primero el de vencimiento más próximo).
type RegisterMovementUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// MovementInput entrada para registrar un movimiento de inventario.
// Para entry/exit/adjustment: ProductID, WarehouseID, Type, Quantity; UnitCost
// obligatorio en entradas. Para transfer: FromWarehouseID y ToWarehouseID.
type MovementInput struct {
	ResponsibleID   string
	ProductID       string
	WarehouseID     string
	FromWarehouseID string
	ToWarehouseID   string
	Type            string
	Quantity        decimal.Decimal
	UnitCost        *decimal.Decimal
	ExpiryDate      *time.Time
	Reason          string
	// Referencias opcionales para trazabilidad
	PurchaseOrderID   string
	ProductionOrderID string
}

// MovementResult movimientos y lotes generados por la operación.
type MovementResult struct {
	Movements []*entity.InventoryMovement
	Batches   []*entity.Batch
}

// RegisterMovement valida la entrada, abre una transacción y aplica la lógica según tipo.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInput) (*MovementResult, error) {
	if err := uc.validate(input); err != nil {
		return nil, err
	}

	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.RequiresExpiryControl && input.Type == entity.MovementTypeEntry && input.ExpiryDate == nil {
		return nil, domain.ErrInvalidInput
	}

	if input.Type == entity.MovementTypeTransfer {
		fromWh, _ := uc.warehouseRepo.GetByID(input.FromWarehouseID)
		toWh, _ := uc.warehouseRepo.GetByID(input.ToWarehouseID)
		if fromWh == nil || toWh == nil {
			return nil, domain.ErrNotFound
		}
	} else {
		wh, _ := uc.warehouseRepo.GetByID(input.WarehouseID)
		if wh == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	txID := uuid.New().String()
	result := &MovementResult{}

	err = uc.txRunner.Run(ctx, func(r TxRepos) error {
		switch input.Type {
		case entity.MovementTypeEntry:
			return uc.doEntry(r, product, input, now, txID, result)
		case entity.MovementTypeExit:
			return uc.doExit(r, product, input, now, txID, result)
		case entity.MovementTypeAdjustment:
			return uc.doAdjustment(r, product, input, now, txID, result)
		case entity.MovementTypeTransfer:
			return uc.doTransfer(r, product, input, now, txID, result)
		}
		return domain.ErrInvalidInput
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *RegisterMovementUseCase) validate(input MovementInput) error {
	switch input.Type {
	case entity.MovementTypeEntry, entity.MovementTypeExit, entity.MovementTypeAdjustment:
		if input.ProductID == "" || input.WarehouseID == "" {
			return domain.ErrInvalidInput
		}
		if input.Quantity.IsZero() {
			return domain.ErrInvalidInput
		}
		if input.Type == entity.MovementTypeEntry {
			if input.UnitCost == nil || input.UnitCost.LessThan(decimal.Zero) {
				return domain.ErrInvalidInput
			}
			if input.Quantity.LessThan(decimal.Zero) {
				return domain.ErrInvalidInput
			}
		}
		if input.Type == entity.MovementTypeExit && input.Quantity.LessThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeTransfer:
		if input.ProductID == "" || input.FromWarehouseID == "" || input.ToWarehouseID == "" {
			return domain.ErrInvalidInput
		}
		if input.FromWarehouseID == input.ToWarehouseID || !input.Quantity.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// doEntry: bloquea la fila de stock, recalcula costo promedio, suma stock,
// crea lote si el producto se almacena por lotes y guarda el movimiento.
func (uc *RegisterMovementUseCase) doEntry(
	r TxRepos,
	product *entity.Product,
	input MovementInput,
	now time.Time, txID string,
	result *MovementResult,
) error {
	stock, err := getStockForUpdate(r.Stock, input.ProductID, input.WarehouseID, now)
	if err != nil {
		return err
	}
	unitCost := *input.UnitCost
	newCost := domaininv.CostCalculator(stock.Quantity, product.Cost, input.Quantity, unitCost)
	if err := r.Products.UpdateCost(input.ProductID, newCost); err != nil {
		return err
	}
	stock.Quantity = stock.Quantity.Add(input.Quantity)
	stock.UpdatedAt = now
	if err := r.Stock.Upsert(stock); err != nil {
		return err
	}

	batchID := ""
	if product.StorageType == entity.StorageTypeBatch {
		batch, err := createBatchInTx(r.Batches, product, input, now)
		if err != nil {
			return err
		}
		batchID = batch.ID
		result.Batches = append(result.Batches, batch)
	}

	mov := &entity.InventoryMovement{
		ID:                uuid.New().String(),
		TransactionID:     txID,
		Type:              input.Type,
		ProductID:         input.ProductID,
		WarehouseID:       input.WarehouseID,
		BatchID:           batchID,
		PurchaseOrderID:   input.PurchaseOrderID,
		ProductionOrderID: input.ProductionOrderID,
		Quantity:          input.Quantity,
		UnitCost:          unitCost,
		TotalCost:         input.Quantity.Mul(unitCost),
		Reason:            input.Reason,
		ResponsibleID:     input.ResponsibleID,
		Date:              now,
		CreatedAt:         now,
	}
	if err := r.Movements.Create(mov); err != nil {
		return err
	}
	result.Movements = append(result.Movements, mov)
	return nil
}

// doExit: bloquea la fila, verifica stock suficiente, resta y guarda el movimiento
// al costo promedio actual. Para productos por lote consume FEFO: puede generar
// varios movimientos, uno por lote afectado.
func (uc *RegisterMovementUseCase) doExit(
	r TxRepos,
	product *entity.Product,
	input MovementInput,
	now time.Time, txID string,
	result *MovementResult,
) error {
	stock, err := getStockForUpdate(r.Stock, input.ProductID, input.WarehouseID, now)
	if err != nil {
		return err
	}
	if stock.Quantity.LessThan(input.Quantity) {
		return domain.ErrInsufficientStock
	}
	stock.Quantity = stock.Quantity.Sub(input.Quantity)
	stock.UpdatedAt = now
	if err := r.Stock.Upsert(stock); err != nil {
		return err
	}

	unitCost := product.Cost
	if product.StorageType != entity.StorageTypeBatch {
		mov := exitMovement(input, "", unitCost, input.Quantity, now, txID)
		if err := r.Movements.Create(mov); err != nil {
			return err
		}
		result.Movements = append(result.Movements, mov)
		return nil
	}

	consumed, err := ConsumeFEFO(r.Batches, input.ProductID, input.WarehouseID, input.Quantity, now)
	if err != nil {
		return err
	}
	for _, c := range consumed {
		mov := exitMovement(input, c.BatchID, unitCost, c.Quantity, now, txID)
		if err := r.Movements.Create(mov); err != nil {
			return err
		}
		result.Movements = append(result.Movements, mov)
	}
	return nil
}

// doAdjustment: positivo como entrada, negativo como salida. El movimiento
// queda en el kardex con tipo adjustment.
func (uc *RegisterMovementUseCase) doAdjustment(
	r TxRepos,
	product *entity.Product,
	input MovementInput,
	now time.Time, txID string,
	result *MovementResult,
) error {
	adj := input
	adj.Type = entity.MovementTypeAdjustment
	if input.Quantity.GreaterThan(decimal.Zero) {
		unitCost := decimal.Zero
		if input.UnitCost != nil {
			unitCost = *input.UnitCost
		}
		adj.UnitCost = &unitCost
		return uc.doEntry(r, product, adj, now, txID, result)
	}
	adj.Quantity = input.Quantity.Neg()
	return uc.doExit(r, product, adj, now, txID, result)
}

// doTransfer: resta de bodega origen y suma en destino en la misma transacción.
// Para productos por lote consume FEFO en origen y crea un lote espejo en destino
// conservando el vencimiento.
func (uc *RegisterMovementUseCase) doTransfer(
	r TxRepos,
	product *entity.Product,
	input MovementInput,
	now time.Time, txID string,
	result *MovementResult,
) error {
	origin, err := getStockForUpdate(r.Stock, input.ProductID, input.FromWarehouseID, now)
	if err != nil {
		return err
	}
	if origin.Quantity.LessThan(input.Quantity) {
		return domain.ErrInsufficientStock
	}
	dest, err := getStockForUpdate(r.Stock, input.ProductID, input.ToWarehouseID, now)
	if err != nil {
		return err
	}
	origin.Quantity = origin.Quantity.Sub(input.Quantity)
	dest.Quantity = dest.Quantity.Add(input.Quantity)
	origin.UpdatedAt = now
	dest.UpdatedAt = now
	if err := r.Stock.Upsert(origin); err != nil {
		return err
	}
	if err := r.Stock.Upsert(dest); err != nil {
		return err
	}

	unitCost := product.Cost
	outMov := &entity.InventoryMovement{
		ID:            uuid.New().String(),
		TransactionID: txID,
		Type:          entity.MovementTypeTransfer,
		ProductID:     input.ProductID,
		WarehouseID:   input.FromWarehouseID,
		Quantity:      input.Quantity.Neg(),
		UnitCost:      unitCost,
		TotalCost:     input.Quantity.Neg().Mul(unitCost),
		Reason:        input.Reason,
		ResponsibleID: input.ResponsibleID,
		Date:          now,
		CreatedAt:     now,
	}
	inMov := &entity.InventoryMovement{
		ID:            uuid.New().String(),
		TransactionID: txID,
		Type:          entity.MovementTypeTransfer,
		ProductID:     input.ProductID,
		WarehouseID:   input.ToWarehouseID,
		Quantity:      input.Quantity,
		UnitCost:      unitCost,
		TotalCost:     input.Quantity.Mul(unitCost),
		Reason:        input.Reason,
		ResponsibleID: input.ResponsibleID,
		Date:          now,
		CreatedAt:     now,
	}

	if product.StorageType == entity.StorageTypeBatch {
		consumed, err := ConsumeFEFO(r.Batches, input.ProductID, input.FromWarehouseID, input.Quantity, now)
		if err != nil {
			return err
		}
		for _, c := range consumed {
			src, err := r.Batches.GetByID(c.BatchID)
			if err != nil || src == nil {
				return domain.ErrNotFound
			}
			mirror := &entity.Batch{
				ID:              uuid.New().String(),
				Code:            domaininv.LotCode(now),
				ProductID:       input.ProductID,
				WarehouseID:     input.ToWarehouseID,
				InitialQuantity: c.Quantity,
				CurrentQuantity: c.Quantity,
				EntryDate:       now,
				ExpiryDate:      src.ExpiryDate,
				Status:          entity.BatchStatusActive,
				CreatedAt:       now,
				UpdatedAt:       now,
			}
			mirror.QRCode = domaininv.BatchQRPayload(mirror.Code, mirror.ProductID, mirror.EntryDate, mirror.ExpiryDate)
			if err := r.Batches.Create(mirror); err != nil {
				return err
			}
			result.Batches = append(result.Batches, mirror)
		}
	}

	if err := r.Movements.Create(outMov); err != nil {
		return err
	}
	if err := r.Movements.Create(inMov); err != nil {
		return err
	}
	result.Movements = append(result.Movements, outMov, inMov)
	return nil
}

// EntryInTx ejecuta una entrada usando los repositorios del caller (misma transacción).
// Lo usan la recepción masiva de compras y el cierre de producción.
func (uc *RegisterMovementUseCase) EntryInTx(
	r TxRepos,
	product *entity.Product,
	input MovementInput,
	now time.Time, txID string,
	result *MovementResult,
) error {
	if input.UnitCost == nil || input.UnitCost.LessThan(decimal.Zero) || !input.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return uc.doEntry(r, product, input, now, txID, result)
}

// ExitInTx ejecuta una salida usando los repositorios del caller (misma transacción).
// Si no hay stock suficiente retorna ErrInsufficientStock y el caller debe hacer rollback.
func (uc *RegisterMovementUseCase) ExitInTx(
	r TxRepos,
	product *entity.Product,
	input MovementInput,
	now time.Time, txID string,
	result *MovementResult,
) error {
	if !input.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return uc.doExit(r, product, input, now, txID, result)
}

// getStockForUpdate bloquea la fila de stock, creándola en cero si no existe.
func getStockForUpdate(stockRepo repository.StockRepository, productID, warehouseID string, now time.Time) (*entity.Stock, error) {
	stock, err := stockRepo.GetForUpdate(productID, warehouseID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		stock = &entity.Stock{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero, UpdatedAt: now}
	}
	return stock, nil
}

// createBatchInTx crea el lote de una entrada con código LOT y payload QR.
func createBatchInTx(batchRepo repository.BatchRepository, product *entity.Product, input MovementInput, now time.Time) (*entity.Batch, error) {
	batch := &entity.Batch{
		ID:                uuid.New().String(),
		Code:              domaininv.LotCode(now),
		ProductID:         product.ID,
		WarehouseID:       input.WarehouseID,
		PurchaseOrderID:   input.PurchaseOrderID,
		ProductionOrderID: input.ProductionOrderID,
		InitialQuantity:   input.Quantity,
		CurrentQuantity:   input.Quantity,
		EntryDate:         now,
		ExpiryDate:        input.ExpiryDate,
		Status:            entity.BatchStatusActive,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	batch.QRCode = domaininv.BatchQRPayload(batch.Code, batch.ProductID, batch.EntryDate, batch.ExpiryDate)
	if err := batchRepo.Create(batch); err != nil {
		return nil, err
	}
	return batch, nil
}

func exitMovement(input MovementInput, batchID string, unitCost, qty decimal.Decimal, now time.Time, txID string) *entity.InventoryMovement {
	return &entity.InventoryMovement{
		ID:                uuid.New().String(),
		TransactionID:     txID,
		Type:              input.Type,
		ProductID:         input.ProductID,
		WarehouseID:       input.WarehouseID,
		BatchID:           batchID,
		PurchaseOrderID:   input.PurchaseOrderID,
		ProductionOrderID: input.ProductionOrderID,
		Quantity:          qty.Neg(),
		UnitCost:          unitCost,
		TotalCost:         qty.Neg().Mul(unitCost),
		Reason:            input.Reason,
		ResponsibleID:     input.ResponsibleID,
		Date:              now,
		CreatedAt:         now,
	}
}
