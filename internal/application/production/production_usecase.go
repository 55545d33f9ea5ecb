package production

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andilac/lacteos-api/internal/application/dto"
	appinv "github.com/andilac/lacteos-api/internal/application/inventory"
	"github.com/andilac/lacteos-api/internal/domain"
	"github.com/andilac/lacteos-api/internal/domain/entity"
	domaininv "github.com/andilac/lacteos-api/internal/domain/inventory"
	"github.com/andilac/lacteos-api/internal/domain/repository"
	"github.com/andilac/lacteos-api/internal/domain/workflow"
)

// ProductionUseCase órdenes de producción: convierten ingredientes de una receta
// en producto terminado. Completar es una operación explícita y transaccional:
// salidas FEFO de los ingredientes (escaladas a la cantidad real), entrada y lote
// del producto terminado, y registro de consumos.
type ProductionUseCase struct {
	txRunner      appinv.TxRunner
	movementUC    *appinv.RegisterMovementUseCase
	orderRepo     repository.ProductionOrderRepository
	recipeRepo    repository.RecipeRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	stockRepo     repository.StockRepository
}

// NewProductionUseCase construye el caso de uso.
func NewProductionUseCase(
	txRunner appinv.TxRunner,
	movementUC *appinv.RegisterMovementUseCase,
	orderRepo repository.ProductionOrderRepository,
	recipeRepo repository.RecipeRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	stockRepo repository.StockRepository,
) *ProductionUseCase {
	return &ProductionUseCase{
		txRunner:      txRunner,
		movementUC:    movementUC,
		orderRepo:     orderRepo,
		recipeRepo:    recipeRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		stockRepo:     stockRepo,
	}
}

// Create crea una orden en pre_production a partir de una receta activa.
func (uc *ProductionUseCase) Create(createdBy string, in dto.CreateProductionOrderRequest) (*dto.ProductionOrderResponse, error) {
	recipe, err := uc.recipeRepo.GetByID(in.RecipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}
	if recipe.Status != entity.StatusActive {
		return nil, domain.ErrConflict
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	warehouse, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	order := &entity.ProductionOrder{
		ID:          uuid.New().String(),
		Number:      domaininv.ProductionOrderNumber(now),
		RecipeID:    recipe.ID,
		ProductID:   recipe.ProductID,
		Quantity:    in.Quantity,
		Status:      entity.ProductionStatusPrePro,
		Progress:    0,
		WarehouseID: in.WarehouseID,
		Notes:       in.Notes,
		PlannedDate: in.PlannedDate,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	return uc.toResponse(order, nil), nil
}

// GetByID obtiene una orden con sus consumos (si ya fue completada).
func (uc *ProductionUseCase) GetByID(id string) (*dto.ProductionOrderResponse, error) {
	order, err := uc.getOrder(id)
	if err != nil {
		return nil, err
	}
	consumptions, err := uc.orderRepo.ListConsumptions(id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(order, consumptions), nil
}

// List lista órdenes, opcionalmente por estado.
func (uc *ProductionUseCase) List(status string, page dto.PageRequest) ([]dto.ProductionOrderResponse, error) {
	page.DefaultPage()
	orders, err := uc.orderRepo.List(status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductionOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, *uc.toResponse(o, nil))
	}
	return out, nil
}

// Start arranca la producción. Vuelve a verificar el stock de ingredientes:
// pudo haberse consumido desde que se planificó la orden.
func (uc *ProductionUseCase) Start(id string) (*dto.ProductionOrderResponse, error) {
	order, err := uc.getOrder(id)
	if err != nil {
		return nil, err
	}
	next, err := workflow.ProductionOrderMachine.Transition(order.Status, entity.ProductionStatusInProgress)
	if err != nil {
		return nil, err
	}

	recipe, err := uc.recipeRepo.GetByID(order.RecipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}
	factor := order.Quantity.Div(recipe.YieldQuantity)
	for _, ing := range recipe.Ingredients {
		required := ing.Quantity.Mul(factor)
		available, err := uc.stockRepo.TotalByProduct(ing.ProductID)
		if err != nil {
			return nil, err
		}
		if available.LessThan(required) {
			return nil, domain.ErrInsufficientStock
		}
	}

	order.Status = next
	order.UpdatedAt = time.Now()
	if err := uc.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return uc.toResponse(order, nil), nil
}

// UpdateProgress actualiza el avance (0-100) de una orden en producción.
// Llegar a 100 no completa la orden: completar es explícito.
func (uc *ProductionUseCase) UpdateProgress(id string, in dto.UpdateProgressRequest) (*dto.ProductionOrderResponse, error) {
	order, err := uc.getOrder(id)
	if err != nil {
		return nil, err
	}
	if order.Status != entity.ProductionStatusInProgress {
		return nil, domain.ErrInvalidTransition
	}
	if in.Progress < 0 || in.Progress > 100 {
		return nil, domain.ErrInvalidInput
	}
	order.Progress = in.Progress
	if in.Notes != "" {
		order.Notes = in.Notes
	}
	order.UpdatedAt = time.Now()
	if err := uc.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return uc.toResponse(order, nil), nil
}

// Complete cierra la orden con la cantidad real producida. En una sola transacción:
// consume los ingredientes (FEFO, escalados a la cantidad real), registra los
// consumos, da entrada al producto terminado con su lote y marca la orden completed.
func (uc *ProductionUseCase) Complete(ctx context.Context, id, responsibleID string, in dto.CompleteProductionRequest) (*dto.CompleteProductionResponse, error) {
	order, err := uc.getOrder(id)
	if err != nil {
		return nil, err
	}
	if !workflow.ProductionOrderMachine.CanTransition(order.Status, entity.ProductionStatusCompleted) {
		return nil, domain.ErrInvalidTransition
	}
	if !in.ActualQuantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	recipe, err := uc.recipeRepo.GetByID(order.RecipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(order.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.RequiresExpiryControl && in.ExpiryDate == nil {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	txID := uuid.New().String()
	result := &appinv.MovementResult{}
	factor := in.ActualQuantity.Div(recipe.YieldQuantity)

	err = uc.txRunner.Run(ctx, func(r appinv.TxRepos) error {
		totalCost := decimal.Zero
		for _, ing := range recipe.Ingredients {
			required := ing.Quantity.Mul(factor)
			before := len(result.Movements)
			if err := uc.consumeIngredient(r, ing.ProductID, required, order, responsibleID, now, txID, result); err != nil {
				return err
			}
			for _, mov := range result.Movements[before:] {
				totalCost = totalCost.Add(mov.TotalCost.Neg())
				if err := r.Production.CreateConsumption(&entity.IngredientConsumption{
					ID:                uuid.New().String(),
					ProductionOrderID: order.ID,
					ProductID:         ing.ProductID,
					BatchID:           mov.BatchID,
					Quantity:          mov.Quantity.Neg(),
					UnitCost:          mov.UnitCost,
				}); err != nil {
					return err
				}
			}
		}

		// Costo unitario del producto terminado: costo de ingredientes / cantidad real
		unitCost := decimal.Zero
		if in.ActualQuantity.GreaterThan(decimal.Zero) {
			unitCost = totalCost.Div(in.ActualQuantity).Round(4)
		}
		entryProduct, err := r.Products.GetByID(order.ProductID)
		if err != nil || entryProduct == nil {
			return domain.ErrNotFound
		}
		entry := appinv.MovementInput{
			ResponsibleID:     responsibleID,
			ProductID:         order.ProductID,
			WarehouseID:       order.WarehouseID,
			Type:              entity.MovementTypeEntry,
			Quantity:          in.ActualQuantity,
			UnitCost:          &unitCost,
			ExpiryDate:        in.ExpiryDate,
			Reason:            fmt.Sprintf("producción %s", order.Number),
			ProductionOrderID: order.ID,
		}
		if err := uc.movementUC.EntryInTx(r, entryProduct, entry, now, txID, result); err != nil {
			return err
		}

		order.Status = entity.ProductionStatusCompleted
		order.Progress = 100
		order.ActualQuantity = in.ActualQuantity
		order.CompletedAt = &now
		order.UpdatedAt = now
		return r.Production.Update(order)
	})
	if err != nil {
		return nil, err
	}

	consumptions, err := uc.orderRepo.ListConsumptions(order.ID)
	if err != nil {
		return nil, err
	}
	resp := &dto.CompleteProductionResponse{Order: *uc.toResponse(order, consumptions)}
	for _, m := range result.Movements {
		resp.Movements = append(resp.Movements, appinv.ToMovementResponse(m))
	}
	if len(result.Batches) > 0 {
		// El último lote creado es el del producto terminado
		b := appinv.ToBatchResponse(result.Batches[len(result.Batches)-1])
		resp.Batch = &b
	}
	return resp, nil
}

// Cancel cancela una orden no terminal. No revierte consumos: solo las órdenes
// sin completar pueden cancelarse.
func (uc *ProductionUseCase) Cancel(id string) (*dto.ProductionOrderResponse, error) {
	order, err := uc.getOrder(id)
	if err != nil {
		return nil, err
	}
	next, err := workflow.ProductionOrderMachine.Transition(order.Status, entity.ProductionStatusCancelled)
	if err != nil {
		return nil, err
	}
	order.Status = next
	order.UpdatedAt = time.Now()
	if err := uc.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return uc.toResponse(order, nil), nil
}

// consumeIngredient consume el requerido de un ingrediente recorriendo las bodegas
// con stock (orden estable por bodega); dentro de cada bodega aplica FEFO.
func (uc *ProductionUseCase) consumeIngredient(
	r appinv.TxRepos,
	productID string,
	required decimal.Decimal,
	order *entity.ProductionOrder,
	responsibleID string,
	now time.Time, txID string,
	result *appinv.MovementResult,
) error {
	product, err := r.Products.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	stocks, err := r.Stock.ListByProduct(productID)
	if err != nil {
		return err
	}
	sort.Slice(stocks, func(i, j int) bool { return stocks[i].WarehouseID < stocks[j].WarehouseID })

	remaining := required
	for _, s := range stocks {
		if !remaining.GreaterThan(decimal.Zero) {
			break
		}
		if !s.Quantity.GreaterThan(decimal.Zero) {
			continue
		}
		take := decimal.Min(s.Quantity, remaining)
		exit := appinv.MovementInput{
			ResponsibleID:     responsibleID,
			ProductID:         productID,
			WarehouseID:       s.WarehouseID,
			Type:              entity.MovementTypeExit,
			Quantity:          take,
			Reason:            fmt.Sprintf("consumo producción %s", order.Number),
			ProductionOrderID: order.ID,
		}
		if err := uc.movementUC.ExitInTx(r, product, exit, now, txID, result); err != nil {
			return err
		}
		remaining = remaining.Sub(take)
	}
	if remaining.GreaterThan(decimal.Zero) {
		return domain.ErrInsufficientStock
	}
	return nil
}

func (uc *ProductionUseCase) getOrder(id string) (*entity.ProductionOrder, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

func (uc *ProductionUseCase) toResponse(o *entity.ProductionOrder, consumptions []*entity.IngredientConsumption) *dto.ProductionOrderResponse {
	resp := &dto.ProductionOrderResponse{
		ID:             o.ID,
		Number:         o.Number,
		RecipeID:       o.RecipeID,
		ProductID:      o.ProductID,
		Quantity:       o.Quantity,
		ActualQuantity: o.ActualQuantity,
		Status:         o.Status,
		Progress:       o.Progress,
		WarehouseID:    o.WarehouseID,
		Notes:          o.Notes,
		PlannedDate:    o.PlannedDate,
		CompletedAt:    o.CompletedAt,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
	for _, c := range consumptions {
		resp.Consumptions = append(resp.Consumptions, dto.ConsumptionResponse{
			ProductID: c.ProductID,
			BatchID:   c.BatchID,
			Quantity:  c.Quantity,
			UnitCost:  c.UnitCost,
		})
	}
	return resp
}
