package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecipeIngredientRequest ingrediente de una receta.
type RecipeIngredientRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid4"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit" validate:"required,min=1,max=20"`
}

// CreateRecipeRequest entrada para crear una receta. Requiere al menos un
// ingrediente con cantidad positiva (se valida también en el caso de uso).
type CreateRecipeRequest struct {
	ProductID     string                    `json:"product_id" validate:"required,uuid4"`
	Name          string                    `json:"name" validate:"required,min=2,max=200"`
	Ingredients   []RecipeIngredientRequest `json:"ingredients" validate:"required,min=1,dive"`
	YieldQuantity decimal.Decimal           `json:"yield_quantity"`
	YieldUnit     string                    `json:"yield_unit" validate:"required,min=1,max=20"`
}

// RecipeIngredientResponse ingrediente en respuestas.
type RecipeIngredientResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
}

// RecipeResponse salida de una receta.
type RecipeResponse struct {
	ID            string                     `json:"id"`
	ProductID     string                     `json:"product_id"`
	Name          string                     `json:"name"`
	Version       int                        `json:"version"`
	Ingredients   []RecipeIngredientResponse `json:"ingredients"`
	YieldQuantity decimal.Decimal            `json:"yield_quantity"`
	YieldUnit     string                     `json:"yield_unit"`
	Status        string                     `json:"status"`
	CreatedAt     time.Time                  `json:"created_at"`
	UpdatedAt     time.Time                  `json:"updated_at"`
}

// RecipeListResponse lista paginada de recetas.
type RecipeListResponse struct {
	Items []RecipeResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// ValidateIngredientsRequest cantidad de producto terminado a evaluar.
type ValidateIngredientsRequest struct {
	Quantity decimal.Decimal `json:"quantity" query:"quantity"`
}

// MissingIngredient ingrediente con stock insuficiente para la producción.
type MissingIngredient struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Required  decimal.Decimal `json:"required"`
	Available decimal.Decimal `json:"available"`
	Missing   decimal.Decimal `json:"missing"`
}

// ValidateIngredientsResponse resultado de la validación de ingredientes.
type ValidateIngredientsResponse struct {
	Valid   bool                `json:"valid"`
	Missing []MissingIngredient `json:"missing"`
}

// CreateProductionOrderRequest entrada para crear una orden de producción.
type CreateProductionOrderRequest struct {
	RecipeID    string          `json:"recipe_id" validate:"required,uuid4"`
	Quantity    decimal.Decimal `json:"quantity"`
	WarehouseID string          `json:"warehouse_id" validate:"required,uuid4"`
	PlannedDate time.Time       `json:"planned_date"`
	Notes       string          `json:"notes" validate:"omitempty,max=500"`
}

// UpdateProgressRequest avance de una orden en producción.
type UpdateProgressRequest struct {
	Progress int    `json:"progress" validate:"min=0,max=100"`
	Notes    string `json:"notes" validate:"omitempty,max=500"`
}

// CompleteProductionRequest cierre de una orden con la cantidad real producida.
type CompleteProductionRequest struct {
	ActualQuantity decimal.Decimal `json:"actual_quantity"`
	ExpiryDate     *time.Time      `json:"expiry_date,omitempty"` // vencimiento del lote producido
}

// ConsumptionResponse consumo de un ingrediente al completar la orden.
type ConsumptionResponse struct {
	ProductID string          `json:"product_id"`
	BatchID   string          `json:"batch_id,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// ProductionOrderResponse salida de una orden de producción.
type ProductionOrderResponse struct {
	ID             string                `json:"id"`
	Number         string                `json:"number"`
	RecipeID       string                `json:"recipe_id"`
	ProductID      string                `json:"product_id"`
	Quantity       decimal.Decimal       `json:"quantity"`
	ActualQuantity decimal.Decimal       `json:"actual_quantity"`
	Status         string                `json:"status"`
	Progress       int                   `json:"progress"`
	WarehouseID    string                `json:"warehouse_id"`
	Notes          string                `json:"notes"`
	PlannedDate    time.Time             `json:"planned_date"`
	CompletedAt    *time.Time            `json:"completed_at,omitempty"`
	Consumptions   []ConsumptionResponse `json:"consumptions,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// CompleteProductionResponse movimientos generados al completar la orden.
type CompleteProductionResponse struct {
	Order     ProductionOrderResponse `json:"order"`
	Movements []MovementResponse      `json:"movements"`
	Batch     *BatchResponse          `json:"batch,omitempty"`
}

// ProductionOrderListResponse lista paginada de órdenes de producción.
type ProductionOrderListResponse struct {
	Items []ProductionOrderResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}
