package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de orden de producción (ver workflow.ProductionOrderMachine).
const (
	ProductionStatusPrePro     = "pre_production"
	ProductionStatusInProgress = "in_production"
	ProductionStatusCompleted  = "completed"
	ProductionStatusCancelled  = "cancelled"
)

// ProductionOrder orden para convertir ingredientes de una receta en producto terminado.
// Progress va de 0 a 100; completar la orden es una operación explícita que consume
// ingredientes (salidas FEFO) y genera la entrada + lote del producto terminado.
type ProductionOrder struct {
	ID             string
	Number         string // OP-YYYY-######
	RecipeID       string
	ProductID      string
	Quantity       decimal.Decimal // cantidad planificada de producto terminado
	ActualQuantity decimal.Decimal // cantidad real producida (al completar)
	Status         string          // pre_production | in_production | completed | cancelled
	Progress       int             // 0..100
	WarehouseID    string          // bodega destino del producto terminado
	Notes          string
	PlannedDate    time.Time
	CompletedAt    *time.Time
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IngredientConsumption registro de consumo de un ingrediente al completar la orden.
type IngredientConsumption struct {
	ID                string
	ProductionOrderID string
	ProductID         string
	BatchID           string // lote consumido (vacío para productos a granel)
	Quantity          decimal.Decimal
	UnitCost          decimal.Decimal
}
