package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeEntry      = "entry"
	MovementTypeExit       = "exit"
	MovementTypeAdjustment = "adjustment"
	MovementTypeTransfer   = "transfer"
)

// InventoryMovement representa un movimiento de inventario. Inmutable una vez creado:
// las correcciones se hacen con movimientos de ajuste, nunca editando el registro.
type InventoryMovement struct {
	ID                string
	TransactionID     string // agrupa los movimientos de una misma operación
	Type              string // entry | exit | adjustment | transfer
	ProductID         string
	WarehouseID       string
	BatchID           string // opcional: lote afectado
	PurchaseOrderID   string // opcional: recepción de compra
	ProductionOrderID string // opcional: consumo o producto terminado
	Quantity          decimal.Decimal // positivo entrada/ajuste+, negativo salida
	UnitCost          decimal.Decimal
	TotalCost         decimal.Decimal
	Reason            string
	ResponsibleID     string
	Date              time.Time
	CreatedAt         time.Time
}
