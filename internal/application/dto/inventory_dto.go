package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
// Para entry/exit/adjustment: ProductID, WarehouseID, Type, Quantity; UnitCost obligatorio en entradas.
// Para transfer: ProductID, FromWarehouseID, ToWarehouseID, Quantity.
type RegisterMovementRequest struct {
	ProductID       string           `json:"product_id" validate:"required,uuid4"`
	WarehouseID     string           `json:"warehouse_id,omitempty" validate:"omitempty,uuid4"`
	FromWarehouseID string           `json:"from_warehouse_id,omitempty" validate:"omitempty,uuid4"`
	ToWarehouseID   string           `json:"to_warehouse_id,omitempty" validate:"omitempty,uuid4"`
	Type            string           `json:"type" validate:"required,oneof=entry exit adjustment transfer"`
	Quantity        decimal.Decimal  `json:"quantity"`
	UnitCost        *decimal.Decimal `json:"unit_cost,omitempty"`
	ExpiryDate      *time.Time       `json:"expiry_date,omitempty"` // entradas de productos por lote
	Reason          string           `json:"reason" validate:"omitempty,max=300"`
}

// BulkEntryItem línea de recepción contra una orden de compra.
type BulkEntryItem struct {
	ProductID   string           `json:"product_id" validate:"required,uuid4"`
	WarehouseID string           `json:"warehouse_id" validate:"required,uuid4"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitCost    *decimal.Decimal `json:"unit_cost,omitempty"` // por defecto el costo de la orden
	ExpiryDate  *time.Time       `json:"expiry_date,omitempty"`
}

// BulkEntryRequest recepción masiva de una orden de compra.
type BulkEntryRequest struct {
	Entries []BulkEntryItem `json:"entries" validate:"required,min=1,dive"`
}

// BulkEntryResponse resultado de la recepción: movimientos y lotes creados.
type BulkEntryResponse struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Movements []MovementResponse `json:"movements"`
	Batches   []BatchResponse    `json:"batches"`
}

// ValidateExitRequest consulta de stock disponible antes de una salida.
type ValidateExitRequest struct {
	ProductID   string          `json:"product_id" query:"product_id" validate:"required,uuid4"`
	WarehouseID string          `json:"warehouse_id" query:"warehouse_id" validate:"omitempty,uuid4"`
	Quantity    decimal.Decimal `json:"quantity" query:"quantity"`
}

// ValidateExitResponse resultado de la validación de stock.
type ValidateExitResponse struct {
	Valid     bool            `json:"valid"`
	Available decimal.Decimal `json:"available"`
	Message   string          `json:"message"`
}

// MovementResponse salida de un movimiento de inventario.
type MovementResponse struct {
	ID                string          `json:"id"`
	TransactionID     string          `json:"transaction_id"`
	Type              string          `json:"type"`
	ProductID         string          `json:"product_id"`
	WarehouseID       string          `json:"warehouse_id"`
	BatchID           string          `json:"batch_id,omitempty"`
	PurchaseOrderID   string          `json:"purchase_order_id,omitempty"`
	ProductionOrderID string          `json:"production_order_id,omitempty"`
	Quantity          decimal.Decimal `json:"quantity"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	TotalCost         decimal.Decimal `json:"total_cost"`
	Reason            string          `json:"reason,omitempty"`
	ResponsibleID     string          `json:"responsible_id"`
	Date              time.Time       `json:"date"`
}

// BatchResponse salida de un lote.
type BatchResponse struct {
	ID              string          `json:"id"`
	Code            string          `json:"code"`
	ProductID       string          `json:"product_id"`
	WarehouseID     string          `json:"warehouse_id"`
	PurchaseOrderID string          `json:"purchase_order_id,omitempty"`
	InitialQuantity decimal.Decimal `json:"initial_quantity"`
	CurrentQuantity decimal.Decimal `json:"current_quantity"`
	EntryDate       time.Time       `json:"entry_date"`
	ExpiryDate      *time.Time      `json:"expiry_date,omitempty"`
	QRCode          string          `json:"qr_code"`
	Status          string          `json:"status"`
}

// LowStockProductResponse producto por debajo de su stock mínimo.
type LowStockProductResponse struct {
	ProductID string          `json:"product_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	MinStock  decimal.Decimal `json:"min_stock"`
	Available decimal.Decimal `json:"available"`
}
