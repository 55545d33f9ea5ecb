package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de orden de compra (máquina lineal, ver workflow.PurchaseOrderMachine).
const (
	OrderStatusPreOrder = "pre_order"
	OrderStatusIssued   = "issued"
	OrderStatusReceived = "received"
	OrderStatusPaid     = "paid"
)

// Estado de pago derivado de los pagos acumulados contra el total.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPartial = "partial"
	PaymentStatusPaid    = "paid"
)

// PurchaseOrder representa una orden de compra a un proveedor.
// Total = Subtotal + IVA; IVA = Subtotal * 0.15 redondeado a 2 decimales.
// PaymentStatus es derivado: pending si no hay pagos, partial si 0 < Σpagos < Total,
// paid si Σpagos >= Total. Nunca se asigna directamente desde la API.
type PurchaseOrder struct {
	ID            string
	Number        string // OC-YYYY-#### secuencial por año
	ProviderID    string
	Items         []PurchaseOrderItem
	Subtotal      decimal.Decimal
	IVA           decimal.Decimal
	Total         decimal.Decimal
	Status        string // pre_order | issued | received | paid
	PaymentStatus string // pending | partial | paid (derivado)
	EmailSent     bool
	WhatsAppSent  bool
	IssueDate     time.Time
	ExpectedDate  time.Time
	Notes         string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PurchaseOrderItem línea de una orden de compra. Subtotal = Quantity * UnitCost.
type PurchaseOrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  decimal.Decimal
	UnitCost  decimal.Decimal
	Subtotal  decimal.Decimal
}

// Payment pago registrado contra una orden de compra. Los pagos parciales se
// acumulan; el estado de pago de la orden se deriva de la suma.
type Payment struct {
	ID        string
	OrderID   string
	Amount    decimal.Decimal
	Method    string // transfer | cash | check
	Reference string
	PaidAt    time.Time
	CreatedBy string
	CreatedAt time.Time
}
