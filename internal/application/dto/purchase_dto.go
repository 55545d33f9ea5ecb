package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea de la orden de compra. El subtotal se calcula en el servidor.
type OrderItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid4"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// CreatePurchaseOrderRequest entrada para crear una orden de compra.
type CreatePurchaseOrderRequest struct {
	ProviderID   string             `json:"provider_id" validate:"required,uuid4"`
	Items        []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	IssueDate    time.Time          `json:"issue_date"`
	ExpectedDate time.Time          `json:"expected_date"`
	Notes        string             `json:"notes" validate:"omitempty,max=500"`
}

// UpdateOrderStatusRequest cambio de estado validado contra la máquina de estados.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pre_order issued received paid"`
}

// RegisterPaymentRequest pago (total o parcial) contra una orden.
type RegisterPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method" validate:"required,oneof=transfer cash check"`
	Reference string          `json:"reference" validate:"omitempty,max=100"`
}

// OrderItemResponse línea de orden en respuestas.
type OrderItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// PurchaseOrderResponse salida de una orden de compra.
type PurchaseOrderResponse struct {
	ID            string              `json:"id"`
	Number        string              `json:"number"`
	ProviderID    string              `json:"provider_id"`
	Items         []OrderItemResponse `json:"items"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	IVA           decimal.Decimal     `json:"iva"`
	Total         decimal.Decimal     `json:"total"`
	Status        string              `json:"status"`
	PaymentStatus string              `json:"payment_status"`
	EmailSent     bool                `json:"email_sent"`
	WhatsAppSent  bool                `json:"whatsapp_sent"`
	IssueDate     time.Time           `json:"issue_date"`
	ExpectedDate  time.Time           `json:"expected_date"`
	Notes         string              `json:"notes"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// PurchaseOrderListResponse lista paginada de órdenes.
type PurchaseOrderListResponse struct {
	Items []PurchaseOrderResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// PaymentResponse pago registrado.
type PaymentResponse struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"order_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Reference string          `json:"reference"`
	PaidAt    time.Time       `json:"paid_at"`
}
