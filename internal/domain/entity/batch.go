package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de lote. Derivados y de una sola vía: active -> expired | depleted.
const (
	BatchStatusActive   = "active"
	BatchStatusExpired  = "expired"
	BatchStatusDepleted = "depleted"
)

// Batch representa un lote de un producto con seguimiento por vencimiento.
// Invariante: 0 <= CurrentQuantity <= InitialQuantity.
// QRCode es el payload codificado en el QR de la etiqueta (no la imagen).
type Batch struct {
	ID                string
	Code              string // LOT-YYYY-######
	ProductID         string
	WarehouseID       string
	PurchaseOrderID   string // opcional: orden que originó la entrada
	ProductionOrderID string // opcional: orden de producción que lo produjo
	InitialQuantity   decimal.Decimal
	CurrentQuantity   decimal.Decimal
	EntryDate         time.Time
	ExpiryDate        *time.Time
	QRCode            string
	Status            string // active | expired | depleted
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsExpiredAt indica si el lote está vencido a la fecha dada.
func (b *Batch) IsExpiredAt(t time.Time) bool {
	return b.ExpiryDate != nil && b.ExpiryDate.Before(t)
}
