package purchasing

import (
	"context"

	"github.com/andilac/lacteos-api/internal/domain/entity"
)

// EmailSender puerto de envío de la orden de compra por correo al proveedor.
type EmailSender interface {
	SendPurchaseOrder(ctx context.Context, to string, order *entity.PurchaseOrder, pdf []byte) error
}

// WhatsAppSender puerto de envío de la orden por WhatsApp al proveedor.
type WhatsAppSender interface {
	SendPurchaseOrder(ctx context.Context, phone string, order *entity.PurchaseOrder) error
}

// OrderPDFGenerator puerto de generación del PDF de la orden de compra.
type OrderPDFGenerator interface {
	GeneratePurchaseOrder(order *entity.PurchaseOrder, provider *entity.Provider, products map[string]*entity.Product) ([]byte, error)
}
