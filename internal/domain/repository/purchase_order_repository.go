package repository

import "github.com/andilac/lacteos-api/internal/domain/entity"

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra.
// Create persiste cabecera e ítems juntos; GetByID devuelve la orden con sus ítems.
type PurchaseOrderRepository interface {
	Create(order *entity.PurchaseOrder) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	Update(order *entity.PurchaseOrder) error
	List(status string, limit, offset int) ([]*entity.PurchaseOrder, error)
	// NextSequenceForYear devuelve la siguiente secuencia anual (1-based) para numerar órdenes.
	NextSequenceForYear(year int) (int64, error)
}

// PaymentRepository pagos acumulados contra órdenes de compra.
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	ListByOrder(orderID string) ([]*entity.Payment, error)
}
