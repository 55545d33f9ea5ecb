package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/andilac/lacteos-api/internal/domain"
	"github.com/andilac/lacteos-api/internal/domain/entity"
	"github.com/andilac/lacteos-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación del puerto PurchaseOrderRepository sobre PostgreSQL.
// Cabecera e ítems se persisten juntos; GetByID devuelve la orden completa.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const orderColumns = `id, number, provider_id, subtotal, iva, total, status, payment_status,
	email_sent, whatsapp_sent, issue_date, expected_date, notes, created_by, created_at, updated_at`

// Create persiste la cabecera y los ítems de la orden.
func (r *PurchaseOrderRepo) Create(order *entity.PurchaseOrder) error {
	ctx := context.Background()
	query := `
		INSERT INTO purchase_orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.Number, order.ProviderID, order.Subtotal, order.IVA, order.Total,
		order.Status, order.PaymentStatus, order.EmailSent, order.WhatsAppSent,
		order.IssueDate, order.ExpectedDate, order.Notes, order.CreatedBy,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	for i := range order.Items {
		item := &order.Items[i]
		_, err := r.q.Exec(ctx, `
			INSERT INTO purchase_order_items (id, order_id, product_id, quantity, unit_cost, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			item.ID, item.OrderID, item.ProductID, item.Quantity, item.UnitCost, item.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert purchase order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la orden con sus ítems.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	ctx := context.Background()
	var o entity.PurchaseOrder
	err := r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM purchase_orders WHERE id = $1`, id).Scan(
		&o.ID, &o.Number, &o.ProviderID, &o.Subtotal, &o.IVA, &o.Total,
		&o.Status, &o.PaymentStatus, &o.EmailSent, &o.WhatsAppSent,
		&o.IssueDate, &o.ExpectedDate, &o.Notes, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	items, err := r.listItems(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *PurchaseOrderRepo) listItems(ctx context.Context, orderID string) ([]entity.PurchaseOrderItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, product_id, quantity, unit_cost, subtotal
		FROM purchase_order_items WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list purchase order items: %w", err)
	}
	defer rows.Close()

	var items []entity.PurchaseOrderItem
	for rows.Next() {
		var it entity.PurchaseOrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitCost, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Update actualiza la cabecera (estado, estado de pago, banderas de envío).
// Los ítems no se modifican después de creada la orden.
func (r *PurchaseOrderRepo) Update(order *entity.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders
		SET status = $2, payment_status = $3, email_sent = $4, whatsapp_sent = $5,
		    expected_date = $6, notes = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Status, order.PaymentStatus, order.EmailSent, order.WhatsAppSent,
		order.ExpectedDate, order.Notes, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	return nil
}

// List lista órdenes (cabeceras con ítems) filtradas por estado.
func (r *PurchaseOrderRepo) List(status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	ctx := context.Background()
	query := `SELECT ` + orderColumns + ` FROM purchase_orders`
	var args []any
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY issue_date DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()

	var out []*entity.PurchaseOrder
	for rows.Next() {
		var o entity.PurchaseOrder
		if err := rows.Scan(
			&o.ID, &o.Number, &o.ProviderID, &o.Subtotal, &o.IVA, &o.Total,
			&o.Status, &o.PaymentStatus, &o.EmailSent, &o.WhatsAppSent,
			&o.IssueDate, &o.ExpectedDate, &o.Notes, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		out = append(out, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range out {
		items, err := r.listItems(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		o.Items = items
	}
	return out, nil
}

// NextSequenceForYear incrementa y devuelve la secuencia anual de numeración.
// El upsert sobre la tabla de secuencias serializa la numeración por año.
func (r *PurchaseOrderRepo) NextSequenceForYear(year int) (int64, error) {
	var seq int64
	err := r.q.QueryRow(context.Background(), `
		INSERT INTO purchase_order_sequences (year, seq)
		VALUES ($1, 1)
		ON CONFLICT (year) DO UPDATE SET seq = purchase_order_sequences.seq + 1
		RETURNING seq`, year,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next order sequence: %w", err)
	}
	return seq, nil
}

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo pagos contra órdenes de compra. Los pagos son inmutables.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador de pagos.
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create persiste un pago.
func (r *PaymentRepo) Create(payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, order_id, amount, method, reference, paid_at, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.OrderID, payment.Amount, payment.Method,
		payment.Reference, payment.PaidAt, payment.CreatedBy, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// ListByOrder pagos de una orden en orden cronológico.
func (r *PaymentRepo) ListByOrder(orderID string) ([]*entity.Payment, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, order_id, amount, method, reference, paid_at, created_by, created_at
		FROM payments WHERE order_id = $1 ORDER BY paid_at ASC`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var out []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.OrderID, &p.Amount, &p.Method, &p.Reference, &p.PaidAt, &p.CreatedBy, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
