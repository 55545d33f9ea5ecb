package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/andilac/lacteos-api/internal/domain"
	"github.com/andilac/lacteos-api/internal/domain/entity"
	"github.com/andilac/lacteos-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación del puerto BatchRepository sobre PostgreSQL.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = `id, code, product_id, warehouse_id, purchase_order_id, production_order_id,
	initial_quantity, current_quantity, entry_date, expiry_date, qr_code, status, created_at, updated_at`

func scanBatch(row pgx.Row) (*entity.Batch, error) {
	var b entity.Batch
	var purchaseOrderID, productionOrderID *string
	var expiry *time.Time
	err := row.Scan(
		&b.ID, &b.Code, &b.ProductID, &b.WarehouseID, &purchaseOrderID, &productionOrderID,
		&b.InitialQuantity, &b.CurrentQuantity, &b.EntryDate, &expiry, &b.QRCode,
		&b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if purchaseOrderID != nil {
		b.PurchaseOrderID = *purchaseOrderID
	}
	if productionOrderID != nil {
		b.ProductionOrderID = *productionOrderID
	}
	b.ExpiryDate = expiry
	return &b, nil
}

// Create persiste un lote.
func (r *BatchRepo) Create(batch *entity.Batch) error {
	query := `
		INSERT INTO batches (id, code, product_id, warehouse_id, purchase_order_id, production_order_id,
			initial_quantity, current_quantity, entry_date, expiry_date, qr_code, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.Code, batch.ProductID, batch.WarehouseID,
		nullIfEmpty(batch.PurchaseOrderID), nullIfEmpty(batch.ProductionOrderID),
		batch.InitialQuantity, batch.CurrentQuantity, batch.EntryDate, batch.ExpiryDate,
		batch.QRCode, batch.Status, batch.CreatedAt, batch.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *BatchRepo) GetByID(id string) (*entity.Batch, error) {
	b, err := scanBatch(r.q.QueryRow(context.Background(),
		`SELECT `+batchColumns+` FROM batches WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return b, nil
}

// Update actualiza cantidad y estado de un lote.
func (r *BatchRepo) Update(batch *entity.Batch) error {
	query := `
		UPDATE batches
		SET current_quantity = $2, status = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.CurrentQuantity, batch.Status, batch.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	return nil
}

// List lista lotes con filtros opcionales.
func (r *BatchRepo) List(productID, warehouseID, status string, limit, offset int) ([]*entity.Batch, error) {
	var conditions []string
	var args []any
	add := func(cond string, val any) {
		args = append(args, val)
		conditions = append(conditions, cond+" = $"+strconv.Itoa(len(args)))
	}
	if productID != "" {
		add("product_id", productID)
	}
	if warehouseID != "" {
		add("warehouse_id", warehouseID)
	}
	if status != "" {
		add("status", status)
	}

	query := `SELECT ` + batchColumns + ` FROM batches`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, limit)
	query += " ORDER BY entry_date DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, offset)
	query += " OFFSET $" + strconv.Itoa(len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	return collectBatches(rows)
}

// ListActiveFEFO lotes activos del producto en una bodega, vencimiento
// ascendente con NULL al final (consumo First-Expiry-First-Out).
func (r *BatchRepo) ListActiveFEFO(productID, warehouseID string) ([]*entity.Batch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM batches
		WHERE product_id = $1 AND warehouse_id = $2 AND status = 'active'
		ORDER BY expiry_date ASC NULLS LAST, entry_date ASC
		FOR UPDATE`
	rows, err := r.q.Query(context.Background(), query, productID, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list batches fefo: %w", err)
	}
	defer rows.Close()
	return collectBatches(rows)
}

// ListExpiringBefore lotes activos con vencimiento anterior a la fecha dada.
func (r *BatchRepo) ListExpiringBefore(t time.Time) ([]*entity.Batch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM batches
		WHERE status = 'active' AND expiry_date IS NOT NULL AND expiry_date < $1
		ORDER BY expiry_date ASC`
	rows, err := r.q.Query(context.Background(), query, t)
	if err != nil {
		return nil, fmt.Errorf("list expiring batches: %w", err)
	}
	defer rows.Close()
	return collectBatches(rows)
}

func collectBatches(rows pgx.Rows) ([]*entity.Batch, error) {
	var out []*entity.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
