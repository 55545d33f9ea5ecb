package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/andilac/lacteos-api/internal/domain/entity"
	"github.com/andilac/lacteos-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// Los movimientos son inmutables: solo INSERT y SELECT.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

const movementColumns = `id, transaction_id, type, product_id, warehouse_id, batch_id,
	purchase_order_id, production_order_id, quantity, unit_cost, total_cost, reason,
	responsible_id, date, created_at`

// Create persiste un movimiento de inventario.
func (r *InventoryMovementRepo) Create(movement *entity.InventoryMovement) error {
	query := `
		INSERT INTO inventory_movements (id, transaction_id, type, product_id, warehouse_id, batch_id,
			purchase_order_id, production_order_id, quantity, unit_cost, total_cost, reason,
			responsible_id, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.TransactionID, movement.Type, movement.ProductID, movement.WarehouseID,
		nullIfEmpty(movement.BatchID), nullIfEmpty(movement.PurchaseOrderID), nullIfEmpty(movement.ProductionOrderID),
		movement.Quantity, movement.UnitCost, movement.TotalCost, movement.Reason,
		movement.ResponsibleID, movement.Date, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory movement: %w", err)
	}
	return nil
}

// List movimientos filtrados (kardex), en orden cronológico ascendente.
func (r *InventoryMovementRepo) List(filter repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	var conditions []string
	var args []any
	add := func(cond string, val any) {
		args = append(args, val)
		conditions = append(conditions, cond+" $"+strconv.Itoa(len(args)))
	}
	if filter.ProductID != "" {
		add("product_id =", filter.ProductID)
	}
	if filter.WarehouseID != "" {
		add("warehouse_id =", filter.WarehouseID)
	}
	if filter.Type != "" {
		add("type =", filter.Type)
	}
	if !filter.From.IsZero() {
		add("date >=", filter.From)
	}
	if !filter.To.IsZero() {
		add("date <=", filter.To)
	}

	query := `SELECT ` + movementColumns + ` FROM inventory_movements`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date ASC, created_at ASC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += " LIMIT $" + strconv.Itoa(len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += " OFFSET $" + strconv.Itoa(len(args))
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory movements: %w", err)
	}
	defer rows.Close()

	var out []*entity.InventoryMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory movement: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.InventoryMovement, error) {
	var m entity.InventoryMovement
	var batchID, purchaseOrderID, productionOrderID *string
	err := row.Scan(
		&m.ID, &m.TransactionID, &m.Type, &m.ProductID, &m.WarehouseID, &batchID,
		&purchaseOrderID, &productionOrderID, &m.Quantity, &m.UnitCost, &m.TotalCost,
		&m.Reason, &m.ResponsibleID, &m.Date, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if batchID != nil {
		m.BatchID = *batchID
	}
	if purchaseOrderID != nil {
		m.PurchaseOrderID = *purchaseOrderID
	}
	if productionOrderID != nil {
		m.ProductionOrderID = *productionOrderID
	}
	return &m, nil
}
