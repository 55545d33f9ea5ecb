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

var _ repository.ProductionOrderRepository = (*ProductionOrderRepo)(nil)

// ProductionOrderRepo implementación del puerto ProductionOrderRepository sobre PostgreSQL.
type ProductionOrderRepo struct {
	q Querier
}

// NewProductionOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionOrderRepository(q Querier) *ProductionOrderRepo {
	return &ProductionOrderRepo{q: q}
}

const productionColumns = `id, number, recipe_id, product_id, quantity, actual_quantity, status,
	progress, warehouse_id, notes, planned_date, completed_at, created_by, created_at, updated_at`

// Create persiste una orden de producción.
func (r *ProductionOrderRepo) Create(order *entity.ProductionOrder) error {
	query := `
		INSERT INTO production_orders (` + productionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Number, order.RecipeID, order.ProductID, order.Quantity,
		order.ActualQuantity, order.Status, order.Progress, order.WarehouseID,
		order.Notes, order.PlannedDate, order.CompletedAt, order.CreatedBy,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert production order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden de producción.
func (r *ProductionOrderRepo) GetByID(id string) (*entity.ProductionOrder, error) {
	o, err := r.scanOrder(r.q.QueryRow(context.Background(),
		`SELECT `+productionColumns+` FROM production_orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production order: %w", err)
	}
	return o, nil
}

func (r *ProductionOrderRepo) scanOrder(row pgx.Row) (*entity.ProductionOrder, error) {
	var o entity.ProductionOrder
	err := row.Scan(
		&o.ID, &o.Number, &o.RecipeID, &o.ProductID, &o.Quantity, &o.ActualQuantity,
		&o.Status, &o.Progress, &o.WarehouseID, &o.Notes, &o.PlannedDate,
		&o.CompletedAt, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Update actualiza estado, progreso y cantidad real.
func (r *ProductionOrderRepo) Update(order *entity.ProductionOrder) error {
	query := `
		UPDATE production_orders
		SET actual_quantity = $2, status = $3, progress = $4, notes = $5,
		    completed_at = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.ActualQuantity, order.Status, order.Progress,
		order.Notes, order.CompletedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update production order: %w", err)
	}
	return nil
}

// List lista órdenes de producción filtradas por estado.
func (r *ProductionOrderRepo) List(status string, limit, offset int) ([]*entity.ProductionOrder, error) {
	query := `SELECT ` + productionColumns + ` FROM production_orders`
	var args []any
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY planned_date DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list production orders: %w", err)
	}
	defer rows.Close()

	var out []*entity.ProductionOrder
	for rows.Next() {
		o, err := r.scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan production order: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// CreateConsumption registra el consumo de un ingrediente al completar la orden.
func (r *ProductionOrderRepo) CreateConsumption(consumption *entity.IngredientConsumption) error {
	query := `
		INSERT INTO ingredient_consumptions (id, production_order_id, product_id, batch_id, quantity, unit_cost)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		consumption.ID, consumption.ProductionOrderID, consumption.ProductID,
		nullIfEmpty(consumption.BatchID), consumption.Quantity, consumption.UnitCost,
	)
	if err != nil {
		return fmt.Errorf("insert ingredient consumption: %w", err)
	}
	return nil
}

// ListConsumptions consumos registrados de una orden de producción.
func (r *ProductionOrderRepo) ListConsumptions(orderID string) ([]*entity.IngredientConsumption, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, production_order_id, product_id, batch_id, quantity, unit_cost
		FROM ingredient_consumptions WHERE production_order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list ingredient consumptions: %w", err)
	}
	defer rows.Close()

	var out []*entity.IngredientConsumption
	for rows.Next() {
		var c entity.IngredientConsumption
		var batchID *string
		if err := rows.Scan(&c.ID, &c.ProductionOrderID, &c.ProductID, &batchID, &c.Quantity, &c.UnitCost); err != nil {
			return nil, fmt.Errorf("scan ingredient consumption: %w", err)
		}
		if batchID != nil {
			c.BatchID = *batchID
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}
