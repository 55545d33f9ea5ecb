package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/andilac/lacteos-api/internal/domain/entity"
	"github.com/andilac/lacteos-api/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo implementación del puerto AlertRepository sobre PostgreSQL.
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador de alertas.
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

const alertColumns = `id, type, severity, product_id, batch_id, warehouse_id, message,
	status, acknowledged_by, resolved_by, created_at, updated_at`

// Create persiste una alerta.
func (r *AlertRepo) Create(alert *entity.Alert) error {
	query := `
		INSERT INTO alerts (` + alertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		alert.ID, alert.Type, alert.Severity, nullIfEmpty(alert.ProductID),
		nullIfEmpty(alert.BatchID), nullIfEmpty(alert.WarehouseID), alert.Message,
		alert.Status, nullIfEmpty(alert.AcknowledgedBy), nullIfEmpty(alert.ResolvedBy),
		alert.CreatedAt, alert.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

// GetByID obtiene una alerta por ID.
func (r *AlertRepo) GetByID(id string) (*entity.Alert, error) {
	a, err := scanAlert(r.q.QueryRow(context.Background(),
		`SELECT `+alertColumns+` FROM alerts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get alert: %w", err)
	}
	return a, nil
}

func scanAlert(row pgx.Row) (*entity.Alert, error) {
	var a entity.Alert
	var productID, batchID, warehouseID, ackBy, resolvedBy *string
	err := row.Scan(
		&a.ID, &a.Type, &a.Severity, &productID, &batchID, &warehouseID,
		&a.Message, &a.Status, &ackBy, &resolvedBy, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if productID != nil {
		a.ProductID = *productID
	}
	if batchID != nil {
		a.BatchID = *batchID
	}
	if warehouseID != nil {
		a.WarehouseID = *warehouseID
	}
	if ackBy != nil {
		a.AcknowledgedBy = *ackBy
	}
	if resolvedBy != nil {
		a.ResolvedBy = *resolvedBy
	}
	return &a, nil
}

// Update actualiza estado y responsables de una alerta.
func (r *AlertRepo) Update(alert *entity.Alert) error {
	query := `
		UPDATE alerts
		SET status = $2, acknowledged_by = $3, resolved_by = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		alert.ID, alert.Status, nullIfEmpty(alert.AcknowledgedBy),
		nullIfEmpty(alert.ResolvedBy), alert.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update alert: %w", err)
	}
	return nil
}

// List lista alertas filtradas por estado, más recientes primero.
func (r *AlertRepo) List(status string, limit, offset int) ([]*entity.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts`
	var args []any
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()

	var out []*entity.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// FindActive busca una alerta activa del mismo tipo y entidad (deduplicación).
func (r *AlertRepo) FindActive(alertType, productID, batchID string) (*entity.Alert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM alerts
		WHERE type = $1 AND status = 'active'
		  AND COALESCE(product_id, '') = $2 AND COALESCE(batch_id, '') = $3
		LIMIT 1`
	a, err := scanAlert(r.q.QueryRow(context.Background(), query, alertType, productID, batchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find active alert: %w", err)
	}
	return a, nil
}

var _ repository.ReminderRepository = (*ReminderRepo)(nil)

// ReminderRepo implementación del puerto ReminderRepository sobre PostgreSQL.
type ReminderRepo struct {
	q Querier
}

// NewReminderRepository construye el adaptador de recordatorios.
func NewReminderRepository(q Querier) *ReminderRepo {
	return &ReminderRepo{q: q}
}

const reminderColumns = `id, title, message, due_at, status, created_by, created_at, updated_at`

// Create persiste un recordatorio.
func (r *ReminderRepo) Create(reminder *entity.Reminder) error {
	query := `
		INSERT INTO reminders (` + reminderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		reminder.ID, reminder.Title, reminder.Message, reminder.DueAt,
		reminder.Status, reminder.CreatedBy, reminder.CreatedAt, reminder.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert reminder: %w", err)
	}
	return nil
}

// GetByID obtiene un recordatorio por ID.
func (r *ReminderRepo) GetByID(id string) (*entity.Reminder, error) {
	var rem entity.Reminder
	err := r.q.QueryRow(context.Background(),
		`SELECT `+reminderColumns+` FROM reminders WHERE id = $1`, id,
	).Scan(&rem.ID, &rem.Title, &rem.Message, &rem.DueAt, &rem.Status, &rem.CreatedBy, &rem.CreatedAt, &rem.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reminder: %w", err)
	}
	return &rem, nil
}

// Update actualiza un recordatorio.
func (r *ReminderRepo) Update(reminder *entity.Reminder) error {
	query := `
		UPDATE reminders
		SET title = $2, message = $3, due_at = $4, status = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		reminder.ID, reminder.Title, reminder.Message, reminder.DueAt,
		reminder.Status, reminder.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update reminder: %w", err)
	}
	return nil
}

// List lista recordatorios filtrados por estado, próximos a vencer primero.
func (r *ReminderRepo) List(status string, limit, offset int) ([]*entity.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders`
	var args []any
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY due_at ASC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	defer rows.Close()
	return collectReminders(rows)
}

// ListDueBefore recordatorios pendientes vencidos antes de la fecha dada.
func (r *ReminderRepo) ListDueBefore(t time.Time) ([]*entity.Reminder, error) {
	query := `
		SELECT ` + reminderColumns + `
		FROM reminders
		WHERE status = 'pending' AND due_at < $1
		ORDER BY due_at ASC`
	rows, err := r.q.Query(context.Background(), query, t)
	if err != nil {
		return nil, fmt.Errorf("list due reminders: %w", err)
	}
	defer rows.Close()
	return collectReminders(rows)
}

func collectReminders(rows pgx.Rows) ([]*entity.Reminder, error) {
	var out []*entity.Reminder
	for rows.Next() {
		var rem entity.Reminder
		if err := rows.Scan(&rem.ID, &rem.Title, &rem.Message, &rem.DueAt, &rem.Status, &rem.CreatedBy, &rem.CreatedAt, &rem.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		out = append(out, &rem)
	}
	return out, rows.Err()
}
