package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andilac/lacteos-api/internal/application/notification"
	"github.com/andilac/lacteos-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeBatchRepo struct{ rows map[string]entity.Batch }

func (f *fakeBatchRepo) Create(b *entity.Batch) error { f.rows[b.ID] = *b; return nil }
func (f *fakeBatchRepo) GetByID(id string) (*entity.Batch, error) {
	if b, ok := f.rows[id]; ok {
		cp := b
		return &cp, nil
	}
	return nil, nil
}
func (f *fakeBatchRepo) Update(b *entity.Batch) error { f.rows[b.ID] = *b; return nil }
func (f *fakeBatchRepo) List(productID, warehouseID, status string, limit, offset int) ([]*entity.Batch, error) {
	return nil, nil
}
func (f *fakeBatchRepo) ListActiveFEFO(productID, warehouseID string) ([]*entity.Batch, error) {
	return nil, nil
}
func (f *fakeBatchRepo) ListExpiringBefore(t time.Time) ([]*entity.Batch, error) {
	var out []*entity.Batch
	for _, b := range f.rows {
		if b.Status == entity.BatchStatusActive && b.ExpiryDate != nil && b.ExpiryDate.Before(t) {
			cp := b
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeAlertRepo struct{ rows map[string]entity.Alert }

func (f *fakeAlertRepo) Create(a *entity.Alert) error { f.rows[a.ID] = *a; return nil }
func (f *fakeAlertRepo) GetByID(id string) (*entity.Alert, error) {
	if a, ok := f.rows[id]; ok {
		cp := a
		return &cp, nil
	}
	return nil, nil
}
func (f *fakeAlertRepo) Update(a *entity.Alert) error { f.rows[a.ID] = *a; return nil }
func (f *fakeAlertRepo) List(status string, limit, offset int) ([]*entity.Alert, error) {
	var out []*entity.Alert
	for _, a := range f.rows {
		cp := a
		out = append(out, &cp)
	}
	return out, nil
}
func (f *fakeAlertRepo) FindActive(alertType, productID, batchID string) (*entity.Alert, error) {
	for _, a := range f.rows {
		if a.Status == entity.AlertStatusActive && a.Type == alertType && a.ProductID == productID && a.BatchID == batchID {
			cp := a
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeReminderRepo struct{ rows map[string]entity.Reminder }

func (f *fakeReminderRepo) Create(r *entity.Reminder) error { f.rows[r.ID] = *r; return nil }
func (f *fakeReminderRepo) GetByID(id string) (*entity.Reminder, error) {
	if r, ok := f.rows[id]; ok {
		cp := r
		return &cp, nil
	}
	return nil, nil
}
func (f *fakeReminderRepo) Update(r *entity.Reminder) error { f.rows[r.ID] = *r; return nil }
func (f *fakeReminderRepo) List(status string, limit, offset int) ([]*entity.Reminder, error) {
	return nil, nil
}
func (f *fakeReminderRepo) ListDueBefore(t time.Time) ([]*entity.Reminder, error) {
	var out []*entity.Reminder
	for _, r := range f.rows {
		if r.Status == entity.ReminderStatusPending && r.DueAt.Before(t) {
			cp := r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func timePtr(t time.Time) *time.Time { return &t }

func seedBatch(repo *fakeBatchRepo, id, code string, expiry *time.Time) {
	repo.rows[id] = entity.Batch{
		ID:              id,
		Code:            code,
		ProductID:       "p1",
		WarehouseID:     "w1",
		InitialQuantity: decimal.NewFromInt(100),
		CurrentQuantity: decimal.NewFromInt(100),
		EntryDate:       time.Now().AddDate(0, 0, -30),
		ExpiryDate:      expiry,
		Status:          entity.BatchStatusActive,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestExpiryScan_MarcaVencidosYAlerta(t *testing.T) {
	batches := &fakeBatchRepo{rows: map[string]entity.Batch{}}
	alerts := &fakeAlertRepo{rows: map[string]entity.Alert{}}
	notifUC := notification.NewUseCase(alerts, &fakeReminderRepo{rows: map[string]entity.Reminder{}})

	now := time.Now()
	seedBatch(batches, "b1", "LOT-2026-000001", timePtr(now.AddDate(0, 0, -1))) // ya vencido
	seedBatch(batches, "b2", "LOT-2026-000002", timePtr(now.AddDate(0, 0, 3)))  // vence en 3 días
	seedBatch(batches, "b3", "LOT-2026-000003", timePtr(now.AddDate(0, 0, 30))) // fuera de ventana
	seedBatch(batches, "b4", "LOT-2026-000004", nil)                            // sin vencimiento

	job := NewExpiryScanJob(batches, notifUC, 7, zerolog.Nop())
	require.NoError(t, job.Handle(context.Background(), NewBatchExpiryScanTask()))

	// b1 pasa a expired; el resto sigue activo
	assert.Equal(t, entity.BatchStatusExpired, batches.rows["b1"].Status)
	assert.Equal(t, entity.BatchStatusActive, batches.rows["b2"].Status)
	assert.Equal(t, entity.BatchStatusActive, batches.rows["b3"].Status)
	assert.Equal(t, entity.BatchStatusActive, batches.rows["b4"].Status)

	// Alertas: una crítica (b1 vencido) y una warning (b2 por vencer)
	var critical, warning int
	for _, a := range alerts.rows {
		switch a.Type {
		case entity.AlertTypeExpiredBatch:
			critical++
			assert.Equal(t, entity.AlertSeverityCritical, a.Severity)
			assert.Equal(t, "b1", a.BatchID)
		case entity.AlertTypeExpiringBatch:
			warning++
			assert.Equal(t, entity.AlertSeverityWarning, a.Severity)
			assert.Equal(t, "b2", a.BatchID)
		}
	}
	assert.Equal(t, 1, critical)
	assert.Equal(t, 1, warning)
}

func TestExpiryScan_Idempotente(t *testing.T) {
	batches := &fakeBatchRepo{rows: map[string]entity.Batch{}}
	alerts := &fakeAlertRepo{rows: map[string]entity.Alert{}}
	notifUC := notification.NewUseCase(alerts, &fakeReminderRepo{rows: map[string]entity.Reminder{}})

	seedBatch(batches, "b1", "LOT-2026-000001", timePtr(time.Now().AddDate(0, 0, 2)))

	job := NewExpiryScanJob(batches, notifUC, 7, zerolog.Nop())
	require.NoError(t, job.Handle(context.Background(), NewBatchExpiryScanTask()))
	require.NoError(t, job.Handle(context.Background(), NewBatchExpiryScanTask()))

	// La deduplicación evita alertas repetidas para el mismo lote
	assert.Len(t, alerts.rows, 1)
}
