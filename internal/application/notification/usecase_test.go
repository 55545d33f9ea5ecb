package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andilac/lacteos-api/internal/application/dto"
	"github.com/andilac/lacteos-api/internal/domain"
	"github.com/andilac/lacteos-api/internal/domain/entity"
)

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
		if status != "" && a.Status != status {
			continue
		}
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
	var out []*entity.Reminder
	for _, r := range f.rows {
		if status != "" && r.Status != status {
			continue
		}
		cp := r
		out = append(out, &cp)
	}
	return out, nil
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

func newNotificationUC() (*UseCase, *fakeAlertRepo, *fakeReminderRepo) {
	alerts := &fakeAlertRepo{rows: map[string]entity.Alert{}}
	reminders := &fakeReminderRepo{rows: map[string]entity.Reminder{}}
	return NewUseCase(alerts, reminders), alerts, reminders
}

func TestRaiseAlert_DeduplicatesActive(t *testing.T) {
	uc, alerts, _ := newNotificationUC()

	first, err := uc.RaiseAlert(entity.AlertTypeLowStock, entity.AlertSeverityWarning, "p1", "", "w1", "stock bajo")
	require.NoError(t, err)

	second, err := uc.RaiseAlert(entity.AlertTypeLowStock, entity.AlertSeverityWarning, "p1", "", "w1", "stock bajo")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "no debe duplicar alertas activas")
	assert.Len(t, alerts.rows, 1)

	// Una vez resuelta, el mismo evento genera una alerta nueva
	_, err = uc.ResolveAlert(first.ID, "emp1")
	require.NoError(t, err)
	third, err := uc.RaiseAlert(entity.AlertTypeLowStock, entity.AlertSeverityWarning, "p1", "", "w1", "stock bajo")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)
}

func TestAlertLifecycle(t *testing.T) {
	uc, _, _ := newNotificationUC()
	alert, err := uc.RaiseAlert(entity.AlertTypeExpiringBatch, entity.AlertSeverityCritical, "p1", "b1", "w1", "lote por vencer")
	require.NoError(t, err)

	acked, err := uc.AcknowledgeAlert(alert.ID, "emp1")
	require.NoError(t, err)
	assert.Equal(t, entity.AlertStatusAcknowledged, acked.Status)

	resolved, err := uc.ResolveAlert(alert.ID, "emp2")
	require.NoError(t, err)
	assert.Equal(t, entity.AlertStatusResolved, resolved.Status)

	// Una alerta resuelta es terminal
	_, err = uc.AcknowledgeAlert(alert.ID, "emp1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestReminderLifecycle(t *testing.T) {
	uc, _, _ := newNotificationUC()
	reminder, err := uc.CreateReminder("emp1", dto.CreateReminderRequest{
		Title: "Pagar a El Ordeño",
		DueAt: time.Now().AddDate(0, 0, 3),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ReminderStatusPending, reminder.Status)

	done, err := uc.CompleteReminder(reminder.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReminderStatusCompleted, done.Status)

	_, err = uc.CancelReminder(reminder.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCreateReminder_RequiresDueDate(t *testing.T) {
	uc, _, _ := newNotificationUC()
	_, err := uc.CreateReminder("emp1", dto.CreateReminderRequest{Title: "sin fecha"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
