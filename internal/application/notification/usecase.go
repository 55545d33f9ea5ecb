package notification

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/andilac/lacteos-api/internal/application/dto"
	"github.com/andilac/lacteos-api/internal/domain"
	"github.com/andilac/lacteos-api/internal/domain/entity"
	"github.com/andilac/lacteos-api/internal/domain/repository"
	"github.com/andilac/lacteos-api/internal/domain/workflow"
)

// UseCase alertas generadas por los escaneos periódicos y recordatorios manuales.
type UseCase struct {
	alertRepo    repository.AlertRepository
	reminderRepo repository.ReminderRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(alertRepo repository.AlertRepository, reminderRepo repository.ReminderRepository) *UseCase {
	return &UseCase{alertRepo: alertRepo, reminderRepo: reminderRepo}
}

// RaiseAlert crea una alerta si no existe ya una activa del mismo tipo sobre la
// misma entidad (deduplicación). Devuelve la alerta existente si ya había una.
func (uc *UseCase) RaiseAlert(alertType, severity, productID, batchID, warehouseID, message string) (*dto.AlertResponse, error) {
	existing, err := uc.alertRepo.FindActive(alertType, productID, batchID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return toAlertResponse(existing), nil
	}
	now := time.Now()
	alert := &entity.Alert{
		ID:          uuid.New().String(),
		Type:        alertType,
		Severity:    severity,
		ProductID:   productID,
		BatchID:     batchID,
		WarehouseID: warehouseID,
		Message:     message,
		Status:      entity.AlertStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.alertRepo.Create(alert); err != nil {
		return nil, err
	}
	return toAlertResponse(alert), nil
}

// ListAlerts lista alertas, opcionalmente por estado.
func (uc *UseCase) ListAlerts(status string, page dto.PageRequest) ([]dto.AlertResponse, error) {
	page.DefaultPage()
	alerts, err := uc.alertRepo.List(status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, *toAlertResponse(a))
	}
	return out, nil
}

// AcknowledgeAlert marca una alerta como vista por un empleado.
func (uc *UseCase) AcknowledgeAlert(id, employeeID string) (*dto.AlertResponse, error) {
	return uc.transitionAlert(id, entity.AlertStatusAcknowledged, func(a *entity.Alert) {
		a.AcknowledgedBy = employeeID
	})
}

// ResolveAlert cierra una alerta.
func (uc *UseCase) ResolveAlert(id, employeeID string) (*dto.AlertResponse, error) {
	return uc.transitionAlert(id, entity.AlertStatusResolved, func(a *entity.Alert) {
		a.ResolvedBy = employeeID
	})
}

func (uc *UseCase) transitionAlert(id, target string, apply func(*entity.Alert)) (*dto.AlertResponse, error) {
	alert, err := uc.alertRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if alert == nil {
		return nil, domain.ErrNotFound
	}
	next, err := workflow.AlertMachine.Transition(alert.Status, target)
	if err != nil {
		return nil, err
	}
	alert.Status = next
	apply(alert)
	alert.UpdatedAt = time.Now()
	if err := uc.alertRepo.Update(alert); err != nil {
		return nil, err
	}
	return toAlertResponse(alert), nil
}

// CreateReminder crea un recordatorio manual con fecha de vencimiento.
func (uc *UseCase) CreateReminder(createdBy string, in dto.CreateReminderRequest) (*dto.ReminderResponse, error) {
	if in.DueAt.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	reminder := &entity.Reminder{
		ID:        uuid.New().String(),
		Title:     in.Title,
		Message:   in.Message,
		DueAt:     in.DueAt,
		Status:    entity.ReminderStatusPending,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.reminderRepo.Create(reminder); err != nil {
		return nil, err
	}
	return toReminderResponse(reminder), nil
}

// ListReminders lista recordatorios, opcionalmente por estado.
func (uc *UseCase) ListReminders(status string, page dto.PageRequest) ([]dto.ReminderResponse, error) {
	page.DefaultPage()
	reminders, err := uc.reminderRepo.List(status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReminderResponse, 0, len(reminders))
	for _, r := range reminders {
		out = append(out, *toReminderResponse(r))
	}
	return out, nil
}

// CompleteReminder marca un recordatorio como atendido.
func (uc *UseCase) CompleteReminder(id string) (*dto.ReminderResponse, error) {
	return uc.transitionReminder(id, entity.ReminderStatusCompleted)
}

// CancelReminder descarta un recordatorio pendiente.
func (uc *UseCase) CancelReminder(id string) (*dto.ReminderResponse, error) {
	return uc.transitionReminder(id, entity.ReminderStatusCancelled)
}

func (uc *UseCase) transitionReminder(id, target string) (*dto.ReminderResponse, error) {
	reminder, err := uc.reminderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if reminder == nil {
		return nil, domain.ErrNotFound
	}
	next, err := workflow.ReminderMachine.Transition(reminder.Status, target)
	if err != nil {
		return nil, err
	}
	reminder.Status = next
	reminder.UpdatedAt = time.Now()
	if err := uc.reminderRepo.Update(reminder); err != nil {
		return nil, err
	}
	return toReminderResponse(reminder), nil
}

// LowStockMessage mensaje estándar de alerta de stock bajo.
func LowStockMessage(name string, available, minStock string) string {
	return fmt.Sprintf("stock bajo de %s: %s disponible, mínimo %s", name, available, minStock)
}

// ExpiringBatchMessage mensaje estándar de alerta de lote por vencer.
func ExpiringBatchMessage(code string, expiry time.Time) string {
	return fmt.Sprintf("lote %s vence el %s", code, expiry.Format("2006-01-02"))
}

// ExpiredBatchMessage mensaje estándar de alerta de lote vencido.
func ExpiredBatchMessage(code string) string {
	return fmt.Sprintf("lote %s vencido y retirado del stock disponible", code)
}

func toAlertResponse(a *entity.Alert) *dto.AlertResponse {
	return &dto.AlertResponse{
		ID:          a.ID,
		Type:        a.Type,
		Severity:    a.Severity,
		ProductID:   a.ProductID,
		BatchID:     a.BatchID,
		WarehouseID: a.WarehouseID,
		Message:     a.Message,
		Status:      a.Status,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toReminderResponse(r *entity.Reminder) *dto.ReminderResponse {
	return &dto.ReminderResponse{
		ID:        r.ID,
		Title:     r.Title,
		Message:   r.Message,
		DueAt:     r.DueAt,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
