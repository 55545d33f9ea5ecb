package repository

import (
	"time"

	"github.com/andilac/lacteos-api/internal/domain/entity"
)

// AlertRepository define el puerto de persistencia para alertas.
type AlertRepository interface {
	Create(alert *entity.Alert) error
	GetByID(id string) (*entity.Alert, error)
	Update(alert *entity.Alert) error
	List(status string, limit, offset int) ([]*entity.Alert, error)
	// FindActive busca una alerta activa del mismo tipo y entidad (deduplicación).
	FindActive(alertType, productID, batchID string) (*entity.Alert, error)
}

// ReminderRepository define el puerto de persistencia para recordatorios.
type ReminderRepository interface {
	Create(reminder *entity.Reminder) error
	GetByID(id string) (*entity.Reminder, error)
	Update(reminder *entity.Reminder) error
	List(status string, limit, offset int) ([]*entity.Reminder, error)
	ListDueBefore(t time.Time) ([]*entity.Reminder, error)
}
