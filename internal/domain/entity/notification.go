package entity

import "time"

// Tipos y severidades de alerta.
const (
	AlertTypeLowStock      = "low_stock"
	AlertTypeExpiringBatch = "expiring_batch"
	AlertTypeExpiredBatch  = "expired_batch"

	AlertSeverityInfo     = "info"
	AlertSeverityWarning  = "warning"
	AlertSeverityCritical = "critical"
)

// Estados de alerta (ver workflow.AlertMachine).
const (
	AlertStatusActive       = "active"
	AlertStatusAcknowledged = "acknowledged"
	AlertStatusResolved     = "resolved"
)

// Estados de recordatorio (ver workflow.ReminderMachine).
const (
	ReminderStatusPending   = "pending"
	ReminderStatusCompleted = "completed"
	ReminderStatusCancelled = "cancelled"
)

// Alert alerta generada por los escaneos periódicos (stock bajo, lotes por vencer).
// Se deduplica por Type+ProductID+BatchID mientras exista una alerta activa.
type Alert struct {
	ID             string
	Type           string // low_stock | expiring_batch | expired_batch
	Severity       string // info | warning | critical
	ProductID      string
	BatchID        string
	WarehouseID    string
	Message        string
	Status         string // active | acknowledged | resolved
	AcknowledgedBy string
	ResolvedBy     string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Reminder recordatorio manual con fecha de vencimiento.
type Reminder struct {
	ID        string
	Title     string
	Message   string
	DueAt     time.Time
	Status    string // pending | completed | cancelled
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}
