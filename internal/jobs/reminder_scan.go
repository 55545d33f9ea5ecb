package jobs

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/andilac/lacteos-api/internal/domain/repository"
)

// ReminderScanJob registra en el log los recordatorios de pago pendientes
// cuya fecha de vencimiento ya pasó, para seguimiento del equipo de compras.
type ReminderScanJob struct {
	reminders repository.ReminderRepository
	log       zerolog.Logger
}

// NewReminderScanJob construye el handler del escaneo de recordatorios.
func NewReminderScanJob(reminders repository.ReminderRepository, log zerolog.Logger) *ReminderScanJob {
	return &ReminderScanJob{reminders: reminders, log: log}
}

// Handle procesa la tarea reminder:due_scan.
func (j *ReminderScanJob) Handle(ctx context.Context, _ *asynq.Task) error {
	due, err := j.reminders.ListDueBefore(time.Now())
	if err != nil {
		return err
	}
	for _, r := range due {
		j.log.Warn().
			Str("reminder_id", r.ID).
			Str("title", r.Title).
			Time("due_at", r.DueAt).
			Msg("recordatorio pendiente vencido")
	}
	j.log.Info().Int("due", len(due)).Msg("escaneo de recordatorios completado")
	return nil
}
