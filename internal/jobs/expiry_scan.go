package jobs

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/andilac/lacteos-api/internal/application/notification"
	"github.com/andilac/lacteos-api/internal/domain/entity"
	"github.com/andilac/lacteos-api/internal/domain/repository"
)

// ExpiryScanJob marca como vencidos los lotes activos cuya fecha de vencimiento
// ya pasó (FEFO deja de considerarlos) y levanta alertas: critical para lotes
// vencidos, warning para los que vencen dentro de la ventana configurada.
type ExpiryScanJob struct {
	batches       repository.BatchRepository
	notifications *notification.UseCase
	expiryDays    int
	log           zerolog.Logger
}

// NewExpiryScanJob construye el handler del escaneo de vencimientos.
func NewExpiryScanJob(
	batches repository.BatchRepository,
	notifications *notification.UseCase,
	expiryDays int,
	log zerolog.Logger,
) *ExpiryScanJob {
	if expiryDays <= 0 {
		expiryDays = 7
	}
	return &ExpiryScanJob{batches: batches, notifications: notifications, expiryDays: expiryDays, log: log}
}

// Handle procesa la tarea batch:expiry_scan.
func (j *ExpiryScanJob) Handle(ctx context.Context, _ *asynq.Task) error {
	now := time.Now()

	// Lotes ya vencidos: marcar expired + alerta crítica.
	expired, err := j.batches.ListExpiringBefore(now)
	if err != nil {
		return err
	}
	for _, b := range expired {
		b.Status = entity.BatchStatusExpired
		b.UpdatedAt = now
		if err := j.batches.Update(b); err != nil {
			return err
		}
		if _, err := j.notifications.RaiseAlert(
			entity.AlertTypeExpiredBatch, entity.AlertSeverityCritical,
			b.ProductID, b.ID, b.WarehouseID,
			notification.ExpiredBatchMessage(b.Code),
		); err != nil {
			return err
		}
		j.log.Warn().Str("batch", b.Code).Msg("lote marcado como vencido")
	}

	// Lotes por vencer dentro de la ventana: alerta warning (dedup en el usecase).
	horizon := now.AddDate(0, 0, j.expiryDays)
	expiring, err := j.batches.ListExpiringBefore(horizon)
	if err != nil {
		return err
	}
	raised := 0
	for _, b := range expiring {
		if b.ExpiryDate == nil || !b.ExpiryDate.After(now) {
			continue // ya procesado arriba
		}
		if _, err := j.notifications.RaiseAlert(
			entity.AlertTypeExpiringBatch, entity.AlertSeverityWarning,
			b.ProductID, b.ID, b.WarehouseID,
			notification.ExpiringBatchMessage(b.Code, *b.ExpiryDate),
		); err != nil {
			return err
		}
		raised++
	}

	j.log.Info().
		Int("expired", len(expired)).
		Int("expiring", raised).
		Msg("escaneo de vencimientos completado")
	return nil
}
