package jobs

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	appinv "github.com/andilac/lacteos-api/internal/application/inventory"
	"github.com/andilac/lacteos-api/internal/application/notification"
	"github.com/andilac/lacteos-api/internal/domain/entity"
)

// LowStockScanJob revisa los productos cuyo stock disponible total está por
// debajo del mínimo configurado y levanta alertas warning. El usecase de
// notificaciones deduplica contra alertas activas previas.
type LowStockScanJob struct {
	queries       *appinv.QueryUseCase
	notifications *notification.UseCase
	log           zerolog.Logger
}

// NewLowStockScanJob construye el handler del escaneo de stock bajo.
func NewLowStockScanJob(queries *appinv.QueryUseCase, notifications *notification.UseCase, log zerolog.Logger) *LowStockScanJob {
	return &LowStockScanJob{queries: queries, notifications: notifications, log: log}
}

// Handle procesa la tarea stock:low_scan.
func (j *LowStockScanJob) Handle(ctx context.Context, _ *asynq.Task) error {
	low, err := j.queries.LowStockProducts()
	if err != nil {
		return err
	}
	for _, p := range low {
		if _, err := j.notifications.RaiseAlert(
			entity.AlertTypeLowStock, entity.AlertSeverityWarning,
			p.ProductID, "", "",
			notification.LowStockMessage(p.Name, p.Available.StringFixed(2), p.MinStock.StringFixed(2)),
		); err != nil {
			return err
		}
	}
	j.log.Info().Int("products", len(low)).Msg("escaneo de stock bajo completado")
	return nil
}
