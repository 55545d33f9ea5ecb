package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	appinv "github.com/andilac/lacteos-api/internal/application/inventory"
	"github.com/andilac/lacteos-api/internal/application/notification"
	"github.com/andilac/lacteos-api/internal/infrastructure/postgres"
	"github.com/andilac/lacteos-api/internal/jobs"
	"github.com/andilac/lacteos-api/pkg/config"
	"github.com/andilac/lacteos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name + "-worker",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("redis", cfg.Redis.Addr).
		Msg("iniciando worker")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)
	reminderRepo := postgres.NewReminderRepository(pool)

	notificationUC := notification.NewUseCase(alertRepo, reminderRepo)
	inventoryQueryUC := appinv.NewQueryUseCase(stockRepo, productRepo, batchRepo, movementRepo)

	redisOpts := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	worker, err := jobs.NewWorker(redisOpts, jobs.WorkerDeps{
		ExpiryScan:   jobs.NewExpiryScanJob(batchRepo, notificationUC, cfg.Alerts.ExpiryDays, log.Component("expiry_scan")),
		LowStockScan: jobs.NewLowStockScanJob(inventoryQueryUC, notificationUC, log.Component("low_stock_scan")),
		ReminderScan: jobs.NewReminderScanJob(reminderRepo, log.Component("reminder_scan")),
	}, log.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("configuración del worker")
	}

	runCtx, cancel := context.WithCancel(context.Background())
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info().Msg("señal de apagado recibida, cerrando worker...")
		cancel()
	}()

	if err := worker.Run(runCtx); err != nil {
		log.Fatal().Err(err).Msg("worker finalizado con error")
	}

	log.Info().Msg("worker detenido")
}
