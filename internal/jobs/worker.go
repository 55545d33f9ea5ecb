package jobs

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// Worker envuelve el servidor asynq y el scheduler de tareas periódicas.
type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	scheduler *asynq.Scheduler
	log       zerolog.Logger
}

// WorkerDeps handlers necesarios para armar el worker.
type WorkerDeps struct {
	ExpiryScan   *ExpiryScanJob
	LowStockScan *LowStockScanJob
	ReminderScan *ReminderScanJob
}

// NewWorker construye el worker con el scheduler ya registrado.
func NewWorker(redisOpts asynq.RedisClientOpt, deps WorkerDeps, log zerolog.Logger) (*Worker, error) {
	srv := asynq.NewServer(redisOpts, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			QueueDefault: 1,
		},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskBatchExpiryScan, deps.ExpiryScan.Handle)
	mux.HandleFunc(TaskLowStockScan, deps.LowStockScan.Handle)
	mux.HandleFunc(TaskReminderDueScan, deps.ReminderScan.Handle)

	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{Location: time.UTC})
	registrations := []struct {
		spec string
		task *asynq.Task
	}{
		{CronExpiryScan, NewBatchExpiryScanTask()},
		{CronLowStockScan, NewLowStockScanTask()},
		{CronReminderScan, NewReminderDueScanTask()},
	}
	for _, reg := range registrations {
		if _, err := scheduler.Register(reg.spec, reg.task, asynq.Queue(QueueDefault)); err != nil {
			return nil, err
		}
	}

	return &Worker{server: srv, mux: mux, scheduler: scheduler, log: log}, nil
}

// Run procesa tareas hasta que el contexto se cancele.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.scheduler.Start(); err != nil {
		return err
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- w.server.Run(w.mux)
	}()
	select {
	case <-ctx.Done():
		w.log.Info().Msg("deteniendo worker")
		w.scheduler.Shutdown()
		w.server.Shutdown()
		return nil
	case err := <-errCh:
		w.scheduler.Shutdown()
		return err
	}
}
