// Package jobs define las tareas periódicas de la aplicación sobre asynq:
// escaneo de lotes vencidos/por vencer, stock bajo y recordatorios vencidos.
package jobs

import "github.com/hibiken/asynq"

// Cola y tipos de tarea.
const (
	QueueDefault = "default"

	TaskBatchExpiryScan = "batch:expiry_scan"
	TaskLowStockScan    = "stock:low_scan"
	TaskReminderDueScan = "reminder:due_scan"
)

// Expresiones cron por defecto para el scheduler.
const (
	CronExpiryScan   = "0 6 * * *"    // diario 06:00
	CronLowStockScan = "*/30 * * * *" // cada 30 minutos
	CronReminderScan = "*/15 * * * *" // cada 15 minutos
)

// NewBatchExpiryScanTask tarea de escaneo de vencimientos (sin payload).
func NewBatchExpiryScanTask() *asynq.Task {
	return asynq.NewTask(TaskBatchExpiryScan, nil)
}

// NewLowStockScanTask tarea de escaneo de stock bajo.
func NewLowStockScanTask() *asynq.Task {
	return asynq.NewTask(TaskLowStockScan, nil)
}

// NewReminderDueScanTask tarea de escaneo de recordatorios vencidos.
func NewReminderDueScanTask() *asynq.Task {
	return asynq.NewTask(TaskReminderDueScan, nil)
}
