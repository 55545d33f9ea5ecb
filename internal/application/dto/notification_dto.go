package dto

import "time"

// AlertResponse salida de una alerta.
type AlertResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Severity    string    `json:"severity"`
	ProductID   string    `json:"product_id,omitempty"`
	BatchID     string    `json:"batch_id,omitempty"`
	WarehouseID string    `json:"warehouse_id,omitempty"`
	Message     string    `json:"message"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AlertListResponse lista paginada de alertas.
type AlertListResponse struct {
	Items []AlertResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// CreateReminderRequest entrada para crear un recordatorio.
type CreateReminderRequest struct {
	Title   string    `json:"title" validate:"required,min=2,max=150"`
	Message string    `json:"message" validate:"omitempty,max=500"`
	DueAt   time.Time `json:"due_at" validate:"required"`
}

// ReminderResponse salida de un recordatorio.
type ReminderResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	DueAt     time.Time `json:"due_at"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReminderListResponse lista paginada de recordatorios.
type ReminderListResponse struct {
	Items []ReminderResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
