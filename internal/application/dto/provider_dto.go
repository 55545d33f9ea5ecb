package dto

import "time"

// CreateProviderRequest entrada para crear un proveedor.
// RUC ecuatoriano: mínimo 10 dígitos (cédula) y máximo 13 (RUC completo).
type CreateProviderRequest struct {
	BusinessName string   `json:"business_name" validate:"required,min=3,max=200"`
	RUC          string   `json:"ruc" validate:"required,min=10,max=13,numeric"`
	Email        string   `json:"email" validate:"required,email"`
	Phone        string   `json:"phone" validate:"omitempty,min=7,max=15"`
	Address      string   `json:"address" validate:"omitempty,max=300"`
	Type         string   `json:"type" validate:"required,oneof=contract recurrent"`
	Categories   []string `json:"categories" validate:"omitempty,dive,min=1"`
}

// UpdateProviderRequest entrada para actualizar un proveedor (campos opcionales).
type UpdateProviderRequest struct {
	BusinessName *string  `json:"business_name" validate:"omitempty,min=3,max=200"`
	Email        *string  `json:"email" validate:"omitempty,email"`
	Phone        *string  `json:"phone" validate:"omitempty,min=7,max=15"`
	Address      *string  `json:"address" validate:"omitempty,max=300"`
	Type         *string  `json:"type" validate:"omitempty,oneof=contract recurrent"`
	Categories   []string `json:"categories"`
	Status       *string  `json:"status" validate:"omitempty,oneof=active inactive"`
}

// ProviderResponse salida de un proveedor.
type ProviderResponse struct {
	ID           string    `json:"id"`
	BusinessName string    `json:"business_name"`
	RUC          string    `json:"ruc"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	Type         string    `json:"type"`
	Categories   []string  `json:"categories"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProviderListResponse lista paginada de proveedores.
type ProviderListResponse struct {
	Items []ProviderResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
