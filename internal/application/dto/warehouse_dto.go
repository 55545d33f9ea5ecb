package dto

import "time"

// CreateWarehouseRequest entrada para crear una bodega.
type CreateWarehouseRequest struct {
	Code     string `json:"code" validate:"required,min=1,max=20"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Location string `json:"location" validate:"omitempty,max=200"`
	Type     string `json:"type" validate:"required,oneof=raw_material finished_goods general"`
}

// UpdateWarehouseRequest entrada para actualizar una bodega.
type UpdateWarehouseRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=100"`
	Location *string `json:"location" validate:"omitempty,max=200"`
	Type     *string `json:"type" validate:"omitempty,oneof=raw_material finished_goods general"`
	Status   *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WarehouseListResponse lista paginada de bodegas.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
