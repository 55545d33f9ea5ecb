package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Code                  string          `json:"code" validate:"required,min=1,max=50"`
	Name                  string          `json:"name" validate:"required,min=2,max=200"`
	Description           string          `json:"description" validate:"omitempty,max=500"`
	Category              string          `json:"category" validate:"omitempty,max=100"`
	Unit                  string          `json:"unit" validate:"required,min=1,max=20"`
	StorageType           string          `json:"storage_type" validate:"required,oneof=bulk batch"`
	MinStock              decimal.Decimal `json:"min_stock"`
	RequiresExpiryControl bool            `json:"requires_expiry_control"`
}

// UpdateProductRequest entrada para actualizar un producto (sin Cost: se maneja vía movimientos).
type UpdateProductRequest struct {
	Name                  *string          `json:"name" validate:"omitempty,min=2,max=200"`
	Description           *string          `json:"description" validate:"omitempty,max=500"`
	Category              *string          `json:"category" validate:"omitempty,max=100"`
	Unit                  *string          `json:"unit" validate:"omitempty,min=1,max=20"`
	MinStock              *decimal.Decimal `json:"min_stock"`
	RequiresExpiryControl *bool            `json:"requires_expiry_control"`
	Status                *string          `json:"status" validate:"omitempty,oneof=active inactive"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                    string          `json:"id"`
	Code                  string          `json:"code"`
	Name                  string          `json:"name"`
	Description           string          `json:"description"`
	Category              string          `json:"category"`
	Unit                  string          `json:"unit"`
	StorageType           string          `json:"storage_type"`
	MinStock              decimal.Decimal `json:"min_stock"`
	RequiresExpiryControl bool            `json:"requires_expiry_control"`
	Cost                  decimal.Decimal `json:"cost"`
	Status                string          `json:"status"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
