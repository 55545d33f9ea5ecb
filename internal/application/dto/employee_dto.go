package dto

import "time"

// CreateEmployeeRequest entrada para registrar un empleado (solo admin).
type CreateEmployeeRequest struct {
	Name       string `json:"name" validate:"required,min=2,max=150"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Phone      string `json:"phone" validate:"omitempty,min=7,max=15"`
	Department string `json:"department" validate:"required,oneof=production warehouse quality admin sales"`
	Role       string `json:"role" validate:"omitempty,oneof=admin supervisor operator"`
}

// UpdateEmployeeRequest entrada para actualizar un empleado.
type UpdateEmployeeRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=2,max=150"`
	Phone      *string `json:"phone" validate:"omitempty,min=7,max=15"`
	Department *string `json:"department" validate:"omitempty,oneof=production warehouse quality admin sales"`
	Role       *string `json:"role" validate:"omitempty,oneof=admin supervisor operator"`
	Status     *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// EmployeeResponse salida de un empleado (sin hash de contraseña).
type EmployeeResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Department string    `json:"department"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// EmployeeListResponse lista paginada de empleados.
type EmployeeListResponse struct {
	Items []EmployeeResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT + datos del empleado.
type LoginResponse struct {
	Token    string           `json:"token"`
	Employee EmployeeResponse `json:"employee"`
}
