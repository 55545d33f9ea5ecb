package entity

import "time"

// Departamentos de empleados.
const (
	DepartmentProduction = "production"
	DepartmentWarehouse  = "warehouse"
	DepartmentQuality    = "quality"
	DepartmentAdmin      = "admin"
	DepartmentSales      = "sales"
)

// Roles para RBAC.
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleOperator   = "operator"
)

// Employee representa un empleado con cuenta en el sistema.
type Employee struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Department   string // production | warehouse | quality | admin | sales
	Role         string // admin | supervisor | operator
	Status       string // active | inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
