package entity

import "time"

// Tipos de proveedor.
const (
	ProviderTypeContract  = "contract"  // con contrato marco
	ProviderTypeRecurrent = "recurrent" // compra recurrente sin contrato
)

// Estados de catálogo (proveedores, productos, bodegas, empleados).
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Provider representa un proveedor de materia prima o insumos.
// RUC ecuatoriano: 10 a 13 dígitos. El estado es un toggle suave, no se elimina.
type Provider struct {
	ID           string
	BusinessName string
	RUC          string
	Email        string
	Phone        string
	Address      string
	Type         string // contract | recurrent
	Categories   []string
	Status       string // active | inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
