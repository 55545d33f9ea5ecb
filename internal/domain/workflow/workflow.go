// Package workflow define las máquinas de estado del dominio como tablas de
// transición explícitas. Los estados ad-hoc del sistema anterior se reemplazan
// por una función de transición que rechaza movimientos ilegales (ej. paid -> pre_order).
package workflow

import "github.com/andilac/lacteos-api/internal/domain"

// Machine tabla de transiciones válidas: estado origen -> estados destino permitidos.
type Machine map[string][]string

// CanTransition indica si la transición from -> to está permitida.
func (m Machine) CanTransition(from, to string) bool {
	for _, next := range m[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition valida y devuelve el estado destino, o ErrInvalidTransition.
func (m Machine) Transition(from, to string) (string, error) {
	if !m.CanTransition(from, to) {
		return "", domain.ErrInvalidTransition
	}
	return to, nil
}

// IsTerminal indica si el estado no tiene transiciones de salida.
func (m Machine) IsTerminal(state string) bool {
	return len(m[state]) == 0
}

// PurchaseOrderMachine ciclo lineal sin cancelación:
// pre_order -> issued -> received -> paid.
var PurchaseOrderMachine = Machine{
	"pre_order": {"issued"},
	"issued":    {"received"},
	"received":  {"paid"},
	"paid":      nil,
}

// ProductionOrderMachine: pre_production -> in_production -> completed,
// con cancelación desde cualquier estado no terminal.
var ProductionOrderMachine = Machine{
	"pre_production": {"in_production", "cancelled"},
	"in_production":  {"completed", "cancelled"},
	"completed":      nil,
	"cancelled":      nil,
}

// BatchMachine estados derivados y terminales: active -> expired | depleted.
var BatchMachine = Machine{
	"active":   {"expired", "depleted"},
	"expired":  nil,
	"depleted": nil,
}

// AlertMachine: active -> acknowledged -> resolved (también active -> resolved directo).
var AlertMachine = Machine{
	"active":       {"acknowledged", "resolved"},
	"acknowledged": {"resolved"},
	"resolved":     nil,
}

// ReminderMachine: pending -> completed | cancelled.
var ReminderMachine = Machine{
	"pending":   {"completed", "cancelled"},
	"completed": nil,
	"cancelled": nil,
}
