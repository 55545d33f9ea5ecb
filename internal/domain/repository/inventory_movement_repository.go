package repository

import (
	"time"

	"github.com/andilac/lacteos-api/internal/domain/entity"
)

// MovementFilter filtros del kardex.
type MovementFilter struct {
	ProductID   string
	WarehouseID string
	Type        string
	From        time.Time
	To          time.Time
	Limit       int
	Offset      int
}

// InventoryMovementRepository define el puerto de persistencia para movimientos.
// Los movimientos son inmutables: solo Create y consultas.
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	List(filter MovementFilter) ([]*entity.InventoryMovement, error)
}
