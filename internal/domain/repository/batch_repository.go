package repository

import (
	"time"

	"github.com/andilac/lacteos-api/internal/domain/entity"
)

// BatchRepository define el puerto de persistencia para lotes.
type BatchRepository interface {
	Create(batch *entity.Batch) error
	GetByID(id string) (*entity.Batch, error)
	Update(batch *entity.Batch) error
	List(productID, warehouseID, status string, limit, offset int) ([]*entity.Batch, error)
	// ListActiveFEFO devuelve los lotes activos de un producto en una bodega
	// ordenados por vencimiento ascendente (NULL al final), para consumo FEFO.
	ListActiveFEFO(productID, warehouseID string) ([]*entity.Batch, error)
	// ListExpiringBefore lotes activos con vencimiento anterior a la fecha dada.
	ListExpiringBefore(t time.Time) ([]*entity.Batch, error)
}
