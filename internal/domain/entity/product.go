package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de almacenamiento de producto.
const (
	StorageTypeBulk  = "bulk"  // granel: stock como cantidad indiferenciada
	StorageTypeBatch = "batch" // por lotes: cada entrada genera un lote con vencimiento
)

// Product representa un producto o insumo del inventario (multi-bodega).
// Cost es promedio ponderado calculado desde movimientos de entrada;
// el stock se materializa por bodega en Stock y, si StorageType es batch, por lote.
type Product struct {
	ID                    string
	Code                  string // código único
	Name                  string
	Description           string
	Category              string
	Unit                  string // kg, l, unidad, etc.
	StorageType           string // bulk | batch
	MinStock              decimal.Decimal
	RequiresExpiryControl bool
	Cost                  decimal.Decimal // costo promedio ponderado (inicia en 0)
	Status                string          // active | inactive
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
