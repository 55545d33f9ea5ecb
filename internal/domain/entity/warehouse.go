package entity

import "time"

// Tipos de bodega.
const (
	WarehouseTypeRawMaterial   = "raw_material"
	WarehouseTypeFinishedGoods = "finished_goods"
	WarehouseTypeGeneral       = "general"
)

// Warehouse representa una bodega donde se almacena inventario (multi-bodega).
type Warehouse struct {
	ID        string
	Code      string
	Name      string
	Location  string
	Type      string // raw_material | finished_goods | general
	Status    string // active | inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
