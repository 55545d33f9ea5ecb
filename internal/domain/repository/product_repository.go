package repository

import (
	"github.com/shopspring/decimal"

	"github.com/andilac/lacteos-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateCost(productID string, cost decimal.Decimal) error
	List(limit, offset int) ([]*entity.Product, error)
	// ListBelowMinStock devuelve los productos cuyo stock total es menor a MinStock.
	ListBelowMinStock() ([]*entity.Product, error)
}
