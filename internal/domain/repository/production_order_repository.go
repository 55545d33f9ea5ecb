package repository

import "github.com/andilac/lacteos-api/internal/domain/entity"

// ProductionOrderRepository define el puerto de persistencia para órdenes de producción.
type ProductionOrderRepository interface {
	Create(order *entity.ProductionOrder) error
	GetByID(id string) (*entity.ProductionOrder, error)
	Update(order *entity.ProductionOrder) error
	List(status string, limit, offset int) ([]*entity.ProductionOrder, error)
	CreateConsumption(consumption *entity.IngredientConsumption) error
	ListConsumptions(orderID string) ([]*entity.IngredientConsumption, error)
}
