package repository

import "github.com/andilac/lacteos-api/internal/domain/entity"

// RecipeRepository define el puerto de persistencia para recetas.
// Create persiste la receta con sus ingredientes; GetByID la devuelve completa.
type RecipeRepository interface {
	Create(recipe *entity.ProductRecipe) error
	GetByID(id string) (*entity.ProductRecipe, error)
	Update(recipe *entity.ProductRecipe) error
	List(productID string, limit, offset int) ([]*entity.ProductRecipe, error)
	// MaxVersionForProduct devuelve la versión más alta registrada para el producto (0 si no hay).
	MaxVersionForProduct(productID string) (int, error)
}
