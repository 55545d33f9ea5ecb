package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRecipe receta versionada (lista de materiales) para producir un producto.
// La edición no muta una versión publicada: crea una versión nueva; duplicar
// también incrementa Version.
type ProductRecipe struct {
	ID            string
	ProductID     string // producto terminado
	Name          string
	Version       int
	Ingredients   []RecipeIngredient
	YieldQuantity decimal.Decimal // cantidad producida por "una receta"
	YieldUnit     string
	Status        string // active | inactive
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RecipeIngredient ingrediente de una receta.
type RecipeIngredient struct {
	ID        string
	RecipeID  string
	ProductID string
	Quantity  decimal.Decimal // por YieldQuantity de producto terminado
	Unit      string
}
