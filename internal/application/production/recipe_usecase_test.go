package production

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andilac/lacteos-api/internal/application/dto"
	"github.com/andilac/lacteos-api/internal/domain"
	"github.com/andilac/lacteos-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Receta de queso fresco: 10 l de leche y 0.5 kg de sal por 2 kg de queso.
func quesoRecipe(t *testing.T, f *prodFixture) *dto.RecipeResponse {
	t.Helper()
	resp, err := f.recipeUC.Create(dto.CreateRecipeRequest{
		ProductID: "queso",
		Name:      "Queso fresco",
		Ingredients: []dto.RecipeIngredientRequest{
			{ProductID: "leche", Quantity: dec("10"), Unit: "l"},
			{ProductID: "sal", Quantity: dec("0.5"), Unit: "kg"},
		},
		YieldQuantity: dec("2"),
		YieldUnit:     "kg",
	})
	require.NoError(t, err)
	return resp
}

func seedQuesoProducts(f *prodFixture) {
	f.seedProduct("queso", entity.StorageTypeBatch, decimal.Zero, true)
	f.seedProduct("leche", entity.StorageTypeBulk, dec("0.50"), false)
	f.seedProduct("sal", entity.StorageTypeBulk, dec("0.30"), false)
}

func TestCreateRecipe_StartsAtVersionOne(t *testing.T) {
	f := newProdFixture()
	seedQuesoProducts(f)

	recipe := quesoRecipe(t, f)
	assert.Equal(t, 1, recipe.Version)
	assert.Equal(t, entity.StatusActive, recipe.Status)
	require.Len(t, recipe.Ingredients, 2)
}

func TestCreateRecipe_RequiresIngredients(t *testing.T) {
	f := newProdFixture()
	seedQuesoProducts(f)

	_, err := f.recipeUC.Create(dto.CreateRecipeRequest{
		ProductID:     "queso",
		Name:          "Queso sin receta",
		Ingredients:   nil,
		YieldQuantity: dec("2"),
		YieldUnit:     "kg",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateRecipe_RejectsSelfIngredient(t *testing.T) {
	f := newProdFixture()
	seedQuesoProducts(f)

	_, err := f.recipeUC.Create(dto.CreateRecipeRequest{
		ProductID: "queso",
		Name:      "Queso recursivo",
		Ingredients: []dto.RecipeIngredientRequest{
			{ProductID: "queso", Quantity: dec("1"), Unit: "kg"},
		},
		YieldQuantity: dec("2"),
		YieldUnit:     "kg",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateRecipe_NewRecipeIncrementsVersion(t *testing.T) {
	f := newProdFixture()
	seedQuesoProducts(f)

	first := quesoRecipe(t, f)
	second := quesoRecipe(t, f)
	assert.Equal(t, 1, first.Version)
	assert.Equal(t, 2, second.Version)
}

func TestDuplicateRecipe_CopiesIngredientsWithNewVersion(t *testing.T) {
	f := newProdFixture()
	seedQuesoProducts(f)

	src := quesoRecipe(t, f)
	dup, err := f.recipeUC.Duplicate(src.ID)
	require.NoError(t, err)

	assert.NotEqual(t, src.ID, dup.ID)
	assert.Equal(t, 2, dup.Version)
	require.Len(t, dup.Ingredients, 2)
	assert.NotEqual(t, src.Ingredients[0].ID, dup.Ingredients[0].ID)
	assert.True(t, dup.Ingredients[0].Quantity.Equal(src.Ingredients[0].Quantity))
}

func TestValidateIngredientsStock_ScalesByYield(t *testing.T) {
	f := newProdFixture()
	seedQuesoProducts(f)
	recipe := quesoRecipe(t, f)

	// Para 4 kg de queso (factor 2): 20 l de leche y 1 kg de sal
	f.seedStock("leche", "w1", dec("20"))
	f.seedStock("sal", "w1", dec("1"))

	resp, err := f.recipeUC.ValidateIngredientsStock(recipe.ID, dec("4"))
	require.NoError(t, err)
	assert.True(t, resp.Valid)
	assert.Empty(t, resp.Missing)

	// Para 6 kg (factor 3) faltan 10 l de leche y 0.5 kg de sal
	resp, err = f.recipeUC.ValidateIngredientsStock(recipe.ID, dec("6"))
	require.NoError(t, err)
	assert.False(t, resp.Valid)
	require.Len(t, resp.Missing, 2)
	assert.Equal(t, "leche", resp.Missing[0].ProductID)
	assert.True(t, resp.Missing[0].Required.Equal(dec("30")))
	assert.True(t, resp.Missing[0].Missing.Equal(dec("10")))
}

func TestValidateIngredientsStock_SumsAcrossWarehouses(t *testing.T) {
	f := newProdFixture()
	seedQuesoProducts(f)
	recipe := quesoRecipe(t, f)

	f.seedStock("leche", "w1", dec("6"))
	f.seedStock("leche", "w2", dec("4"))
	f.seedStock("sal", "w1", dec("0.5"))

	resp, err := f.recipeUC.ValidateIngredientsStock(recipe.ID, dec("2"))
	require.NoError(t, err)
	assert.True(t, resp.Valid)
}
