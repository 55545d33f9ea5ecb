package validation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andilac/lacteos-api/internal/application/dto"
	"github.com/andilac/lacteos-api/internal/application/validation"
)

func validProvider() dto.CreateProviderRequest {
	return dto.CreateProviderRequest{
		BusinessName: "Hacienda El Ordeño S.A.",
		RUC:          "1790012345001",
		Email:        "ventas@elordeno.ec",
		Type:         "contract",
	}
}

func TestProviderSchema_RUCCorto(t *testing.T) {
	val := validation.New()

	in := validProvider()
	in.RUC = "179001234" // 9 dígitos, el mínimo es 10
	err := val.Struct(in)
	require.Error(t, err)
	fe, ok := err.(validation.FieldError)
	require.True(t, ok)
	assert.Equal(t, "RUC", fe.Field)

	in.RUC = "1790012345" // 10 dígitos: válido
	assert.NoError(t, val.Struct(in))
}

func TestProviderSchema_EmailInvalido(t *testing.T) {
	val := validation.New()

	in := validProvider()
	in.Email = "no-es-un-email"
	err := val.Struct(in)
	require.Error(t, err)
	assert.Equal(t, "Email", err.(validation.FieldError).Field)
}

func TestProviderSchema_TipoObligatorio(t *testing.T) {
	val := validation.New()

	in := validProvider()
	in.Type = ""
	require.Error(t, val.Struct(in))

	in.Type = "spot" // fuera del enum contract|recurrent
	err := val.Struct(in)
	require.Error(t, err)
	assert.Equal(t, "Type", err.(validation.FieldError).Field)
}

func TestRecipeSchema_SinIngredientes(t *testing.T) {
	val := validation.New()

	in := dto.CreateRecipeRequest{
		ProductID:     "b7a4c9a0-61ee-4f3a-9a35-0a3f6f2d8f11",
		Name:          "Queso fresco 500g",
		Ingredients:   nil,
		YieldQuantity: decimal.NewFromInt(20),
		YieldUnit:     "unidad",
	}
	err := val.Struct(in)
	require.Error(t, err)
	assert.Equal(t, "Ingredients", err.(validation.FieldError).Field)
}

func TestRecipeSchema_ConIngrediente(t *testing.T) {
	val := validation.New()

	in := dto.CreateRecipeRequest{
		ProductID: "b7a4c9a0-61ee-4f3a-9a35-0a3f6f2d8f11",
		Name:      "Queso fresco 500g",
		Ingredients: []dto.RecipeIngredientRequest{
			{ProductID: "0e9b7f7e-3f5a-4f77-8a11-91d2b2f7cb42", Quantity: decimal.NewFromInt(10), Unit: "l"},
		},
		YieldQuantity: decimal.NewFromInt(20),
		YieldUnit:     "unidad",
	}
	assert.NoError(t, val.Struct(in))
}

func TestEmployeeSchema_Departamento(t *testing.T) {
	val := validation.New()

	in := dto.CreateEmployeeRequest{
		Name:       "María Quishpe",
		Email:      "maria@lacteosandina.ec",
		Password:   "secreto123",
		Department: "logistics", // fuera del enum
	}
	err := val.Struct(in)
	require.Error(t, err)
	assert.Equal(t, "Department", err.(validation.FieldError).Field)

	in.Department = "warehouse"
	assert.NoError(t, val.Struct(in))
}
