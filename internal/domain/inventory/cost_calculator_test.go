package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/andilac/lacteos-api/internal/domain/inventory"
)

func TestCostCalculator_PromedioPonderado(t *testing.T) {
	// 100 unidades a 10 + 50 unidades a 16 => (1000 + 800) / 150 = 12
	got := inventory.CostCalculator(
		decimal.NewFromInt(100), decimal.NewFromInt(10),
		decimal.NewFromInt(50), decimal.NewFromInt(16),
	)
	assert.True(t, got.Equal(decimal.NewFromInt(12)), "esperaba 12, obtuve %s", got)
}

func TestCostCalculator_StockCero(t *testing.T) {
	// Primera entrada: el costo pasa a ser el costo de la entrada
	got := inventory.CostCalculator(
		decimal.Zero, decimal.Zero,
		decimal.NewFromInt(20), decimal.NewFromFloat(7.5),
	)
	assert.True(t, got.Equal(decimal.NewFromFloat(7.5)))
}

func TestCostCalculator_SumaNoPositiva(t *testing.T) {
	got := inventory.CostCalculator(decimal.Zero, decimal.Zero, decimal.Zero, decimal.NewFromInt(5))
	assert.True(t, got.Equal(decimal.Zero))
}
