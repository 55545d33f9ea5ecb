package inventory

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andilac/lacteos-api/internal/domain"
	"github.com/andilac/lacteos-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRegisterMovement_EntryUpdatesStockAndAverageCost(t *testing.T) {
	f := newInvFixture()
	f.seedWarehouse("w1")
	f.seedProduct("p1", entity.StorageTypeBulk, dec("10"), false)
	f.seedStock("p1", "w1", dec("10"))

	cost := dec("20")
	result, err := f.movementUC.RegisterMovement(context.Background(), MovementInput{
		ResponsibleID: "emp1",
		ProductID:     "p1",
		WarehouseID:   "w1",
		Type:          entity.MovementTypeEntry,
		Quantity:      dec("10"),
		UnitCost:      &cost,
	})
	require.NoError(t, err)
	require.Len(t, result.Movements, 1)
	assert.Empty(t, result.Batches)

	// Promedio ponderado: (10*10 + 10*20) / 20 = 15
	p, _ := f.products.GetByID("p1")
	assert.True(t, p.Cost.Equal(dec("15")), "costo esperado 15, fue %s", p.Cost)

	stock, _ := f.stocks.Get("p1", "w1")
	assert.True(t, stock.Quantity.Equal(dec("20")))

	mov := result.Movements[0]
	assert.Equal(t, entity.MovementTypeEntry, mov.Type)
	assert.True(t, mov.TotalCost.Equal(dec("200")))
	assert.Equal(t, "emp1", mov.ResponsibleID)
}

func TestRegisterMovement_EntryBatchProductCreatesBatch(t *testing.T) {
	f := newInvFixture()
	f.seedWarehouse("w1")
	f.seedProduct("p1", entity.StorageTypeBatch, decimal.Zero, true)

	cost := dec("4.50")
	expiry := time.Now().AddDate(0, 0, 30)
	result, err := f.movementUC.RegisterMovement(context.Background(), MovementInput{
		ResponsibleID: "emp1",
		ProductID:     "p1",
		WarehouseID:   "w1",
		Type:          entity.MovementTypeEntry,
		Quantity:      dec("100"),
		UnitCost:      &cost,
		ExpiryDate:    &expiry,
	})
	require.NoError(t, err)
	require.Len(t, result.Batches, 1)

	batch := result.Batches[0]
	assert.True(t, strings.HasPrefix(batch.Code, "LOT-"))
	assert.True(t, batch.CurrentQuantity.Equal(dec("100")))
	assert.Equal(t, entity.BatchStatusActive, batch.Status)
	assert.Contains(t, batch.QRCode, batch.Code)

	require.Len(t, result.Movements, 1)
	assert.Equal(t, batch.ID, result.Movements[0].BatchID)
}

func TestRegisterMovement_EntryRequiresExpiryWhenControlled(t *testing.T) {
	f := newInvFixture()
	f.seedWarehouse("w1")
	f.seedProduct("p1", entity.StorageTypeBatch, decimal.Zero, true)

	cost := dec("4.50")
	_, err := f.movementUC.RegisterMovement(context.Background(), MovementInput{
		ResponsibleID: "emp1",
		ProductID:     "p1",
		WarehouseID:   "w1",
		Type:          entity.MovementTypeEntry,
		Quantity:      dec("100"),
		UnitCost:      &cost,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterMovement_ExitInsufficientStockRollsBack(t *testing.T) {
	f := newInvFixture()
	f.seedWarehouse("w1")
	f.seedProduct("p1", entity.StorageTypeBulk, dec("10"), false)
	f.seedStock("p1", "w1", dec("5"))

	_, err := f.movementUC.RegisterMovement(context.Background(), MovementInput{
		ResponsibleID: "emp1",
		ProductID:     "p1",
		WarehouseID:   "w1",
		Type:          entity.MovementTypeExit,
		Quantity:      dec("8"),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	stock, _ := f.stocks.Get("p1", "w1")
	assert.True(t, stock.Quantity.Equal(dec("5")), "el stock no debe cambiar tras rollback")
	assert.Empty(t, f.movements.rows)
}

func TestRegisterMovement_ExitConsumesFEFO(t *testing.T) {
	f := newInvFixture()
	f.seedWarehouse("w1")
	f.seedProduct("p1", entity.StorageTypeBatch, dec("3"), true)
	near := time.Now().AddDate(0, 0, 2)
	far := time.Now().AddDate(0, 0, 10)
	f.seedBatch("b1", "p1", "w1", dec("4"), &near)
	f.seedBatch("b2", "p1", "w1", dec("10"), &far)
	f.seedStock("p1", "w1", dec("14"))

	result, err := f.movementUC.RegisterMovement(context.Background(), MovementInput{
		ResponsibleID: "emp1",
		ProductID:     "p1",
		WarehouseID:   "w1",
		Type:          entity.MovementTypeExit,
		Quantity:      dec("6"),
	})
	require.NoError(t, err)

	// Primero el lote que vence antes: 4 del b1, 2 del b2
	require.Len(t, result.Movements, 2)
	assert.Equal(t, "b1", result.Movements[0].BatchID)
	assert.True(t, result.Movements[0].Quantity.Equal(dec("-4")))
	assert.Equal(t, "b2", result.Movements[1].BatchID)
	assert.True(t, result.Movements[1].Quantity.Equal(dec("-2")))

	b1, _ := f.batches.GetByID("b1")
	assert.Equal(t, entity.BatchStatusDepleted, b1.Status)
	assert.True(t, b1.CurrentQuantity.IsZero())

	b2, _ := f.batches.GetByID("b2")
	assert.True(t, b2.CurrentQuantity.Equal(dec("8")))

	stock, _ := f.stocks.Get("p1", "w1")
	assert.True(t, stock.Quantity.Equal(dec("8")))
}

func TestRegisterMovement_ExitSkipsExpiredBatches(t *testing.T) {
	f := newInvFixture()
	f.seedWarehouse("w1")
	f.seedProduct("p1", entity.StorageTypeBatch, dec("3"), true)
	expired := time.Now().AddDate(0, 0, -1)
	valid := time.Now().AddDate(0, 0, 15)
	f.seedBatch("b1", "p1", "w1", dec("5"), &expired)
	f.seedBatch("b2", "p1", "w1", dec("5"), &valid)
	f.seedStock("p1", "w1", dec("10"))

	// Solo hay 5 unidades consumibles (el lote vencido se salta)
	_, err := f.movementUC.RegisterMovement(context.Background(), MovementInput{
		ResponsibleID: "emp1",
		ProductID:     "p1",
		WarehouseID:   "w1",
		Type:          entity.MovementTypeExit,
		Quantity:      dec("6"),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Rollback: nada cambió
	b2, _ := f.batches.GetByID("b2")
	assert.True(t, b2.CurrentQuantity.Equal(dec("5")))
	stock, _ := f.stocks.Get("p1", "w1")
	assert.True(t, stock.Quantity.Equal(dec("10")))
}

func TestRegisterMovement_TransferMirrorsBatch(t *testing.T) {
	f := newInvFixture()
	f.seedWarehouse("w1")
	f.seedWarehouse("w2")
	f.seedProduct("p1", entity.StorageTypeBatch, dec("3"), true)
	expiry := time.Now().AddDate(0, 0, 20)
	f.seedBatch("b1", "p1", "w1", dec("10"), &expiry)
	f.seedStock("p1", "w1", dec("10"))

	result, err := f.movementUC.RegisterMovement(context.Background(), MovementInput{
		ResponsibleID:   "emp1",
		ProductID:       "p1",
		FromWarehouseID: "w1",
		ToWarehouseID:   "w2",
		Type:            entity.MovementTypeTransfer,
		Quantity:        dec("3"),
	})
	require.NoError(t, err)
	require.Len(t, result.Movements, 2)
	require.Len(t, result.Batches, 1)

	origin, _ := f.stocks.Get("p1", "w1")
	dest, _ := f.stocks.Get("p1", "w2")
	assert.True(t, origin.Quantity.Equal(dec("7")))
	assert.True(t, dest.Quantity.Equal(dec("3")))

	mirror := result.Batches[0]
	assert.Equal(t, "w2", mirror.WarehouseID)
	assert.True(t, mirror.CurrentQuantity.Equal(dec("3")))
	require.NotNil(t, mirror.ExpiryDate)
	assert.True(t, mirror.ExpiryDate.Equal(expiry), "el lote espejo conserva el vencimiento")
}

func TestRegisterMovement_TransferSameWarehouseRejected(t *testing.T) {
	f := newInvFixture()
	f.seedWarehouse("w1")
	f.seedProduct("p1", entity.StorageTypeBulk, dec("3"), false)

	_, err := f.movementUC.RegisterMovement(context.Background(), MovementInput{
		ResponsibleID:   "emp1",
		ProductID:       "p1",
		FromWarehouseID: "w1",
		ToWarehouseID:   "w1",
		Type:            entity.MovementTypeTransfer,
		Quantity:        dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterMovement_NegativeAdjustmentReducesStock(t *testing.T) {
	f := newInvFixture()
	f.seedWarehouse("w1")
	f.seedProduct("p1", entity.StorageTypeBulk, dec("2"), false)
	f.seedStock("p1", "w1", dec("10"))

	result, err := f.movementUC.RegisterMovement(context.Background(), MovementInput{
		ResponsibleID: "emp1",
		ProductID:     "p1",
		WarehouseID:   "w1",
		Type:          entity.MovementTypeAdjustment,
		Quantity:      dec("-2"),
		Reason:        "merma por derrame",
	})
	require.NoError(t, err)
	require.Len(t, result.Movements, 1)
	assert.Equal(t, entity.MovementTypeAdjustment, result.Movements[0].Type)
	assert.True(t, result.Movements[0].Quantity.Equal(dec("-2")))

	stock, _ := f.stocks.Get("p1", "w1")
	assert.True(t, stock.Quantity.Equal(dec("8")))

	// El kardex conserva el tipo adjustment
	assert.Equal(t, entity.MovementTypeAdjustment, f.movements.rows[0].Type)
}

func TestRegisterMovement_UnknownProduct(t *testing.T) {
	f := newInvFixture()
	f.seedWarehouse("w1")

	cost := dec("1")
	_, err := f.movementUC.RegisterMovement(context.Background(), MovementInput{
		ResponsibleID: "emp1",
		ProductID:     "missing",
		WarehouseID:   "w1",
		Type:          entity.MovementTypeEntry,
		Quantity:      dec("1"),
		UnitCost:      &cost,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
