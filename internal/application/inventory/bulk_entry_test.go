package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andilac/lacteos-api/internal/application/dto"
	"github.com/andilac/lacteos-api/internal/domain"
	"github.com/andilac/lacteos-api/internal/domain/entity"
)

func seedIssuedOrder(f *invFixture, id string) {
	f.orders.Create(&entity.PurchaseOrder{
		ID:         id,
		Number:     "OC-2026-0001",
		ProviderID: "prov1",
		Items: []entity.PurchaseOrderItem{
			{ID: "i1", OrderID: id, ProductID: "p1", Quantity: dec("50"), UnitCost: dec("2.50"), Subtotal: dec("125")},
			{ID: "i2", OrderID: id, ProductID: "p2", Quantity: dec("20"), UnitCost: dec("8"), Subtotal: dec("160")},
		},
		Subtotal: dec("285"),
		IVA:      dec("42.75"),
		Total:    dec("327.75"),
		Status:   entity.OrderStatusIssued,
	})
}

func TestBulkEntry_TwoLinesCreatesTwoMovements(t *testing.T) {
	f := newInvFixture()
	f.seedWarehouse("w1")
	f.seedProduct("p1", entity.StorageTypeBulk, decimal.Zero, false)
	f.seedProduct("p2", entity.StorageTypeBatch, decimal.Zero, true)
	seedIssuedOrder(f, "oc1")

	expiry := time.Now().AddDate(0, 0, 45)
	resp, err := f.bulkUC.BulkEntryFromPurchaseOrder(context.Background(), "emp1", "oc1", dto.BulkEntryRequest{
		Entries: []dto.BulkEntryItem{
			{ProductID: "p1", WarehouseID: "w1", Quantity: dec("50")},
			{ProductID: "p2", WarehouseID: "w1", Quantity: dec("20"), ExpiryDate: &expiry},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.Len(t, resp.Movements, 2)
	require.Len(t, resp.Batches, 1)
	assert.Contains(t, resp.Message, "2 movimientos")
	assert.Contains(t, resp.Message, "1 lotes")

	// Costos por defecto tomados de la orden
	assert.True(t, resp.Movements[0].UnitCost.Equal(dec("2.50")))
	assert.True(t, resp.Movements[1].UnitCost.Equal(dec("8")))
	assert.Equal(t, "oc1", resp.Movements[0].PurchaseOrderID)

	order, _ := f.orders.GetByID("oc1")
	assert.Equal(t, entity.OrderStatusReceived, order.Status)

	s1, _ := f.stocks.Get("p1", "w1")
	s2, _ := f.stocks.Get("p2", "w1")
	assert.True(t, s1.Quantity.Equal(dec("50")))
	assert.True(t, s2.Quantity.Equal(dec("20")))
}

func TestBulkEntry_RollbackOnPartialFailure(t *testing.T) {
	f := newInvFixture()
	f.seedWarehouse("w1")
	f.seedProduct("p1", entity.StorageTypeBulk, decimal.Zero, false)
	f.seedProduct("p2", entity.StorageTypeBatch, decimal.Zero, true)
	seedIssuedOrder(f, "oc1")

	bad := dec("-5")
	expiry := time.Now().AddDate(0, 0, 45)
	_, err := f.bulkUC.BulkEntryFromPurchaseOrder(context.Background(), "emp1", "oc1", dto.BulkEntryRequest{
		Entries: []dto.BulkEntryItem{
			{ProductID: "p1", WarehouseID: "w1", Quantity: dec("50")},
			{ProductID: "p2", WarehouseID: "w1", Quantity: dec("20"), UnitCost: &bad, ExpiryDate: &expiry},
		},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	// Rollback total: ni la primera línea quedó aplicada ni la orden cambió de estado
	s1, _ := f.stocks.Get("p1", "w1")
	assert.Nil(t, s1)
	assert.Empty(t, f.movements.rows)
	order, _ := f.orders.GetByID("oc1")
	assert.Equal(t, entity.OrderStatusIssued, order.Status)
}

func TestBulkEntry_OrderMustBeIssued(t *testing.T) {
	f := newInvFixture()
	f.seedWarehouse("w1")
	f.seedProduct("p1", entity.StorageTypeBulk, decimal.Zero, false)
	f.orders.Create(&entity.PurchaseOrder{ID: "oc1", Number: "OC-2026-0001", Status: entity.OrderStatusPreOrder})

	_, err := f.bulkUC.BulkEntryFromPurchaseOrder(context.Background(), "emp1", "oc1", dto.BulkEntryRequest{
		Entries: []dto.BulkEntryItem{{ProductID: "p1", WarehouseID: "w1", Quantity: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestBulkEntry_ExpiryRequiredForControlledProduct(t *testing.T) {
	f := newInvFixture()
	f.seedWarehouse("w1")
	f.seedProduct("p2", entity.StorageTypeBatch, decimal.Zero, true)
	seedIssuedOrder(f, "oc1")

	_, err := f.bulkUC.BulkEntryFromPurchaseOrder(context.Background(), "emp1", "oc1", dto.BulkEntryRequest{
		Entries: []dto.BulkEntryItem{{ProductID: "p2", WarehouseID: "w1", Quantity: dec("20")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBulkEntry_UnknownOrder(t *testing.T) {
	f := newInvFixture()
	_, err := f.bulkUC.BulkEntryFromPurchaseOrder(context.Background(), "emp1", "missing", dto.BulkEntryRequest{
		Entries: []dto.BulkEntryItem{{ProductID: "p1", WarehouseID: "w1", Quantity: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
