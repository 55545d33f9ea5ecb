package reports

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andilac/lacteos-api/internal/domain"
	"github.com/andilac/lacteos-api/internal/domain/entity"
	"github.com/andilac/lacteos-api/internal/domain/repository"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fakeProductRepo struct{ rows []*entity.Product }

func (f *fakeProductRepo) Create(p *entity.Product) error { f.rows = append(f.rows, p); return nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	for _, p := range f.rows {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}
func (f *fakeProductRepo) GetByCode(code string) (*entity.Product, error)      { return nil, nil }
func (f *fakeProductRepo) Update(p *entity.Product) error                      { return nil }
func (f *fakeProductRepo) UpdateCost(id string, c decimal.Decimal) error       { return nil }
func (f *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error)   { return f.rows, nil }
func (f *fakeProductRepo) ListBelowMinStock() ([]*entity.Product, error)       { return nil, nil }

type fakeProviderRepo struct{ rows []*entity.Provider }

func (f *fakeProviderRepo) Create(p *entity.Provider) error                    { return nil }
func (f *fakeProviderRepo) GetByID(id string) (*entity.Provider, error)        { return nil, nil }
func (f *fakeProviderRepo) GetByRUC(ruc string) (*entity.Provider, error)      { return nil, nil }
func (f *fakeProviderRepo) Update(p *entity.Provider) error                    { return nil }
func (f *fakeProviderRepo) List(limit, offset int) ([]*entity.Provider, error) { return f.rows, nil }

type fakeOrderRepo struct{ rows []*entity.PurchaseOrder }

func (f *fakeOrderRepo) Create(o *entity.PurchaseOrder) error            { return nil }
func (f *fakeOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) { return nil, nil }
func (f *fakeOrderRepo) Update(o *entity.PurchaseOrder) error            { return nil }
func (f *fakeOrderRepo) List(status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	return f.rows, nil
}
func (f *fakeOrderRepo) NextSequenceForYear(year int) (int64, error) { return 0, nil }

type fakeProductionRepo struct{ inProgress []*entity.ProductionOrder }

func (f *fakeProductionRepo) Create(o *entity.ProductionOrder) error             { return nil }
func (f *fakeProductionRepo) GetByID(id string) (*entity.ProductionOrder, error) { return nil, nil }
func (f *fakeProductionRepo) Update(o *entity.ProductionOrder) error             { return nil }
func (f *fakeProductionRepo) List(status string, limit, offset int) ([]*entity.ProductionOrder, error) {
	if status == entity.ProductionStatusInProgress {
		return f.inProgress, nil
	}
	return nil, nil
}
func (f *fakeProductionRepo) CreateConsumption(c *entity.IngredientConsumption) error { return nil }
func (f *fakeProductionRepo) ListConsumptions(orderID string) ([]*entity.IngredientConsumption, error) {
	return nil, nil
}

type fakeAlertRepo struct{ active []*entity.Alert }

func (f *fakeAlertRepo) Create(a *entity.Alert) error         { return nil }
func (f *fakeAlertRepo) GetByID(id string) (*entity.Alert, error) { return nil, nil }
func (f *fakeAlertRepo) Update(a *entity.Alert) error         { return nil }
func (f *fakeAlertRepo) List(status string, limit, offset int) ([]*entity.Alert, error) {
	if status == entity.AlertStatusActive {
		return f.active, nil
	}
	return nil, nil
}
func (f *fakeAlertRepo) FindActive(alertType, productID, batchID string) (*entity.Alert, error) {
	return nil, nil
}

type fakeStockRepo struct{ totals map[string]decimal.Decimal }

func (f *fakeStockRepo) Get(productID, warehouseID string) (*entity.Stock, error) { return nil, nil }
func (f *fakeStockRepo) GetForUpdate(productID, warehouseID string) (*entity.Stock, error) {
	return nil, nil
}
func (f *fakeStockRepo) Upsert(s *entity.Stock) error { return nil }
func (f *fakeStockRepo) TotalByProduct(productID string) (decimal.Decimal, error) {
	if t, ok := f.totals[productID]; ok {
		return t, nil
	}
	return decimal.Zero, nil
}
func (f *fakeStockRepo) ListByProduct(productID string) ([]*entity.Stock, error) { return nil, nil }

type fakeMovementRepo struct{ rows []*entity.InventoryMovement }

func (f *fakeMovementRepo) Create(m *entity.InventoryMovement) error { return nil }
func (f *fakeMovementRepo) List(filter repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range f.rows {
		if filter.ProductID != "" && m.ProductID != filter.ProductID {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func TestDashboard_CountsAndInventoryValue(t *testing.T) {
	products := &fakeProductRepo{rows: []*entity.Product{
		{ID: "p1", Status: entity.StatusActive, Cost: dec("0.50")},
		{ID: "p2", Status: entity.StatusActive, Cost: dec("3")},
		{ID: "p3", Status: entity.StatusInactive, Cost: dec("9")},
	}}
	providers := &fakeProviderRepo{rows: []*entity.Provider{
		{ID: "prov1", Status: entity.StatusActive},
		{ID: "prov2", Status: entity.StatusInactive},
	}}
	orders := &fakeOrderRepo{rows: []*entity.PurchaseOrder{
		{ID: "o1", Status: entity.OrderStatusIssued},
		{ID: "o2", Status: entity.OrderStatusPaid},
	}}
	production := &fakeProductionRepo{inProgress: []*entity.ProductionOrder{{ID: "op1"}}}
	alerts := &fakeAlertRepo{active: []*entity.Alert{{ID: "a1"}, {ID: "a2"}}}
	stocks := &fakeStockRepo{totals: map[string]decimal.Decimal{
		"p1": dec("100"), // 50.00
		"p2": dec("10"),  // 30.00
		"p3": dec("5"),   // inactivo: no cuenta
	}}

	uc := NewUseCase(products, providers, orders, production, alerts, stocks, &fakeMovementRepo{})
	resp, err := uc.Dashboard()
	require.NoError(t, err)

	assert.Equal(t, 2, resp.ActiveProducts)
	assert.Equal(t, 1, resp.ActiveProviders)
	assert.Equal(t, 1, resp.OpenPurchaseOrders)
	assert.Equal(t, 1, resp.OrdersInProduction)
	assert.Equal(t, 2, resp.ActiveAlerts)
	assert.True(t, resp.InventoryValue.Equal(dec("80")), "valoración fue %s", resp.InventoryValue)
}

func TestKardex_RunningBalance(t *testing.T) {
	now := time.Now()
	products := &fakeProductRepo{rows: []*entity.Product{{ID: "p1", Status: entity.StatusActive}}}
	movements := &fakeMovementRepo{rows: []*entity.InventoryMovement{
		{ID: "m1", ProductID: "p1", Type: entity.MovementTypeEntry, Quantity: dec("10"), Date: now.Add(-3 * time.Hour)},
		{ID: "m2", ProductID: "p1", Type: entity.MovementTypeExit, Quantity: dec("-4"), Date: now.Add(-2 * time.Hour)},
		{ID: "m3", ProductID: "p1", Type: entity.MovementTypeAdjustment, Quantity: dec("-1"), Date: now.Add(-time.Hour)},
	}}

	uc := NewUseCase(products, &fakeProviderRepo{}, &fakeOrderRepo{}, &fakeProductionRepo{}, &fakeAlertRepo{}, &fakeStockRepo{}, movements)
	resp, err := uc.Kardex("p1", time.Time{}, time.Time{})
	require.NoError(t, err)

	require.Len(t, resp.Entries, 3)
	assert.True(t, resp.Entries[0].Balance.Equal(dec("10")))
	assert.True(t, resp.Entries[1].Balance.Equal(dec("6")))
	assert.True(t, resp.Entries[2].Balance.Equal(dec("5")))
}

func TestKardex_UnknownProduct(t *testing.T) {
	uc := NewUseCase(&fakeProductRepo{}, &fakeProviderRepo{}, &fakeOrderRepo{}, &fakeProductionRepo{}, &fakeAlertRepo{}, &fakeStockRepo{}, &fakeMovementRepo{})
	_, err := uc.Kardex("missing", time.Time{}, time.Time{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
