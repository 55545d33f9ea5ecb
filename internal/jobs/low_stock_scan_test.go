package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/andilac/lacteos-api/internal/application/inventory"
	"github.com/andilac/lacteos-api/internal/application/notification"
	"github.com/andilac/lacteos-api/internal/domain/entity"
	"github.com/andilac/lacteos-api/internal/domain/repository"
)

type fakeProductRepo struct {
	products map[string]entity.Product
	totals   map[string]decimal.Decimal
}

func (f *fakeProductRepo) Create(p *entity.Product) error { f.products[p.ID] = *p; return nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := f.products[id]; ok {
		cp := p
		return &cp, nil
	}
	return nil, nil
}
func (f *fakeProductRepo) GetByCode(code string) (*entity.Product, error)          { return nil, nil }
func (f *fakeProductRepo) Update(p *entity.Product) error                          { return nil }
func (f *fakeProductRepo) UpdateCost(productID string, cost decimal.Decimal) error { return nil }
func (f *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error)       { return nil, nil }
func (f *fakeProductRepo) ListBelowMinStock() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.products {
		if f.totals[p.ID].LessThan(p.MinStock) {
			cp := p
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeStockRepo struct{ totals map[string]decimal.Decimal }

func (f *fakeStockRepo) Get(productID, warehouseID string) (*entity.Stock, error) { return nil, nil }
func (f *fakeStockRepo) Upsert(stock *entity.Stock) error                         { return nil }
func (f *fakeStockRepo) GetForUpdate(productID, warehouseID string) (*entity.Stock, error) {
	return nil, nil
}
func (f *fakeStockRepo) TotalByProduct(productID string) (decimal.Decimal, error) {
	return f.totals[productID], nil
}
func (f *fakeStockRepo) ListByProduct(productID string) ([]*entity.Stock, error) { return nil, nil }

type fakeMovementRepo struct{}

func (f *fakeMovementRepo) Create(m *entity.InventoryMovement) error { return nil }
func (f *fakeMovementRepo) List(filter repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	return nil, nil
}

func TestLowStockScan_GeneraAlertasWarning(t *testing.T) {
	totals := map[string]decimal.Decimal{
		"p1": decimal.NewFromInt(40),  // bajo el mínimo
		"p2": decimal.NewFromInt(500), // suficiente
	}
	products := &fakeProductRepo{
		products: map[string]entity.Product{
			"p1": {ID: "p1", Code: "LCH-001", Name: "Leche cruda", MinStock: decimal.NewFromInt(100)},
			"p2": {ID: "p2", Code: "AZU-001", Name: "Azúcar", MinStock: decimal.NewFromInt(50)},
		},
		totals: totals,
	}
	stock := &fakeStockRepo{totals: totals}
	batches := &fakeBatchRepo{rows: map[string]entity.Batch{}}
	alerts := &fakeAlertRepo{rows: map[string]entity.Alert{}}
	notifUC := notification.NewUseCase(alerts, &fakeReminderRepo{rows: map[string]entity.Reminder{}})
	queryUC := appinv.NewQueryUseCase(stock, products, batches, &fakeMovementRepo{})

	job := NewLowStockScanJob(queryUC, notifUC, zerolog.Nop())
	require.NoError(t, job.Handle(context.Background(), NewLowStockScanTask()))

	require.Len(t, alerts.rows, 1)
	for _, a := range alerts.rows {
		assert.Equal(t, entity.AlertTypeLowStock, a.Type)
		assert.Equal(t, entity.AlertSeverityWarning, a.Severity)
		assert.Equal(t, "p1", a.ProductID)
		assert.Contains(t, a.Message, "Leche cruda")
	}

	// Segunda corrida: la alerta activa se deduplica
	require.NoError(t, job.Handle(context.Background(), NewLowStockScanTask()))
	assert.Len(t, alerts.rows, 1)
}

func TestReminderScan_SoloPendientesVencidos(t *testing.T) {
	reminders := &fakeReminderRepo{rows: map[string]entity.Reminder{
		"r1": {ID: "r1", Title: "Pagar OC-2026-0001", Status: entity.ReminderStatusPending, DueAt: time.Now().AddDate(0, 0, -1)},
		"r2": {ID: "r2", Title: "Pagar OC-2026-0002", Status: entity.ReminderStatusPending, DueAt: time.Now().AddDate(0, 0, 5)},
		"r3": {ID: "r3", Title: "Pagar OC-2026-0003", Status: entity.ReminderStatusCompleted, DueAt: time.Now().AddDate(0, 0, -2)},
	}}

	job := NewReminderScanJob(reminders, zerolog.Nop())
	require.NoError(t, job.Handle(context.Background(), NewReminderDueScanTask()))

	due, err := reminders.ListDueBefore(time.Now())
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "r1", due[0].ID)
}
