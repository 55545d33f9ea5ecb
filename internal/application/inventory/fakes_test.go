package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andilac/lacteos-api/internal/domain/entity"
	"github.com/andilac/lacteos-api/internal/domain/repository"
)

// Fakes en memoria con semántica de copia: los repos guardan valores, no punteros,
// de modo que el rollback del fakeTxRunner pueda restaurar el estado previo.

type stockKey struct{ productID, warehouseID string }

type fakeStockRepo struct{ rows map[stockKey]entity.Stock }

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{rows: map[stockKey]entity.Stock{}}
}

func (f *fakeStockRepo) Get(productID, warehouseID string) (*entity.Stock, error) {
	if s, ok := f.rows[stockKey{productID, warehouseID}]; ok {
		cp := s
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeStockRepo) GetForUpdate(productID, warehouseID string) (*entity.Stock, error) {
	return f.Get(productID, warehouseID)
}

func (f *fakeStockRepo) Upsert(stock *entity.Stock) error {
	f.rows[stockKey{stock.ProductID, stock.WarehouseID}] = *stock
	return nil
}

func (f *fakeStockRepo) TotalByProduct(productID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for k, s := range f.rows {
		if k.productID == productID {
			total = total.Add(s.Quantity)
		}
	}
	return total, nil
}

func (f *fakeStockRepo) ListByProduct(productID string) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for k, s := range f.rows {
		if k.productID == productID {
			cp := s
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeProductRepo struct {
	rows   map[string]entity.Product
	stocks *fakeStockRepo
}

func newFakeProductRepo(stocks *fakeStockRepo) *fakeProductRepo {
	return &fakeProductRepo{rows: map[string]entity.Product{}, stocks: stocks}
}

func (f *fakeProductRepo) Create(p *entity.Product) error {
	f.rows[p.ID] = *p
	return nil
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := f.rows[id]; ok {
		cp := p
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeProductRepo) GetByCode(code string) (*entity.Product, error) {
	for _, p := range f.rows {
		if p.Code == code {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) Update(p *entity.Product) error {
	f.rows[p.ID] = *p
	return nil
}

func (f *fakeProductRepo) UpdateCost(productID string, cost decimal.Decimal) error {
	p := f.rows[productID]
	p.Cost = cost
	f.rows[productID] = p
	return nil
}

func (f *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.rows {
		cp := p
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeProductRepo) ListBelowMinStock() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.rows {
		total, _ := f.stocks.TotalByProduct(p.ID)
		if total.LessThan(p.MinStock) {
			cp := p
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeBatchRepo struct{ rows map[string]entity.Batch }

func newFakeBatchRepo() *fakeBatchRepo {
	return &fakeBatchRepo{rows: map[string]entity.Batch{}}
}

func (f *fakeBatchRepo) Create(b *entity.Batch) error {
	f.rows[b.ID] = *b
	return nil
}

func (f *fakeBatchRepo) GetByID(id string) (*entity.Batch, error) {
	if b, ok := f.rows[id]; ok {
		cp := b
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeBatchRepo) Update(b *entity.Batch) error {
	f.rows[b.ID] = *b
	return nil
}

func (f *fakeBatchRepo) List(productID, warehouseID, status string, limit, offset int) ([]*entity.Batch, error) {
	var out []*entity.Batch
	for _, b := range f.rows {
		if productID != "" && b.ProductID != productID {
			continue
		}
		if warehouseID != "" && b.WarehouseID != warehouseID {
			continue
		}
		if status != "" && b.Status != status {
			continue
		}
		cp := b
		out = append(out, &cp)
	}
	return out, nil
}

// ListActiveFEFO: vencimiento ascendente, sin vencimiento al final.
func (f *fakeBatchRepo) ListActiveFEFO(productID, warehouseID string) ([]*entity.Batch, error) {
	var out []*entity.Batch
	for _, b := range f.rows {
		if b.ProductID == productID && b.WarehouseID == warehouseID && b.Status == entity.BatchStatusActive {
			cp := b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].ExpiryDate, out[j].ExpiryDate
		switch {
		case a == nil && b == nil:
			return out[i].EntryDate.Before(out[j].EntryDate)
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
	return out, nil
}

func (f *fakeBatchRepo) ListExpiringBefore(t time.Time) ([]*entity.Batch, error) {
	var out []*entity.Batch
	for _, b := range f.rows {
		if b.Status == entity.BatchStatusActive && b.ExpiryDate != nil && b.ExpiryDate.Before(t) {
			cp := b
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeMovementRepo struct{ rows []entity.InventoryMovement }

func (f *fakeMovementRepo) Create(m *entity.InventoryMovement) error {
	f.rows = append(f.rows, *m)
	return nil
}

func (f *fakeMovementRepo) List(filter repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for i := range f.rows {
		m := f.rows[i]
		if filter.ProductID != "" && m.ProductID != filter.ProductID {
			continue
		}
		if filter.WarehouseID != "" && m.WarehouseID != filter.WarehouseID {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		if !filter.From.IsZero() && m.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && m.Date.After(filter.To) {
			continue
		}
		cp := m
		out = append(out, &cp)
	}
	return out, nil
}

type fakeOrderRepo struct {
	rows map[string]entity.PurchaseOrder
	seq  map[int]int64
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{rows: map[string]entity.PurchaseOrder{}, seq: map[int]int64{}}
}

func (f *fakeOrderRepo) Create(o *entity.PurchaseOrder) error {
	f.rows[o.ID] = *o
	return nil
}

func (f *fakeOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	if o, ok := f.rows[id]; ok {
		cp := o
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeOrderRepo) Update(o *entity.PurchaseOrder) error {
	f.rows[o.ID] = *o
	return nil
}

func (f *fakeOrderRepo) List(status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, o := range f.rows {
		if status != "" && o.Status != status {
			continue
		}
		cp := o
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeOrderRepo) NextSequenceForYear(year int) (int64, error) {
	f.seq[year]++
	return f.seq[year], nil
}

type fakeProductionRepo struct {
	rows         map[string]entity.ProductionOrder
	consumptions []entity.IngredientConsumption
}

func newFakeProductionRepo() *fakeProductionRepo {
	return &fakeProductionRepo{rows: map[string]entity.ProductionOrder{}}
}

func (f *fakeProductionRepo) Create(o *entity.ProductionOrder) error {
	f.rows[o.ID] = *o
	return nil
}

func (f *fakeProductionRepo) GetByID(id string) (*entity.ProductionOrder, error) {
	if o, ok := f.rows[id]; ok {
		cp := o
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeProductionRepo) Update(o *entity.ProductionOrder) error {
	f.rows[o.ID] = *o
	return nil
}

func (f *fakeProductionRepo) List(status string, limit, offset int) ([]*entity.ProductionOrder, error) {
	var out []*entity.ProductionOrder
	for _, o := range f.rows {
		if status != "" && o.Status != status {
			continue
		}
		cp := o
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeProductionRepo) CreateConsumption(c *entity.IngredientConsumption) error {
	f.consumptions = append(f.consumptions, *c)
	return nil
}

func (f *fakeProductionRepo) ListConsumptions(orderID string) ([]*entity.IngredientConsumption, error) {
	var out []*entity.IngredientConsumption
	for i := range f.consumptions {
		if f.consumptions[i].ProductionOrderID == orderID {
			cp := f.consumptions[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeWarehouseRepo struct{ rows map[string]entity.Warehouse }

func newFakeWarehouseRepo() *fakeWarehouseRepo {
	return &fakeWarehouseRepo{rows: map[string]entity.Warehouse{}}
}

func (f *fakeWarehouseRepo) Create(w *entity.Warehouse) error {
	f.rows[w.ID] = *w
	return nil
}

func (f *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	if w, ok := f.rows[id]; ok {
		cp := w
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeWarehouseRepo) Update(w *entity.Warehouse) error {
	f.rows[w.ID] = *w
	return nil
}

func (f *fakeWarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range f.rows {
		cp := w
		out = append(out, &cp)
	}
	return out, nil
}

// fakeTxRunner ejecuta fn sobre los fakes y, ante error, restaura el estado
// previo de todos los stores para simular Rollback.
type fakeTxRunner struct {
	movements  *fakeMovementRepo
	stocks     *fakeStockRepo
	batches    *fakeBatchRepo
	products   *fakeProductRepo
	orders     *fakeOrderRepo
	production *fakeProductionRepo
}

func (t *fakeTxRunner) Run(ctx context.Context, fn func(r TxRepos) error) error {
	movSnap := append([]entity.InventoryMovement(nil), t.movements.rows...)
	stockSnap := make(map[stockKey]entity.Stock, len(t.stocks.rows))
	for k, v := range t.stocks.rows {
		stockSnap[k] = v
	}
	batchSnap := make(map[string]entity.Batch, len(t.batches.rows))
	for k, v := range t.batches.rows {
		batchSnap[k] = v
	}
	productSnap := make(map[string]entity.Product, len(t.products.rows))
	for k, v := range t.products.rows {
		productSnap[k] = v
	}
	orderSnap := make(map[string]entity.PurchaseOrder, len(t.orders.rows))
	for k, v := range t.orders.rows {
		orderSnap[k] = v
	}
	prodOrderSnap := make(map[string]entity.ProductionOrder, len(t.production.rows))
	for k, v := range t.production.rows {
		prodOrderSnap[k] = v
	}
	consSnap := append([]entity.IngredientConsumption(nil), t.production.consumptions...)

	err := fn(TxRepos{
		Movements:  t.movements,
		Stock:      t.stocks,
		Batches:    t.batches,
		Products:   t.products,
		Orders:     t.orders,
		Production: t.production,
	})
	if err != nil {
		t.movements.rows = movSnap
		t.stocks.rows = stockSnap
		t.batches.rows = batchSnap
		t.products.rows = productSnap
		t.orders.rows = orderSnap
		t.production.rows = prodOrderSnap
		t.production.consumptions = consSnap
	}
	return err
}

// invFixture entorno completo para probar los casos de uso de inventario.
type invFixture struct {
	stocks     *fakeStockRepo
	products   *fakeProductRepo
	batches    *fakeBatchRepo
	movements  *fakeMovementRepo
	orders     *fakeOrderRepo
	production *fakeProductionRepo
	warehouses *fakeWarehouseRepo
	tx         *fakeTxRunner

	movementUC *RegisterMovementUseCase
	bulkUC     *BulkEntryUseCase
	queryUC    *QueryUseCase
}

func newInvFixture() *invFixture {
	stocks := newFakeStockRepo()
	products := newFakeProductRepo(stocks)
	batches := newFakeBatchRepo()
	movements := &fakeMovementRepo{}
	orders := newFakeOrderRepo()
	production := newFakeProductionRepo()
	warehouses := newFakeWarehouseRepo()
	tx := &fakeTxRunner{
		movements:  movements,
		stocks:     stocks,
		batches:    batches,
		products:   products,
		orders:     orders,
		production: production,
	}
	movementUC := NewRegisterMovementUseCase(tx, products, warehouses)
	return &invFixture{
		stocks:     stocks,
		products:   products,
		batches:    batches,
		movements:  movements,
		orders:     orders,
		production: production,
		warehouses: warehouses,
		tx:         tx,
		movementUC: movementUC,
		bulkUC:     NewBulkEntryUseCase(tx, movementUC, orders, products),
		queryUC:    NewQueryUseCase(stocks, products, batches, movements),
	}
}

func (f *invFixture) seedWarehouse(id string) {
	f.warehouses.Create(&entity.Warehouse{ID: id, Name: "Bodega " + id, Type: entity.WarehouseTypeRawMaterial, Status: entity.StatusActive})
}

func (f *invFixture) seedProduct(id, storageType string, cost decimal.Decimal, expiryControl bool) {
	f.products.Create(&entity.Product{
		ID:                    id,
		Code:                  "PRD-" + id,
		Name:                  "Producto " + id,
		Unit:                  "kg",
		StorageType:           storageType,
		MinStock:              decimal.Zero,
		RequiresExpiryControl: expiryControl,
		Cost:                  cost,
		Status:                entity.StatusActive,
	})
}

func (f *invFixture) seedStock(productID, warehouseID string, qty decimal.Decimal) {
	f.stocks.Upsert(&entity.Stock{ProductID: productID, WarehouseID: warehouseID, Quantity: qty, UpdatedAt: time.Now()})
}

func (f *invFixture) seedBatch(id, productID, warehouseID string, qty decimal.Decimal, expiry *time.Time) {
	f.batches.Create(&entity.Batch{
		ID:              id,
		Code:            "LOT-2026-" + id,
		ProductID:       productID,
		WarehouseID:     warehouseID,
		InitialQuantity: qty,
		CurrentQuantity: qty,
		EntryDate:       time.Now().Add(-24 * time.Hour),
		ExpiryDate:      expiry,
		Status:          entity.BatchStatusActive,
	})
}
