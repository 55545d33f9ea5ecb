package production

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	appinv "github.com/andilac/lacteos-api/internal/application/inventory"
	"github.com/andilac/lacteos-api/internal/domain/entity"
	"github.com/andilac/lacteos-api/internal/domain/repository"
)

// Fakes en memoria con semántica de copia (los repos guardan valores) para que
// el rollback del fakeTxRunner restaure el estado previo.

type stockKey struct{ productID, warehouseID string }

type fakeStockRepo struct{ rows map[stockKey]entity.Stock }

func newFakeStockRepo() *fakeStockRepo { return &fakeStockRepo{rows: map[stockKey]entity.Stock{}} }

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
func (f *fakeStockRepo) Upsert(s *entity.Stock) error {
	f.rows[stockKey{s.ProductID, s.WarehouseID}] = *s
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

type fakeProductRepo struct{ rows map[string]entity.Product }

func newFakeProductRepo() *fakeProductRepo { return &fakeProductRepo{rows: map[string]entity.Product{}} }

func (f *fakeProductRepo) Create(p *entity.Product) error { f.rows[p.ID] = *p; return nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := f.rows[id]; ok {
		cp := p
		return &cp, nil
	}
	return nil, nil
}
func (f *fakeProductRepo) GetByCode(code string) (*entity.Product, error) { return nil, nil }
func (f *fakeProductRepo) Update(p *entity.Product) error                 { f.rows[p.ID] = *p; return nil }
func (f *fakeProductRepo) UpdateCost(id string, c decimal.Decimal) error {
	p := f.rows[id]
	p.Cost = c
	f.rows[id] = p
	return nil
}
func (f *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error)  { return nil, nil }
func (f *fakeProductRepo) ListBelowMinStock() ([]*entity.Product, error)      { return nil, nil }

type fakeBatchRepo struct{ rows map[string]entity.Batch }

func newFakeBatchRepo() *fakeBatchRepo { return &fakeBatchRepo{rows: map[string]entity.Batch{}} }

func (f *fakeBatchRepo) Create(b *entity.Batch) error { f.rows[b.ID] = *b; return nil }
func (f *fakeBatchRepo) GetByID(id string) (*entity.Batch, error) {
	if b, ok := f.rows[id]; ok {
		cp := b
		return &cp, nil
	}
	return nil, nil
}
func (f *fakeBatchRepo) Update(b *entity.Batch) error { f.rows[b.ID] = *b; return nil }
func (f *fakeBatchRepo) List(productID, warehouseID, status string, limit, offset int) ([]*entity.Batch, error) {
	return nil, nil
}
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
func (f *fakeBatchRepo) ListExpiringBefore(t time.Time) ([]*entity.Batch, error) { return nil, nil }

type fakeMovementRepo struct{ rows []entity.InventoryMovement }

func (f *fakeMovementRepo) Create(m *entity.InventoryMovement) error {
	f.rows = append(f.rows, *m)
	return nil
}
func (f *fakeMovementRepo) List(filter repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	return nil, nil
}

type fakeRecipeRepo struct{ rows map[string]entity.ProductRecipe }

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{rows: map[string]entity.ProductRecipe{}}
}

func (f *fakeRecipeRepo) Create(r *entity.ProductRecipe) error {
	cp := *r
	cp.Ingredients = append([]entity.RecipeIngredient(nil), r.Ingredients...)
	f.rows[r.ID] = cp
	return nil
}
func (f *fakeRecipeRepo) GetByID(id string) (*entity.ProductRecipe, error) {
	if r, ok := f.rows[id]; ok {
		cp := r
		cp.Ingredients = append([]entity.RecipeIngredient(nil), r.Ingredients...)
		return &cp, nil
	}
	return nil, nil
}
func (f *fakeRecipeRepo) Update(r *entity.ProductRecipe) error { return f.Create(r) }
func (f *fakeRecipeRepo) List(productID string, limit, offset int) ([]*entity.ProductRecipe, error) {
	var out []*entity.ProductRecipe
	for id := range f.rows {
		r, _ := f.GetByID(id)
		if productID != "" && r.ProductID != productID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}
func (f *fakeRecipeRepo) MaxVersionForProduct(productID string) (int, error) {
	max := 0
	for _, r := range f.rows {
		if r.ProductID == productID && r.Version > max {
			max = r.Version
		}
	}
	return max, nil
}

type fakeProductionRepo struct {
	rows         map[string]entity.ProductionOrder
	consumptions []entity.IngredientConsumption
}

func newFakeProductionRepo() *fakeProductionRepo {
	return &fakeProductionRepo{rows: map[string]entity.ProductionOrder{}}
}

func (f *fakeProductionRepo) Create(o *entity.ProductionOrder) error { f.rows[o.ID] = *o; return nil }
func (f *fakeProductionRepo) GetByID(id string) (*entity.ProductionOrder, error) {
	if o, ok := f.rows[id]; ok {
		cp := o
		return &cp, nil
	}
	return nil, nil
}
func (f *fakeProductionRepo) Update(o *entity.ProductionOrder) error { f.rows[o.ID] = *o; return nil }
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

func (f *fakeWarehouseRepo) Create(w *entity.Warehouse) error { f.rows[w.ID] = *w; return nil }
func (f *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	if w, ok := f.rows[id]; ok {
		cp := w
		return &cp, nil
	}
	return nil, nil
}
func (f *fakeWarehouseRepo) Update(w *entity.Warehouse) error { f.rows[w.ID] = *w; return nil }
func (f *fakeWarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) { return nil, nil }

type fakeTxRunner struct {
	movements  *fakeMovementRepo
	stocks     *fakeStockRepo
	batches    *fakeBatchRepo
	products   *fakeProductRepo
	production *fakeProductionRepo
}

func (t *fakeTxRunner) Run(ctx context.Context, fn func(r appinv.TxRepos) error) error {
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
	orderSnap := make(map[string]entity.ProductionOrder, len(t.production.rows))
	for k, v := range t.production.rows {
		orderSnap[k] = v
	}
	consSnap := append([]entity.IngredientConsumption(nil), t.production.consumptions...)

	err := fn(appinv.TxRepos{
		Movements:  t.movements,
		Stock:      t.stocks,
		Batches:    t.batches,
		Products:   t.products,
		Production: t.production,
	})
	if err != nil {
		t.movements.rows = movSnap
		t.stocks.rows = stockSnap
		t.batches.rows = batchSnap
		t.products.rows = productSnap
		t.production.rows = orderSnap
		t.production.consumptions = consSnap
	}
	return err
}

type prodFixture struct {
	stocks     *fakeStockRepo
	products   *fakeProductRepo
	batches    *fakeBatchRepo
	movements  *fakeMovementRepo
	recipes    *fakeRecipeRepo
	production *fakeProductionRepo
	warehouses *fakeWarehouseRepo

	recipeUC *RecipeUseCase
	orderUC  *ProductionUseCase
}

func newProdFixture() *prodFixture {
	f := &prodFixture{
		stocks:     newFakeStockRepo(),
		products:   newFakeProductRepo(),
		batches:    newFakeBatchRepo(),
		movements:  &fakeMovementRepo{},
		recipes:    newFakeRecipeRepo(),
		production: newFakeProductionRepo(),
		warehouses: newFakeWarehouseRepo(),
	}
	tx := &fakeTxRunner{
		movements:  f.movements,
		stocks:     f.stocks,
		batches:    f.batches,
		products:   f.products,
		production: f.production,
	}
	movementUC := appinv.NewRegisterMovementUseCase(tx, f.products, f.warehouses)
	f.recipeUC = NewRecipeUseCase(f.recipes, f.products, f.stocks)
	f.orderUC = NewProductionUseCase(tx, movementUC, f.production, f.recipes, f.products, f.warehouses, f.stocks)
	return f
}

func (f *prodFixture) seedProduct(id, storageType string, cost decimal.Decimal, expiryControl bool) {
	f.products.Create(&entity.Product{
		ID:                    id,
		Code:                  "PRD-" + id,
		Name:                  "Producto " + id,
		Unit:                  "kg",
		StorageType:           storageType,
		RequiresExpiryControl: expiryControl,
		Cost:                  cost,
		Status:                entity.StatusActive,
	})
}

func (f *prodFixture) seedStock(productID, warehouseID string, qty decimal.Decimal) {
	f.stocks.Upsert(&entity.Stock{ProductID: productID, WarehouseID: warehouseID, Quantity: qty, UpdatedAt: time.Now()})
}
