package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andilac/lacteos-api/internal/application/dto"
	"github.com/andilac/lacteos-api/internal/domain"
	"github.com/andilac/lacteos-api/internal/domain/entity"
	"github.com/andilac/lacteos-api/internal/domain/repository"
)

// Techo de filas para los agregados del tablero.
const reportScanLimit = 10000

// UseCase reportes de solo lectura: tablero principal y kardex por producto.
type UseCase struct {
	productRepo    repository.ProductRepository
	providerRepo   repository.ProviderRepository
	orderRepo      repository.PurchaseOrderRepository
	productionRepo repository.ProductionOrderRepository
	alertRepo      repository.AlertRepository
	stockRepo      repository.StockRepository
	movementRepo   repository.InventoryMovementRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	productRepo repository.ProductRepository,
	providerRepo repository.ProviderRepository,
	orderRepo repository.PurchaseOrderRepository,
	productionRepo repository.ProductionOrderRepository,
	alertRepo repository.AlertRepository,
	stockRepo repository.StockRepository,
	movementRepo repository.InventoryMovementRepository,
) *UseCase {
	return &UseCase{
		productRepo:    productRepo,
		providerRepo:   providerRepo,
		orderRepo:      orderRepo,
		productionRepo: productionRepo,
		alertRepo:      alertRepo,
		stockRepo:      stockRepo,
		movementRepo:   movementRepo,
	}
}

// Dashboard resumen del tablero: conteos de entidades activas y valoración del
// inventario (Σ stock total x costo promedio por producto).
func (uc *UseCase) Dashboard() (*dto.DashboardResponse, error) {
	resp := &dto.DashboardResponse{InventoryValue: decimal.Zero}

	products, err := uc.productRepo.List(reportScanLimit, 0)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.Status != entity.StatusActive {
			continue
		}
		resp.ActiveProducts++
		total, err := uc.stockRepo.TotalByProduct(p.ID)
		if err != nil {
			return nil, err
		}
		resp.InventoryValue = resp.InventoryValue.Add(total.Mul(p.Cost))
	}

	providers, err := uc.providerRepo.List(reportScanLimit, 0)
	if err != nil {
		return nil, err
	}
	for _, p := range providers {
		if p.Status == entity.StatusActive {
			resp.ActiveProviders++
		}
	}

	orders, err := uc.orderRepo.List("", reportScanLimit, 0)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		if o.Status != entity.OrderStatusPaid {
			resp.OpenPurchaseOrders++
		}
	}

	inProduction, err := uc.productionRepo.List(entity.ProductionStatusInProgress, reportScanLimit, 0)
	if err != nil {
		return nil, err
	}
	resp.OrdersInProduction = len(inProduction)

	alerts, err := uc.alertRepo.List(entity.AlertStatusActive, reportScanLimit, 0)
	if err != nil {
		return nil, err
	}
	resp.ActiveAlerts = len(alerts)

	return resp, nil
}

// Kardex movimientos de un producto con saldo acumulado, en orden cronológico.
func (uc *UseCase) Kardex(productID string, from, to time.Time) (*dto.KardexResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	movements, err := uc.movementRepo.List(repository.MovementFilter{
		ProductID: productID,
		From:      from,
		To:        to,
		Limit:     reportScanLimit,
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.KardexResponse{ProductID: productID}
	balance := decimal.Zero
	for _, m := range movements {
		balance = balance.Add(m.Quantity)
		resp.Entries = append(resp.Entries, dto.KardexEntry{
			MovementID: m.ID,
			Type:       m.Type,
			Quantity:   m.Quantity,
			UnitCost:   m.UnitCost,
			Balance:    balance,
			Date:       m.Date,
		})
	}
	return resp, nil
}
