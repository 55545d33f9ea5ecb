package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardResponse resumen del tablero principal.
type DashboardResponse struct {
	ActiveProducts     int             `json:"active_products"`
	ActiveProviders    int             `json:"active_providers"`
	OpenPurchaseOrders int             `json:"open_purchase_orders"`
	OrdersInProduction int             `json:"orders_in_production"`
	ActiveAlerts       int             `json:"active_alerts"`
	InventoryValue     decimal.Decimal `json:"inventory_value"` // Σ stock * costo promedio
}

// KardexEntry movimiento con saldo acumulado para el kardex de un producto.
type KardexEntry struct {
	MovementID string          `json:"movement_id"`
	Type       string          `json:"type"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	Balance    decimal.Decimal `json:"balance"` // saldo después del movimiento
	Date       time.Time       `json:"date"`
}

// KardexResponse kardex de un producto.
type KardexResponse struct {
	ProductID string        `json:"product_id"`
	Entries   []KardexEntry `json:"entries"`
}
