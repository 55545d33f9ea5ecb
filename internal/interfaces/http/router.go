package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/andilac/lacteos-api/internal/application/auth"
	"github.com/andilac/lacteos-api/internal/application/catalog"
	appinv "github.com/andilac/lacteos-api/internal/application/inventory"
	"github.com/andilac/lacteos-api/internal/application/notification"
	"github.com/andilac/lacteos-api/internal/application/production"
	"github.com/andilac/lacteos-api/internal/application/purchasing"
	"github.com/andilac/lacteos-api/internal/application/reports"
	"github.com/andilac/lacteos-api/internal/application/validation"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	ProviderUC      *catalog.ProviderUseCase
	ProductUC       *catalog.ProductUseCase
	WarehouseUC     *catalog.WarehouseUseCase
	EmployeeUC      *catalog.EmployeeUseCase
	MovementUC      *appinv.RegisterMovementUseCase
	BulkEntryUC     *appinv.BulkEntryUseCase
	InventoryQuery  *appinv.QueryUseCase
	BatchLabels     appinv.BatchLabelGenerator
	PurchaseOrderUC *purchasing.PurchaseOrderUseCase
	RecipeUC        *production.RecipeUseCase
	ProductionUC    *production.ProductionUseCase
	NotificationUC  *notification.UseCase
	ReportsUC       *reports.UseCase
	Validator       *validation.Validator
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	v := deps.Validator

	// Auth: login público; el registro de empleados queda para admin.
	authHandler := NewAuthHandler(deps.AuthUC, v)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole("admin")
	supervisorUp := RequireRole("admin", "supervisor")

	protected.Post("/auth/register", adminOnly, authHandler.Register)

	// Providers
	providers := protected.Group("/providers")
	providerHandler := NewProviderHandler(deps.ProviderUC, v)
	providers.Post("/", supervisorUp, providerHandler.Create)
	providers.Get("/", providerHandler.List)
	providers.Get("/:id", providerHandler.GetByID)
	providers.Put("/:id", supervisorUp, providerHandler.Update)
	providers.Patch("/:id/toggle-status", supervisorUp, providerHandler.ToggleStatus)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, v)
	products.Post("/", supervisorUp, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", supervisorUp, productHandler.Update)

	// Warehouses
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC, v)
	warehouses.Post("/", adminOnly, warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", adminOnly, warehouseHandler.Update)

	// Employees
	employees := protected.Group("/employees")
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC, v)
	employees.Get("/", employeeHandler.List)
	employees.Get("/:id", employeeHandler.GetByID)
	employees.Put("/:id", adminOnly, employeeHandler.Update)

	// Purchase orders
	orders := protected.Group("/purchase-orders")
	orderHandler := NewPurchaseOrderHandler(deps.PurchaseOrderUC, deps.BulkEntryUC, v)
	orders.Post("/", supervisorUp, orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Patch("/:id/status", supervisorUp, orderHandler.UpdateStatus)
	orders.Post("/:id/payments", supervisorUp, orderHandler.RegisterPayment)
	orders.Get("/:id/payments", orderHandler.ListPayments)
	orders.Get("/:id/pdf", orderHandler.GeneratePDF)
	orders.Post("/:id/send-email", supervisorUp, orderHandler.SendEmail)
	orders.Post("/:id/send-whatsapp", supervisorUp, orderHandler.SendWhatsApp)
	orders.Post("/:id/bulk-entry", orderHandler.BulkEntry)

	// Inventory
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.MovementUC, deps.InventoryQuery, v)
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/validate-exit", inventoryHandler.ValidateExit)
	invGroup.Get("/low-stock", inventoryHandler.LowStock)

	// Batches
	batches := protected.Group("/batches")
	batchHandler := NewBatchHandler(deps.InventoryQuery, deps.BatchLabels)
	batches.Get("/", batchHandler.List)
	batches.Get("/expiring", batchHandler.Expiring)
	batches.Get("/:id", batchHandler.GetByID)
	batches.Get("/:id/label", batchHandler.Label)

	// Recipes
	recipes := protected.Group("/recipes")
	recipeHandler := NewRecipeHandler(deps.RecipeUC, v)
	recipes.Post("/", supervisorUp, recipeHandler.Create)
	recipes.Get("/", recipeHandler.List)
	recipes.Get("/:id", recipeHandler.GetByID)
	recipes.Post("/:id/duplicate", supervisorUp, recipeHandler.Duplicate)
	recipes.Patch("/:id/toggle-status", supervisorUp, recipeHandler.ToggleStatus)
	recipes.Get("/:id/validate-stock", recipeHandler.ValidateStock)

	// Production orders
	prodOrders := protected.Group("/production-orders")
	productionHandler := NewProductionHandler(deps.ProductionUC, v)
	prodOrders.Post("/", supervisorUp, productionHandler.Create)
	prodOrders.Get("/", productionHandler.List)
	prodOrders.Get("/:id", productionHandler.GetByID)
	prodOrders.Post("/:id/start", productionHandler.Start)
	prodOrders.Patch("/:id/progress", productionHandler.UpdateProgress)
	prodOrders.Post("/:id/complete", productionHandler.Complete)
	prodOrders.Post("/:id/cancel", supervisorUp, productionHandler.Cancel)

	// Alerts y reminders
	notificationHandler := NewNotificationHandler(deps.NotificationUC, v)
	alerts := protected.Group("/alerts")
	alerts.Get("/", notificationHandler.ListAlerts)
	alerts.Post("/:id/acknowledge", notificationHandler.AcknowledgeAlert)
	alerts.Post("/:id/resolve", notificationHandler.ResolveAlert)

	reminders := protected.Group("/reminders")
	reminders.Post("/", notificationHandler.CreateReminder)
	reminders.Get("/", notificationHandler.ListReminders)
	reminders.Post("/:id/complete", notificationHandler.CompleteReminder)
	reminders.Post("/:id/cancel", notificationHandler.CancelReminder)

	// Reports
	reportHandler := NewReportHandler(deps.ReportsUC)
	reportsGroup := protected.Group("/reports")
	reportsGroup.Get("/dashboard", reportHandler.Dashboard)
	reportsGroup.Get("/kardex", reportHandler.Kardex)
}
