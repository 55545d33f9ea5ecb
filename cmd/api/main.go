package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/andilac/lacteos-api/internal/application/auth"
	"github.com/andilac/lacteos-api/internal/application/catalog"
	appinv "github.com/andilac/lacteos-api/internal/application/inventory"
	"github.com/andilac/lacteos-api/internal/application/notification"
	"github.com/andilac/lacteos-api/internal/application/production"
	"github.com/andilac/lacteos-api/internal/application/purchasing"
	"github.com/andilac/lacteos-api/internal/application/reports"
	"github.com/andilac/lacteos-api/internal/application/validation"
	"github.com/andilac/lacteos-api/internal/infrastructure/notify"
	infrapdf "github.com/andilac/lacteos-api/internal/infrastructure/pdf"
	"github.com/andilac/lacteos-api/internal/infrastructure/postgres"
	httpRouter "github.com/andilac/lacteos-api/internal/interfaces/http"
	"github.com/andilac/lacteos-api/pkg/config"
	"github.com/andilac/lacteos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios
	providerRepo := postgres.NewProviderRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	orderRepo := postgres.NewPurchaseOrderRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	recipeRepo := postgres.NewRecipeRepository(pool)
	productionRepo := postgres.NewProductionOrderRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)
	reminderRepo := postgres.NewReminderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Infraestructura
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	emailSender := notify.NewSendGridEmailSender(cfg.Mail, log.Component("email"))
	whatsappSender := notify.NewWhatsAppSender(cfg.WhatsApp, log.Component("whatsapp"))

	// Casos de uso
	authUC := auth.NewAuthUseCase(employeeRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	providerUC := catalog.NewProviderUseCase(providerRepo)
	productUC := catalog.NewProductUseCase(productRepo)
	warehouseUC := catalog.NewWarehouseUseCase(warehouseRepo)
	employeeUC := catalog.NewEmployeeUseCase(employeeRepo)

	movementUC := appinv.NewRegisterMovementUseCase(txRunner, productRepo, warehouseRepo)
	bulkEntryUC := appinv.NewBulkEntryUseCase(txRunner, movementUC, orderRepo, productRepo)
	inventoryQueryUC := appinv.NewQueryUseCase(stockRepo, productRepo, batchRepo, movementRepo)

	purchaseOrderUC := purchasing.NewPurchaseOrderUseCase(
		orderRepo, paymentRepo, providerRepo, productRepo,
		pdfGenerator, emailSender, whatsappSender,
	)
	recipeUC := production.NewRecipeUseCase(recipeRepo, productRepo, stockRepo)
	productionUC := production.NewProductionUseCase(
		txRunner, movementUC,
		productionRepo, recipeRepo, productRepo, warehouseRepo, stockRepo,
	)
	notificationUC := notification.NewUseCase(alertRepo, reminderRepo)
	reportsUC := reports.NewUseCase(
		productRepo, providerRepo, orderRepo, productionRepo,
		alertRepo, stockRepo, movementRepo,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Láctea Andina API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		ProviderUC:      providerUC,
		ProductUC:       productUC,
		WarehouseUC:     warehouseUC,
		EmployeeUC:      employeeUC,
		MovementUC:      movementUC,
		BulkEntryUC:     bulkEntryUC,
		InventoryQuery:  inventoryQueryUC,
		BatchLabels:     pdfGenerator,
		PurchaseOrderUC: purchaseOrderUC,
		RecipeUC:        recipeUC,
		ProductionUC:    productionUC,
		NotificationUC:  notificationUC,
		ReportsUC:       reportsUC,
		Validator:       validation.New(),
		JWTSecret:       cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
