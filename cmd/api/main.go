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

	"github.com/tu-usuario/almacen-pro/internal/application/movements"
	"github.com/tu-usuario/almacen-pro/internal/application/orders"
	"github.com/tu-usuario/almacen-pro/internal/domain/procurement"
	"github.com/tu-usuario/almacen-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/almacen-pro/internal/interfaces/http"
	"github.com/tu-usuario/almacen-pro/pkg/config"
	"github.com/tu-usuario/almacen-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("min_order_amount", cfg.Procurement.MinOrderAmount.String()).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	ledgerRepo := postgres.NewLedgerRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	fulfillmentRepo := postgres.NewFulfillmentRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	policy := procurement.NewPolicy(cfg.Procurement.MinOrderAmount)
	tracker := orders.NewFulfillmentTracker(orderRepo, fulfillmentRepo)
	createOrderUC := orders.NewCreateOrderUseCase(txRunner, productRepo, projectRepo, supplierRepo, companyRepo, policy)
	movementUC := movements.NewMovementUseCase(txRunner, ledgerRepo, productRepo, projectRepo, tracker, policy)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Almacen API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		MovementUC: movementUC,
		CreateUC:   createOrderUC,
		Tracker:    tracker,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor")
	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("apagado del servidor HTTP")
	}
}
