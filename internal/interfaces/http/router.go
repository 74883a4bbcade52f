package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/almacen-pro/internal/application/movements"
	"github.com/tu-usuario/almacen-pro/internal/application/orders"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MovementUC *movements.MovementUseCase
	CreateUC   *orders.CreateOrderUseCase
	Tracker    *orders.FulfillmentTracker
}

// Router registra las rutas de la API. La autenticación corre en un gateway
// externo; aquí no hay middleware de auth.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	movementHandler := NewMovementHandler(deps.MovementUC)
	mv := api.Group("/movements")
	mv.Post("/receipts", movementHandler.Receive)
	mv.Post("/issues", movementHandler.Issue)
	mv.Post("/transfers", movementHandler.Transfer)
	mv.Post("/direct-receipts", movementHandler.DirectReceipt)

	api.Get("/kardex/:productCode", movementHandler.Kardex)
	api.Get("/stock", movementHandler.Stock)
	api.Get("/stock/average-cost", movementHandler.AverageCost)

	orderHandler := NewOrderHandler(deps.CreateUC, deps.Tracker)
	ord := api.Group("/orders")
	ord.Post("/", orderHandler.Create)
	ord.Get("/:id/pending", orderHandler.Pending)
}
