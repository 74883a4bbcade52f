package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/application/orders"
)

// OrderHandler maneja la creación de órdenes y las consultas de pendiente.
// La aprobación (PENDING→APPROVED/REJECTED) es del flujo de aprobación
// externo y no se expone aquí.
type OrderHandler struct {
	createUC *orders.CreateOrderUseCase
	tracker  *orders.FulfillmentTracker
}

// NewOrderHandler construye el handler.
func NewOrderHandler(createUC *orders.CreateOrderUseCase, tracker *orders.FulfillmentTracker) *OrderHandler {
	return &OrderHandler{createUC: createUC, tracker: tracker}
}

// Create godoc
// @Summary      Crear orden de compra o servicio (PENDING)
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "kind OC/OS, supplier_id, project, lines"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]orders.CreateOrderLineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, orders.CreateOrderLineInput{
			ProductCode: l.ProductCode,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
		})
	}
	order, err := h.createUC.CreateOrder(c.Context(), orders.CreateOrderInput{
		Kind:       in.Kind,
		SupplierID: in.SupplierID,
		CompanyID:  in.CompanyID,
		Project:    in.Project,
		Currency:   in.Currency,
		Lines:      lines,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	out := dto.OrderResponse{
		ID:          order.ID,
		Correlative: order.Correlative,
		Kind:        order.Kind,
		SupplierID:  order.SupplierID,
		Project:     order.Project,
		Currency:    order.Currency,
		State:       string(order.State),
		Total:       order.Total(),
	}
	for _, l := range order.Lines {
		out.Lines = append(out.Lines, dto.CreateOrderLineRequest{
			ProductCode: l.ProductCode,
			Quantity:    l.OrderedQuantity,
			UnitPrice:   l.UnitPrice,
		})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Pending godoc
// @Summary      Pendiente por producto de una orden
// @Tags         orders
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.PendingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/pending [get]
func (h *OrderHandler) Pending(c *fiber.Ctx) error {
	orderID := c.Params("id")
	pending, err := h.tracker.PendingFor(c.Context(), orderID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.PendingResponse{OrderID: orderID, Pending: pending})
}
