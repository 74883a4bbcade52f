package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/application/movements"
	"github.com/tu-usuario/almacen-pro/internal/application/orders"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
)

// MovementHandler maneja las peticiones HTTP del motor de movimientos y las
// consultas de kardex.
type MovementHandler struct {
	uc *movements.MovementUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *movements.MovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Receive godoc
// @Summary      Registrar recepción contra una orden aprobada
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveRequest  true  "order_id, lines; document_ref vacío genera NI-NNN"
// @Success      201   {object}  dto.ReceiveResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements/receipts [post]
func (h *MovementHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]orders.ReceiptLineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, orders.ReceiptLineInput{
			ProductCode:      l.ProductCode,
			ReceivedQuantity: l.ReceivedQuantity,
		})
	}
	result, err := h.uc.ReceiveAgainstOrder(c.Context(), movements.ReceiveInput{
		OrderID:     in.OrderID,
		DocumentRef: in.DocumentRef,
		Date:        in.Date,
		Notes:       in.Notes,
		Lines:       lines,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ReceiveResponse{
		DocumentRef: result.DocumentRef,
		NewState:    string(result.NewState),
		Movements:   toMovementDTOs(result.Movements),
	})
}

// Issue godoc
// @Summary      Registrar salida de material de un proyecto
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IssueRequest  true  "project, lines; document_ref vacío genera NS-NNN"
// @Success      201   {object}  dto.MovementBatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements/issues [post]
func (h *MovementHandler) Issue(c *fiber.Ctx) error {
	var in dto.IssueRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.IssueMaterial(c.Context(), movements.IssueInput{
		Project:     in.Project,
		DocumentRef: in.DocumentRef,
		Date:        in.Date,
		Notes:       in.Notes,
		Lines:       toMovementLines(in.Lines),
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toBatchResponse(result))
}

// Transfer godoc
// @Summary      Trasladar material entre proyectos
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "origin_project, destination_project, lines"
// @Success      201   {object}  dto.MovementBatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements/transfers [post]
func (h *MovementHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.TransferMaterial(c.Context(), movements.TransferInput{
		OriginProject:      in.OriginProject,
		DestinationProject: in.DestinationProject,
		DocumentRef:        in.DocumentRef,
		Date:               in.Date,
		Notes:              in.Notes,
		Lines:              toMovementLines(in.Lines),
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toBatchResponse(result))
}

// DirectReceipt godoc
// @Summary      Ingreso directo de compra de bajo valor (sin orden formal)
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DirectReceiptRequest  true  "supplier_id, project, lines con precio, has_approved_request"
// @Success      201   {object}  dto.MovementBatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/movements/direct-receipts [post]
func (h *MovementHandler) DirectReceipt(c *fiber.Ctx) error {
	var in dto.DirectReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]movements.DirectReceiptLineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, movements.DirectReceiptLineInput{
			ProductCode: l.ProductCode,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
		})
	}
	result, err := h.uc.DirectReceipt(c.Context(), movements.DirectReceiptInput{
		CompanyID:          in.CompanyID,
		SupplierID:         in.SupplierID,
		Project:            in.Project,
		DocumentRef:        in.DocumentRef,
		Date:               in.Date,
		Notes:              in.Notes,
		HasApprovedRequest: in.HasApprovedRequest,
		Lines:              lines,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toBatchResponse(result))
}

// Kardex godoc
// @Summary      Kardex de un producto con saldo corrido
// @Tags         kardex
// @Produce      json
// @Param        productCode  path  string  true  "código de producto"
// @Success      200  {array}   dto.KardexRowDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/kardex/{productCode} [get]
func (h *MovementHandler) Kardex(c *fiber.Ctx) error {
	rows, err := h.uc.Kardex(c.Context(), c.Params("productCode"))
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]dto.KardexRowDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.KardexRowDTO{
			Movement: toMovementDTO(r.Movement),
			Balance:  r.Balance,
		})
	}
	return c.JSON(out)
}

// Stock godoc
// @Summary      Stock actual de un producto en un proyecto
// @Tags         kardex
// @Produce      json
// @Param        product  query  string  true  "código de producto"
// @Param        project  query  string  true  "proyecto/almacén"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *MovementHandler) Stock(c *fiber.Ctx) error {
	productCode := c.Query("product")
	project := c.Query("project")
	qty, err := h.uc.StockOf(c.Context(), productCode, project)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.StockResponse{ProductCode: productCode, Project: project, Quantity: qty})
}

// AverageCost godoc
// @Summary      Costo promedio ponderado de un producto en un proyecto
// @Tags         kardex
// @Produce      json
// @Param        product  query  string  true  "código de producto"
// @Param        project  query  string  true  "proyecto/almacén"
// @Success      200  {object}  dto.AverageCostResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/average-cost [get]
func (h *MovementHandler) AverageCost(c *fiber.Ctx) error {
	productCode := c.Query("product")
	project := c.Query("project")
	cost, err := h.uc.WeightedAverageCost(c.Context(), productCode, project)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.AverageCostResponse{ProductCode: productCode, Project: project, AverageCost: cost})
}

func toMovementLines(in []dto.MovementLineRequest) []movements.MovementLineInput {
	lines := make([]movements.MovementLineInput, 0, len(in))
	for _, l := range in {
		lines = append(lines, movements.MovementLineInput{ProductCode: l.ProductCode, Quantity: l.Quantity})
	}
	return lines
}

func toMovementDTO(m *entity.StockMovement) dto.MovementDTO {
	return dto.MovementDTO{
		ID:          m.ID,
		ProductCode: m.ProductCode,
		Project:     m.Project,
		Kind:        m.Kind,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		DocumentRef: m.DocumentRef,
		Date:        m.Date,
	}
}

func toMovementDTOs(movs []*entity.StockMovement) []dto.MovementDTO {
	out := make([]dto.MovementDTO, 0, len(movs))
	for _, m := range movs {
		out = append(out, toMovementDTO(m))
	}
	return out
}

func toBatchResponse(result *movements.MovementResult) dto.MovementBatchResponse {
	return dto.MovementBatchResponse{
		DocumentRef: result.DocumentRef,
		Movements:   toMovementDTOs(result.Movements),
	}
}
