package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/domain"
)

// writeDomainError mapea la taxonomía de errores del motor a HTTP. Todos los
// errores del subsistema son recuperables y de cara al usuario; el mensaje
// incluye producto, proyecto y cantidades para un render accionable.
func writeDomainError(c *fiber.Ctx, err error) error {
	var (
		unknownProduct *domain.UnknownProductError
		unknownProject *domain.UnknownProjectError
		unknownLine    *domain.UnknownOrderLineError
		invalidState   *domain.InvalidOrderStateError
		overReceipt    *domain.OverReceiptError
		insufficient   *domain.InsufficientStockError
		invalidXfer    *domain.InvalidTransferError
		belowMinimum   *domain.BelowMinimumOrderAmountError
		duplicateRef   *domain.DuplicateDocumentReferenceError
	)
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return respond(c, fiber.StatusBadRequest, "VALIDATION", err)
	case errors.Is(err, domain.ErrNotFound):
		return respond(c, fiber.StatusNotFound, "NOT_FOUND", err)
	case errors.Is(err, domain.ErrDirectReceiptNotAllowed):
		return respond(c, fiber.StatusUnprocessableEntity, "DIRECT_RECEIPT_NOT_ALLOWED", err)
	case errors.As(err, &unknownProduct):
		return respond(c, fiber.StatusNotFound, "UNKNOWN_PRODUCT", err)
	case errors.As(err, &unknownProject):
		return respond(c, fiber.StatusNotFound, "UNKNOWN_PROJECT", err)
	case errors.As(err, &unknownLine):
		return respond(c, fiber.StatusNotFound, "UNKNOWN_ORDER_LINE", err)
	case errors.As(err, &invalidState):
		return respond(c, fiber.StatusConflict, "INVALID_ORDER_STATE", err)
	case errors.As(err, &overReceipt):
		return respond(c, fiber.StatusConflict, "OVER_RECEIPT", err)
	case errors.As(err, &insufficient):
		return respond(c, fiber.StatusConflict, "INSUFFICIENT_STOCK", err)
	case errors.As(err, &invalidXfer):
		return respond(c, fiber.StatusBadRequest, "INVALID_TRANSFER", err)
	case errors.As(err, &belowMinimum):
		return respond(c, fiber.StatusUnprocessableEntity, "BELOW_MINIMUM_ORDER_AMOUNT", err)
	case errors.As(err, &duplicateRef):
		return respond(c, fiber.StatusConflict, "DUPLICATE_DOCUMENT_REFERENCE", err)
	}
	return respond(c, fiber.StatusInternalServerError, "INTERNAL", err)
}

func respond(c *fiber.Ctx, status int, code string, err error) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}
