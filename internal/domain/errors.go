package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
)

// Errores de dominio simples (sin contexto adicional).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")

	// ErrDirectReceiptNotAllowed: la compra directa exige requerimiento
	// aprobado y total por debajo del umbral; en otro caso corresponde
	// una orden formal.
	ErrDirectReceiptNotAllowed = errors.New("la compra directa requiere requerimiento aprobado y total bajo el umbral")
)

// UnknownProductError el código no existe en el catálogo de productos.
type UnknownProductError struct {
	ProductCode string
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("producto %q no existe en el catálogo", e.ProductCode)
}

// UnknownProjectError el proyecto/almacén no existe.
type UnknownProjectError struct {
	Project string
}

func (e *UnknownProjectError) Error() string {
	return fmt.Sprintf("proyecto %q no existe", e.Project)
}

// UnknownOrderLineError el producto no es línea de la orden.
type UnknownOrderLineError struct {
	OrderID     string
	ProductCode string
}

func (e *UnknownOrderLineError) Error() string {
	return fmt.Sprintf("el producto %q no es una línea de la orden %s", e.ProductCode, e.OrderID)
}

// InvalidOrderStateError la operación no está permitida en el estado actual.
type InvalidOrderStateError struct {
	OrderID string
	State   entity.OrderState
}

func (e *InvalidOrderStateError) Error() string {
	return fmt.Sprintf("la orden %s en estado %s no admite la operación", e.OrderID, e.State)
}

// OverReceiptError la cantidad recibida excede el pendiente de la línea.
type OverReceiptError struct {
	OrderID     string
	ProductCode string
	Received    decimal.Decimal
	Pending     decimal.Decimal
}

func (e *OverReceiptError) Error() string {
	return fmt.Sprintf("recepción de %s unidades de %q excede el pendiente %s de la orden %s",
		e.Received, e.ProductCode, e.Pending, e.OrderID)
}

// InsufficientStockError el stock disponible no cubre la cantidad solicitada.
type InsufficientStockError struct {
	ProductCode string
	Project     string
	Requested   decimal.Decimal
	Available   decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente de %q en proyecto %s: solicitado %s, disponible %s",
		e.ProductCode, e.Project, e.Requested, e.Available)
}

// InvalidTransferError traslado con origen y destino iguales.
type InvalidTransferError struct {
	Project string
}

func (e *InvalidTransferError) Error() string {
	return fmt.Sprintf("traslado inválido: origen y destino son el mismo proyecto %s", e.Project)
}

// BelowMinimumOrderAmountError el total de la orden no alcanza el mínimo de la política.
type BelowMinimumOrderAmountError struct {
	Total   decimal.Decimal
	Minimum decimal.Decimal
}

func (e *BelowMinimumOrderAmountError) Error() string {
	return fmt.Sprintf("el total %s está por debajo del monto mínimo %s para orden formal", e.Total, e.Minimum)
}

// DuplicateDocumentReferenceError la referencia documental ya fue asentada.
// Permite reintentos idempotentes del caller sin doble asiento.
type DuplicateDocumentReferenceError struct {
	DocumentRef string
}

func (e *DuplicateDocumentReferenceError) Error() string {
	return fmt.Sprintf("la referencia documental %q ya fue registrada", e.DocumentRef)
}
