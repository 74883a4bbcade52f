package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia de órdenes de compra/servicio.
type OrderRepository interface {
	// Create persiste la orden con sus líneas (las líneas son inmutables).
	Create(ctx context.Context, order *entity.Order) error

	// GetByID obtiene la orden con líneas; nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Order, error)

	// GetForUpdate obtiene la orden bloqueando su fila (SELECT FOR UPDATE)
	// para que dos recepciones concurrentes no descuenten el pendiente dos veces.
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)

	// UpdateState actualiza únicamente el estado de la orden.
	UpdateState(ctx context.Context, id string, state entity.OrderState) error
}

// FulfillmentRepository define el puerto de persistencia de atenciones
// (recepciones parciales contra una orden).
type FulfillmentRepository interface {
	// Create persiste un registro de atención con sus líneas.
	Create(ctx context.Context, record *entity.FulfillmentRecord) error

	// ReceivedByLine devuelve, por producto, la cantidad acumulada recibida
	// en todas las atenciones de la orden.
	ReceivedByLine(ctx context.Context, orderID string) (map[string]decimal.Decimal, error)
}
