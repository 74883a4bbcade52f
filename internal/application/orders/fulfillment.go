package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// FulfillmentTracker lleva el saldo atendido-vs-ordenado por línea y deriva el
// estado de la orden. El pendiente nunca se materializa: se recalcula como
// ordenado − Σ recibido dentro de la misma transacción que lo modifica.
type FulfillmentTracker struct {
	orderRepo       repository.OrderRepository
	fulfillmentRepo repository.FulfillmentRepository
}

// NewFulfillmentTracker construye el tracker con repos atados al pool (lecturas).
func NewFulfillmentTracker(
	orderRepo repository.OrderRepository,
	fulfillmentRepo repository.FulfillmentRepository,
) *FulfillmentTracker {
	return &FulfillmentTracker{orderRepo: orderRepo, fulfillmentRepo: fulfillmentRepo}
}

// ReceiptLineInput una línea de recepción contra la orden.
type ReceiptLineInput struct {
	ProductCode      string
	ReceivedQuantity decimal.Decimal
}

// PendingFor devuelve el pendiente por producto de una orden:
// ordenado − Σ recibido, con piso en cero.
func (t *FulfillmentTracker) PendingFor(ctx context.Context, orderID string) (map[string]decimal.Decimal, error) {
	order, err := t.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	received, err := t.fulfillmentRepo.ReceivedByLine(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return pendingByLine(order, received), nil
}

// ApplyReceiptInTx registra una atención usando los repositorios de la
// transacción del caller (la orden llega ya bloqueada con GetForUpdate).
// Valida estado, pertenencia de líneas, cantidades y sobre-recepción antes de
// escribir; luego recalcula el pendiente de todas las líneas y deriva el nuevo
// estado: COMPLETED si todo quedó en cero, PARTIAL en caso contrario.
func (t *FulfillmentTracker) ApplyReceiptInTx(
	ctx context.Context,
	orderRepo repository.OrderRepository,
	fulfillmentRepo repository.FulfillmentRepository,
	order *entity.Order,
	lines []ReceiptLineInput,
	documentRef string,
	date time.Time,
) (entity.OrderState, error) {
	if len(lines) == 0 {
		return "", domain.ErrInvalidInput
	}
	if !order.State.CanReceive() {
		return "", &domain.InvalidOrderStateError{OrderID: order.ID, State: order.State}
	}

	received, err := fulfillmentRepo.ReceivedByLine(ctx, order.ID)
	if err != nil {
		return "", err
	}

	// Validación completa antes de cualquier escritura (fail-fast). Un
	// producto repetido en la recepción burlaría el control de sobre-recepción
	// línea a línea, así que se rechaza como entrada inválida.
	seen := make(map[string]bool, len(lines))
	for _, in := range lines {
		line := order.LineFor(in.ProductCode)
		if line == nil {
			return "", &domain.UnknownOrderLineError{OrderID: order.ID, ProductCode: in.ProductCode}
		}
		if !in.ReceivedQuantity.GreaterThan(decimal.Zero) || seen[in.ProductCode] {
			return "", domain.ErrInvalidInput
		}
		seen[in.ProductCode] = true
		pending := line.OrderedQuantity.Sub(received[in.ProductCode])
		if in.ReceivedQuantity.GreaterThan(pending) {
			return "", &domain.OverReceiptError{
				OrderID:     order.ID,
				ProductCode: in.ProductCode,
				Received:    in.ReceivedQuantity,
				Pending:     pending,
			}
		}
	}

	now := time.Now()
	record := &entity.FulfillmentRecord{
		ID:          uuid.New().String(),
		OrderID:     order.ID,
		DocumentRef: documentRef,
		Date:        date,
		CreatedAt:   now,
	}
	for _, in := range lines {
		record.Lines = append(record.Lines, entity.FulfillmentLine{
			ProductCode:      in.ProductCode,
			ReceivedQuantity: in.ReceivedQuantity,
		})
		received[in.ProductCode] = received[in.ProductCode].Add(in.ReceivedQuantity)
	}
	if err := fulfillmentRepo.Create(ctx, record); err != nil {
		return "", err
	}

	newState := deriveState(order, received)
	if !order.State.CanTransitionTo(newState) {
		return "", &domain.InvalidOrderStateError{OrderID: order.ID, State: order.State}
	}
	if err := orderRepo.UpdateState(ctx, order.ID, newState); err != nil {
		return "", err
	}
	return newState, nil
}

// deriveState COMPLETED si y solo si todas las líneas quedaron sin pendiente.
func deriveState(order *entity.Order, received map[string]decimal.Decimal) entity.OrderState {
	for _, l := range order.Lines {
		if l.OrderedQuantity.Sub(received[l.ProductCode]).GreaterThan(decimal.Zero) {
			return entity.OrderStatePartial
		}
	}
	return entity.OrderStateCompleted
}

func pendingByLine(order *entity.Order, received map[string]decimal.Decimal) map[string]decimal.Decimal {
	pending := make(map[string]decimal.Decimal, len(order.Lines))
	for _, l := range order.Lines {
		p := l.OrderedQuantity.Sub(received[l.ProductCode])
		if p.IsNegative() {
			p = decimal.Zero
		}
		pending[l.ProductCode] = p
	}
	return pending
}
