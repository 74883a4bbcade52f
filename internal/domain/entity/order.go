package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra o de servicio.
type OrderState string

const (
	OrderStatePending   OrderState = "PENDING"   // creada, a la espera de aprobación
	OrderStateApproved  OrderState = "APPROVED"  // aprobada, puede recibir atenciones
	OrderStatePartial   OrderState = "PARTIAL"   // atendida parcialmente
	OrderStateCompleted OrderState = "COMPLETED" // todas las líneas atendidas (terminal)
	OrderStateRejected  OrderState = "REJECTED"  // rechazada por aprobación (terminal)
)

// CanReceive indica si la orden admite registrar una atención (recepción).
func (s OrderState) CanReceive() bool {
	return s == OrderStateApproved || s == OrderStatePartial
}

// CanTransitionTo valida las transiciones del ciclo de atención.
// PENDING→APPROVED/REJECTED las maneja el flujo de aprobación externo;
// aquí solo interesan las transiciones derivadas de recepciones.
func (s OrderState) CanTransitionTo(target OrderState) bool {
	switch s {
	case OrderStateApproved:
		return target == OrderStatePartial || target == OrderStateCompleted
	case OrderStatePartial:
		return target == OrderStatePartial || target == OrderStateCompleted
	}
	return false
}

// Tipos de orden.
const (
	OrderKindCompra   = "OC" // orden de compra (bienes)
	OrderKindServicio = "OS" // orden de servicio
)

// Order representa una orden de compra o servicio aprobable.
// Las líneas son inmutables tras la creación; el estado lo muta únicamente
// el seguimiento de atenciones una vez aprobada.
type Order struct {
	ID          string
	Correlative string // OC-001, OS-002, ...
	Kind        string // OC u OS
	SupplierID  string
	CompanyID   string
	Project     string
	Currency    string
	State       OrderState
	Lines       []OrderLine
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OrderLine una línea producto/cantidad/precio de la orden.
type OrderLine struct {
	OrderID         string
	ProductCode     string
	OrderedQuantity decimal.Decimal
	UnitPrice       decimal.Decimal
}

// LineFor busca la línea de un producto; nil si la orden no lo incluye.
func (o *Order) LineFor(productCode string) *OrderLine {
	for i := range o.Lines {
		if o.Lines[i].ProductCode == productCode {
			return &o.Lines[i]
		}
	}
	return nil
}

// Total devuelve el monto total de la orden (Σ cantidad × precio).
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.Lines {
		total = total.Add(l.OrderedQuantity.Mul(l.UnitPrice))
	}
	return total
}
