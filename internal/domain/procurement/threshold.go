package procurement

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/almacen-pro/internal/domain"
)

// Route destino de una compra propuesta.
type Route string

const (
	RouteDirectReceipt Route = "DIRECT_RECEIPT" // ingreso directo al kardex, sin orden formal
	RouteFormalOrder   Route = "FORMAL_ORDER"   // orden de compra/servicio con aprobación
)

// Policy política de enrutamiento de compras de bajo valor. El umbral es un
// valor de negocio configurable (PROCUREMENT_MIN_ORDER_AMOUNT), no una
// constante estructural.
type Policy struct {
	MinOrderAmount decimal.Decimal
}

// NewPolicy construye la política con el monto mínimo para orden formal.
func NewPolicy(minOrderAmount decimal.Decimal) Policy {
	return Policy{MinOrderAmount: minOrderAmount}
}

// Route decide el tratamiento de una compra: bajo el umbral y con
// requerimiento previamente aprobado va como ingreso directo; todo lo demás
// exige orden formal. Función de decisión pura, sin efectos.
func (p Policy) Route(total decimal.Decimal, hasApprovedRequest bool) Route {
	if hasApprovedRequest && total.LessThan(p.MinOrderAmount) {
		return RouteDirectReceipt
	}
	return RouteFormalOrder
}

// ValidateFormalOrder rechaza la creación de una orden formal cuyo total no
// alcanza el mínimo; esas compras deben ir por la vía directa.
func (p Policy) ValidateFormalOrder(total decimal.Decimal) error {
	if total.LessThan(p.MinOrderAmount) {
		return &domain.BelowMinimumOrderAmountError{Total: total, Minimum: p.MinOrderAmount}
	}
	return nil
}

// ValidateDirectReceipt verifica que la compra propuesta califica para la vía
// directa según la misma política que Route.
func (p Policy) ValidateDirectReceipt(total decimal.Decimal, hasApprovedRequest bool) error {
	if p.Route(total, hasApprovedRequest) != RouteDirectReceipt {
		return domain.ErrDirectReceiptNotAllowed
	}
	return nil
}
