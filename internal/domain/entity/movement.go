package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del kardex.
const (
	MovementKindIngreso = "INGRESO" // entrada: aumenta stock
	MovementKindSalida  = "SALIDA"  // salida: disminuye stock
)

// StockMovement representa un asiento del kardex (ingreso o salida de material
// en un proyecto/almacén). El kardex es append-only: un movimiento nunca se
// modifica ni se elimina una vez confirmado.
//
// UnitPrice es opcional: los ingresos por compra llevan el precio contractual,
// los ingresos por traslado llevan el costo promedio del origen (o nil si aún
// no hay base de costo) y las salidas no registran precio.
type StockMovement struct {
	ID          string
	ProductCode string
	Project     string
	Kind        string // INGRESO o SALIDA
	Quantity    decimal.Decimal // siempre positiva; el signo lo da Kind
	UnitPrice   *decimal.Decimal
	DocumentRef string // NI-001, NS-002, NT-003, etc.
	Notes       string
	Date        time.Time
	CreatedAt   time.Time
}

// IsIngreso indica si el movimiento suma stock.
func (m *StockMovement) IsIngreso() bool { return m.Kind == MovementKindIngreso }

// SignedQuantity devuelve la cantidad con signo según el tipo de movimiento.
func (m *StockMovement) SignedQuantity() decimal.Decimal {
	if m.Kind == MovementKindSalida {
		return m.Quantity.Neg()
	}
	return m.Quantity
}
