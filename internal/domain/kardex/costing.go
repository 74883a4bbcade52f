package kardex

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
)

// WeightedAverageCost calcula el costo promedio ponderado de un producto a
// partir de sus movimientos en un proyecto (servicio de dominio, puro).
//
//	Costo = Σ(cantidad × precio) / Σ(cantidad)
//
// Solo participan los INGRESOS con precio registrado: los ingresos por
// traslado sin precio quedan fuera de ambas sumas para no diluir el promedio
// con precios cero. Si no hay base de costo el resultado es cero (no es error).
func WeightedAverageCost(movements []*entity.StockMovement) decimal.Decimal {
	num := decimal.Zero
	den := decimal.Zero
	for _, m := range movements {
		if !m.IsIngreso() || m.UnitPrice == nil {
			continue
		}
		num = num.Add(m.Quantity.Mul(*m.UnitPrice))
		den = den.Add(m.Quantity)
	}
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den)
}
