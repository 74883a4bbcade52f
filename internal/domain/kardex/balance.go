package kardex

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
)

// BalanceRow un movimiento del kardex con el saldo acumulado tras aplicarlo.
type BalanceRow struct {
	Movement *entity.StockMovement
	Balance  decimal.Decimal
}

// RunningBalance reconstruye el saldo corrido de un kardex a partir de la
// secuencia de movimientos (ordenada por fecha y orden de inserción). El saldo
// no se almacena: es un pliegue sobre la secuencia, reproducible en cualquier
// momento para auditoría.
func RunningBalance(movements []*entity.StockMovement) []BalanceRow {
	rows := make([]BalanceRow, 0, len(movements))
	balance := decimal.Zero
	for _, m := range movements {
		balance = balance.Add(m.SignedQuantity())
		rows = append(rows, BalanceRow{Movement: m, Balance: balance})
	}
	return rows
}

// StockFrom suma los movimientos de un (producto, proyecto): Σ ingresos − Σ salidas.
// Útil para verificación y pruebas; en producción la suma la hace el ledger store.
func StockFrom(movements []*entity.StockMovement) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		total = total.Add(m.SignedQuantity())
	}
	return total
}
