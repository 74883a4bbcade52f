package movements

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/almacen-pro/internal/domain/kardex"
)

// Consultas de solo lectura sobre el kardex. No toman bloqueos: reflejan
// movimientos confirmados y son reproducibles (releer dos veces devuelve la
// misma secuencia).

// StockOf devuelve el stock actual de un producto en un proyecto.
func (uc *MovementUseCase) StockOf(ctx context.Context, productCode, project string) (decimal.Decimal, error) {
	if err := uc.validateProduct(ctx, productCode); err != nil {
		return decimal.Zero, err
	}
	if err := uc.validateProject(ctx, project); err != nil {
		return decimal.Zero, err
	}
	return uc.ledger.StockOf(ctx, productCode, project)
}

// Kardex devuelve los movimientos de un producto con su saldo corrido,
// ordenados por fecha y orden de inserción.
func (uc *MovementUseCase) Kardex(ctx context.Context, productCode string) ([]kardex.BalanceRow, error) {
	if err := uc.validateProduct(ctx, productCode); err != nil {
		return nil, err
	}
	movs, err := uc.ledger.ListByProduct(ctx, productCode)
	if err != nil {
		return nil, err
	}
	return kardex.RunningBalance(movs), nil
}

// WeightedAverageCost devuelve el costo promedio ponderado de un producto en
// un proyecto; cero si aún no hay ingresos con precio (no es error).
func (uc *MovementUseCase) WeightedAverageCost(ctx context.Context, productCode, project string) (decimal.Decimal, error) {
	if err := uc.validateProduct(ctx, productCode); err != nil {
		return decimal.Zero, err
	}
	if err := uc.validateProject(ctx, project); err != nil {
		return decimal.Zero, err
	}
	movs, err := uc.ledger.ListByProductAndProject(ctx, productCode, project)
	if err != nil {
		return decimal.Zero, err
	}
	return kardex.WeightedAverageCost(movs), nil
}
