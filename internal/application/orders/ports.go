package orders

import (
	"context"

	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad entre el asiento de la
// orden y la reserva del correlativo.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		ledger repository.LedgerRepository,
		orderRepo repository.OrderRepository,
		fulfillmentRepo repository.FulfillmentRepository,
		seriesRepo repository.DocumentSeriesRepository,
	) error) error
}
