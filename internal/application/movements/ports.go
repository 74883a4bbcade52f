package movements

import (
	"context"

	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Toda operación pública del orquestador corre
// completa dentro de una transacción: verificación de stock, asientos del
// kardex y actualización de estado de orden confirman juntos o no confirman.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		ledger repository.LedgerRepository,
		orderRepo repository.OrderRepository,
		fulfillmentRepo repository.FulfillmentRepository,
		seriesRepo repository.DocumentSeriesRepository,
	) error) error
}
