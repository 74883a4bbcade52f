package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/almacen-pro/internal/application/movements"
	"github.com/tu-usuario/almacen-pro/internal/application/orders"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// Ensure TxRunner implementa los puertos de ambos casos de uso.
var _ movements.TxRunner = (*TxRunner)(nil)
var _ orders.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL con los
// repositorios del motor atados a esa tx. Un error del callback hace rollback:
// el kardex nunca queda con escrituras parciales.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	ledger repository.LedgerRepository,
	orderRepo repository.OrderRepository,
	fulfillmentRepo repository.FulfillmentRepository,
	seriesRepo repository.DocumentSeriesRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ledger := NewLedgerRepository(tx)
	orderRepo := NewOrderRepository(tx)
	fulfillmentRepo := NewFulfillmentRepository(tx)
	seriesRepo := NewDocumentSeriesRepository(tx)

	if err := fn(ledger, orderRepo, fulfillmentRepo, seriesRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
