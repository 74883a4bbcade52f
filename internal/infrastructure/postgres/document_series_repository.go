package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

var _ repository.DocumentSeriesRepository = (*DocumentSeriesRepo)(nil)

// DocumentSeriesRepo genera correlativos PREFIX-NNN sobre PostgreSQL.
// El incremento es una sola sentencia atómica: reemplaza el escaneo
// max-then-increment del sistema original, que duplicaba números bajo
// concurrencia. Invocar dentro de la transacción de la operación para que un
// rollback no deje huecos fuera de la serie reservada.
type DocumentSeriesRepo struct {
	q Querier
}

// NewDocumentSeriesRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentSeriesRepository(q Querier) *DocumentSeriesRepo {
	return &DocumentSeriesRepo{q: q}
}

// NextRef reserva el siguiente número de la serie y devuelve la referencia
// formateada (NI-001, NT-003...). Dos transacciones concurrentes sobre la
// misma serie se serializan en el lock de fila del UPDATE.
func (r *DocumentSeriesRepo) NextRef(ctx context.Context, prefix string) (string, error) {
	query := `
		INSERT INTO document_series (prefix, last_number)
		VALUES ($1, 1)
		ON CONFLICT (prefix)
		DO UPDATE SET last_number = document_series.last_number + 1
		RETURNING last_number`
	var n int64
	if err := r.q.QueryRow(ctx, query, prefix).Scan(&n); err != nil {
		return "", fmt.Errorf("next ref %s: %w", prefix, err)
	}
	return fmt.Sprintf("%s-%03d", prefix, n), nil
}
