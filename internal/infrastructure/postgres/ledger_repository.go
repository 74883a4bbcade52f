package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo adaptador del kardex sobre PostgreSQL (usable con pool o tx).
// La tabla kardex_movements es append-only: solo INSERT, jamás UPDATE/DELETE.
// La columna seq (bigserial) conserva el orden de inserción para el desempate
// dentro de una misma fecha.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

const movementColumns = `id, product_code, project, kind, quantity, unit_price, document_ref, notes, date, created_at`

// AppendAll asienta un lote de movimientos. Debe invocarse dentro de una
// transacción para que el lote confirme completo o no confirme.
func (r *LedgerRepo) AppendAll(ctx context.Context, movements []*entity.StockMovement) error {
	query := `
		INSERT INTO kardex_movements (id, product_code, project, kind, quantity, unit_price, document_ref, notes, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	for _, m := range movements {
		if m.ID == "" {
			m.ID = uuid.New().String()
		}
		_, err := r.q.Exec(ctx, query,
			m.ID, m.ProductCode, m.Project, m.Kind, m.Quantity, m.UnitPrice,
			m.DocumentRef, m.Notes, m.Date, m.CreatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return &domain.DuplicateDocumentReferenceError{DocumentRef: m.DocumentRef}
			}
			return fmt.Errorf("append movement: %w", err)
		}
	}
	return nil
}

// StockOf suma los movimientos confirmados del producto en el proyecto.
// Única fuente de verdad de disponibilidad: no hay columna de stock materializada.
func (r *LedgerRepo) StockOf(ctx context.Context, productCode, project string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN kind = 'INGRESO' THEN quantity ELSE -quantity END), 0)
		FROM kardex_movements
		WHERE product_code = $1 AND project = $2`
	var stock decimal.Decimal
	if err := r.q.QueryRow(ctx, query, productCode, project).Scan(&stock); err != nil {
		return decimal.Zero, fmt.Errorf("stock of: %w", err)
	}
	return stock, nil
}

// LockKey toma un advisory lock transaccional por (producto, proyecto). El
// kardex no tiene fila de stock que bloquear con FOR UPDATE, así que el lock
// por clave cumple la misma disciplina: verificación y asiento aislados de
// escritores concurrentes sobre la misma clave hasta el commit.
func (r *LedgerRepo) LockKey(ctx context.Context, productCode, project string) error {
	query := `SELECT pg_advisory_xact_lock(hashtextextended($1 || '/' || $2, 0))`
	if _, err := r.q.Exec(ctx, query, productCode, project); err != nil {
		return fmt.Errorf("lock key: %w", err)
	}
	return nil
}

// ListByProduct devuelve el kardex completo de un producto ordenado por fecha
// y orden de inserción.
func (r *LedgerRepo) ListByProduct(ctx context.Context, productCode string) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM kardex_movements
		WHERE product_code = $1
		ORDER BY date, seq`
	return r.list(ctx, query, productCode)
}

// ListByProductAndProject devuelve los movimientos de un producto en un proyecto.
func (r *LedgerRepo) ListByProductAndProject(ctx context.Context, productCode, project string) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM kardex_movements
		WHERE product_code = $1 AND project = $2
		ORDER BY date, seq`
	return r.list(ctx, query, productCode, project)
}

func (r *LedgerRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.ProductCode, &m.Project, &m.Kind,
			&m.Quantity, &m.UnitPrice, &m.DocumentRef, &m.Notes, &m.Date, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
