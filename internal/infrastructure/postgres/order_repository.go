package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo adaptador de órdenes sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la orden con sus líneas.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	query := `
		INSERT INTO orders (id, correlative, kind, supplier_id, company_id, project, currency, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.Correlative, order.Kind, order.SupplierID, order.CompanyID,
		order.Project, order.Currency, order.State, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	lineQuery := `
		INSERT INTO order_lines (order_id, product_code, ordered_quantity, unit_price)
		VALUES ($1, $2, $3, $4)`
	for _, l := range order.Lines {
		if _, err := r.q.Exec(ctx, lineQuery, order.ID, l.ProductCode, l.OrderedQuantity, l.UnitPrice); err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la orden con líneas; nil si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate obtiene la orden bloqueando su fila (SELECT FOR UPDATE) para
// serializar recepciones concurrentes sobre la misma orden.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, id, true)
}

func (r *OrderRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.Order, error) {
	query := `
		SELECT id, correlative, kind, supplier_id, company_id, project, currency, state, created_at, updated_at
		FROM orders WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var o entity.Order
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.Correlative, &o.Kind, &o.SupplierID, &o.CompanyID,
		&o.Project, &o.Currency, &o.State, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	lineQuery := `
		SELECT order_id, product_code, ordered_quantity, unit_price
		FROM order_lines WHERE order_id = $1 ORDER BY product_code`
	rows, err := r.q.Query(ctx, lineQuery, id)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(&l.OrderID, &l.ProductCode, &l.OrderedQuantity, &l.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		o.Lines = append(o.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}

// UpdateState actualiza el estado de la orden.
func (r *OrderRepo) UpdateState(ctx context.Context, id string, state entity.OrderState) error {
	query := `UPDATE orders SET state = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, id, state, time.Now()); err != nil {
		return fmt.Errorf("update order state: %w", err)
	}
	return nil
}
