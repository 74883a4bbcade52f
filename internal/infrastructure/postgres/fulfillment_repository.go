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

var _ repository.FulfillmentRepository = (*FulfillmentRepo)(nil)

// FulfillmentRepo adaptador de atenciones sobre PostgreSQL (usable con pool o tx).
type FulfillmentRepo struct {
	q Querier
}

// NewFulfillmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFulfillmentRepository(q Querier) *FulfillmentRepo {
	return &FulfillmentRepo{q: q}
}

// Create persiste un registro de atención con sus líneas. La referencia
// documental es única por orden: reintentos del caller no duplican el asiento.
func (r *FulfillmentRepo) Create(ctx context.Context, record *entity.FulfillmentRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	query := `
		INSERT INTO fulfillment_records (id, order_id, document_ref, date, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query,
		record.ID, record.OrderID, record.DocumentRef, record.Date, record.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.DuplicateDocumentReferenceError{DocumentRef: record.DocumentRef}
		}
		return fmt.Errorf("insert fulfillment record: %w", err)
	}
	lineQuery := `
		INSERT INTO fulfillment_lines (record_id, product_code, received_quantity)
		VALUES ($1, $2, $3)`
	for _, l := range record.Lines {
		if _, err := r.q.Exec(ctx, lineQuery, record.ID, l.ProductCode, l.ReceivedQuantity); err != nil {
			return fmt.Errorf("insert fulfillment line: %w", err)
		}
	}
	return nil
}

// ReceivedByLine acumula, por producto, lo recibido en todas las atenciones de la orden.
func (r *FulfillmentRepo) ReceivedByLine(ctx context.Context, orderID string) (map[string]decimal.Decimal, error) {
	query := `
		SELECT fl.product_code, COALESCE(SUM(fl.received_quantity), 0)
		FROM fulfillment_lines fl
		JOIN fulfillment_records fr ON fr.id = fl.record_id
		WHERE fr.order_id = $1
		GROUP BY fl.product_code`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("received by line: %w", err)
	}
	defer rows.Close()
	received := make(map[string]decimal.Decimal)
	for rows.Next() {
		var code string
		var qty decimal.Decimal
		if err := rows.Scan(&code, &qty); err != nil {
			return nil, fmt.Errorf("scan received line: %w", err)
		}
		received[code] = qty
	}
	return received, rows.Err()
}
