package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
)

// LedgerRepository define el puerto de persistencia del kardex (append-only).
// StockOf es la única fuente de verdad de disponibilidad: se calcula sumando
// movimientos confirmados, nunca desde una columna desnormalizada.
type LedgerRepository interface {
	// AppendAll asienta un lote de movimientos. Debe invocarse dentro de una
	// transacción: o se escriben todos o ninguno (pares de traslado, lotes
	// de recepción/salida por línea).
	AppendAll(ctx context.Context, movements []*entity.StockMovement) error

	// StockOf devuelve Σ ingresos − Σ salidas del producto en el proyecto.
	StockOf(ctx context.Context, productCode, project string) (decimal.Decimal, error)

	// LockKey toma el bloqueo por (producto, proyecto) durante la transacción
	// en curso. Obligatorio antes de un StockOf que preceda a un asiento, para
	// cerrar la carrera check-then-act entre emisores concurrentes.
	LockKey(ctx context.Context, productCode, project string) error

	// ListByProduct devuelve el kardex completo de un producto ordenado por
	// fecha y orden de inserción (secuencia reiniciable, solo lectura).
	ListByProduct(ctx context.Context, productCode string) ([]*entity.StockMovement, error)

	// ListByProductAndProject devuelve los movimientos de un producto en un
	// proyecto, en el mismo orden; insumo del costo promedio ponderado.
	ListByProductAndProject(ctx context.Context, productCode, project string) ([]*entity.StockMovement, error)
}
