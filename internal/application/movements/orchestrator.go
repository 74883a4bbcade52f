package movements

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/almacen-pro/internal/application/orders"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/kardex"
	"github.com/tu-usuario/almacen-pro/internal/domain/procurement"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// Series documentales de los movimientos generados por el orquestador.
const (
	SeriesNotaIngreso  = "NI" // recepciones e ingresos directos
	SeriesNotaSalida   = "NS" // salidas de material
	SeriesNotaTraslado = "NT" // traslados entre proyectos
)

// MovementUseCase es la frontera transaccional del motor: recepción contra
// orden, salida de material, traslado entre proyectos e ingreso directo.
// Cada operación valida, asienta en el kardex y actualiza estado de orden de
// forma atómica; un fallo en cualquier línea aborta el lote completo.
type MovementUseCase struct {
	txRunner    TxRunner
	ledger      repository.LedgerRepository // lecturas fuera de transacción
	productRepo repository.ProductRepository
	projectRepo repository.ProjectRepository
	tracker     *orders.FulfillmentTracker
	policy      procurement.Policy
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(
	txRunner TxRunner,
	ledger repository.LedgerRepository,
	productRepo repository.ProductRepository,
	projectRepo repository.ProjectRepository,
	tracker *orders.FulfillmentTracker,
	policy procurement.Policy,
) *MovementUseCase {
	return &MovementUseCase{
		txRunner:    txRunner,
		ledger:      ledger,
		productRepo: productRepo,
		projectRepo: projectRepo,
		tracker:     tracker,
		policy:      policy,
	}
}

// MovementLineInput producto y cantidad de una línea de salida o traslado.
type MovementLineInput struct {
	ProductCode string
	Quantity    decimal.Decimal
}

// ReceiveInput entrada para registrar una recepción contra una orden aprobada.
// DocumentRef vacío genera el correlativo NI-NNN dentro de la transacción.
type ReceiveInput struct {
	OrderID     string
	DocumentRef string
	Date        time.Time
	Notes       string
	Lines       []orders.ReceiptLineInput
}

// ReceiveResult resultado de una recepción confirmada.
type ReceiveResult struct {
	DocumentRef string
	NewState    entity.OrderState
	Movements   []*entity.StockMovement
}

// ReceiveAgainstOrder registra una atención contra la orden: por cada línea
// asienta un INGRESO en el proyecto de la orden al precio contractual de la
// línea, crea el registro de atención y deriva el nuevo estado. Todo en una
// transacción con la fila de la orden bloqueada.
func (uc *MovementUseCase) ReceiveAgainstOrder(ctx context.Context, input ReceiveInput) (*ReceiveResult, error) {
	if input.OrderID == "" || len(input.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	date := normalizeDate(input.Date)

	var result ReceiveResult
	err := uc.txRunner.Run(ctx, func(
		ledger repository.LedgerRepository,
		orderRepo repository.OrderRepository,
		fulfillmentRepo repository.FulfillmentRepository,
		seriesRepo repository.DocumentSeriesRepository,
	) error {
		order, err := orderRepo.GetForUpdate(ctx, input.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}

		docRef := input.DocumentRef
		if docRef == "" {
			if docRef, err = seriesRepo.NextRef(ctx, SeriesNotaIngreso); err != nil {
				return err
			}
		}

		newState, err := uc.tracker.ApplyReceiptInTx(ctx, orderRepo, fulfillmentRepo, order, input.Lines, docRef, date)
		if err != nil {
			return err
		}

		now := time.Now()
		batch := make([]*entity.StockMovement, 0, len(input.Lines))
		for _, in := range input.Lines {
			line := order.LineFor(in.ProductCode) // validado por el tracker
			price := line.UnitPrice
			batch = append(batch, &entity.StockMovement{
				ID:          uuid.New().String(),
				ProductCode: in.ProductCode,
				Project:     order.Project,
				Kind:        entity.MovementKindIngreso,
				Quantity:    in.ReceivedQuantity,
				UnitPrice:   &price,
				DocumentRef: docRef,
				Notes:       input.Notes,
				Date:        date,
				CreatedAt:   now,
			})
		}
		if err := ledger.AppendAll(ctx, batch); err != nil {
			return err
		}
		result = ReceiveResult{DocumentRef: docRef, NewState: newState, Movements: batch}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// IssueInput entrada para una salida de material de un proyecto.
type IssueInput struct {
	Project     string
	DocumentRef string
	Date        time.Time
	Notes       string
	Lines       []MovementLineInput
}

// MovementResult resultado de una salida, traslado o ingreso directo confirmado.
type MovementResult struct {
	DocumentRef string
	Movements   []*entity.StockMovement
}

// IssueMaterial asienta salidas de material verificando disponibilidad línea
// por línea bajo el bloqueo por (producto, proyecto). Stock insuficiente en
// cualquier línea aborta la salida completa: no hay salidas parciales.
func (uc *MovementUseCase) IssueMaterial(ctx context.Context, input IssueInput) (*MovementResult, error) {
	if err := uc.validateLines(ctx, input.Project, input.Lines); err != nil {
		return nil, err
	}
	date := normalizeDate(input.Date)

	var result MovementResult
	err := uc.txRunner.Run(ctx, func(
		ledger repository.LedgerRepository,
		_ repository.OrderRepository,
		_ repository.FulfillmentRepository,
		seriesRepo repository.DocumentSeriesRepository,
	) error {
		docRef := input.DocumentRef
		if docRef == "" {
			var err error
			if docRef, err = seriesRepo.NextRef(ctx, SeriesNotaSalida); err != nil {
				return err
			}
		}

		now := time.Now()
		batch := make([]*entity.StockMovement, 0, len(input.Lines))
		for _, in := range input.Lines {
			available, err := uc.lockedStock(ctx, ledger, in.ProductCode, input.Project)
			if err != nil {
				return err
			}
			if in.Quantity.GreaterThan(available) {
				return &domain.InsufficientStockError{
					ProductCode: in.ProductCode,
					Project:     input.Project,
					Requested:   in.Quantity,
					Available:   available,
				}
			}
			batch = append(batch, &entity.StockMovement{
				ID:          uuid.New().String(),
				ProductCode: in.ProductCode,
				Project:     input.Project,
				Kind:        entity.MovementKindSalida,
				Quantity:    in.Quantity,
				DocumentRef: docRef,
				Notes:       input.Notes,
				Date:        date,
				CreatedAt:   now,
			})
		}
		if err := ledger.AppendAll(ctx, batch); err != nil {
			return err
		}
		result = MovementResult{DocumentRef: docRef, Movements: batch}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// TransferInput entrada para un traslado de material entre proyectos.
type TransferInput struct {
	OriginProject      string
	DestinationProject string
	DocumentRef        string
	Date               time.Time
	Notes              string
	Lines              []MovementLineInput
}

// TransferMaterial mueve material entre proyectos: por cada línea asienta una
// SALIDA en origen y un INGRESO en destino compartiendo referencia documental,
// ambos al costo promedio ponderado del origen (nil si aún no hay base de
// costo). Los pares de todas las líneas confirman atómicamente.
func (uc *MovementUseCase) TransferMaterial(ctx context.Context, input TransferInput) (*MovementResult, error) {
	if input.OriginProject == input.DestinationProject {
		return nil, &domain.InvalidTransferError{Project: input.OriginProject}
	}
	if err := uc.validateLines(ctx, input.OriginProject, input.Lines); err != nil {
		return nil, err
	}
	if err := uc.validateProject(ctx, input.DestinationProject); err != nil {
		return nil, err
	}
	date := normalizeDate(input.Date)

	var result MovementResult
	err := uc.txRunner.Run(ctx, func(
		ledger repository.LedgerRepository,
		_ repository.OrderRepository,
		_ repository.FulfillmentRepository,
		seriesRepo repository.DocumentSeriesRepository,
	) error {
		docRef := input.DocumentRef
		if docRef == "" {
			var err error
			if docRef, err = seriesRepo.NextRef(ctx, SeriesNotaTraslado); err != nil {
				return err
			}
		}

		now := time.Now()
		batch := make([]*entity.StockMovement, 0, 2*len(input.Lines))
		for _, in := range input.Lines {
			available, err := uc.lockedStock(ctx, ledger, in.ProductCode, input.OriginProject)
			if err != nil {
				return err
			}
			if in.Quantity.GreaterThan(available) {
				return &domain.InsufficientStockError{
					ProductCode: in.ProductCode,
					Project:     input.OriginProject,
					Requested:   in.Quantity,
					Available:   available,
				}
			}

			originMovs, err := ledger.ListByProductAndProject(ctx, in.ProductCode, input.OriginProject)
			if err != nil {
				return err
			}
			var price *decimal.Decimal
			if avg := kardex.WeightedAverageCost(originMovs); !avg.IsZero() {
				price = &avg
			}

			batch = append(batch,
				&entity.StockMovement{
					ID:          uuid.New().String(),
					ProductCode: in.ProductCode,
					Project:     input.OriginProject,
					Kind:        entity.MovementKindSalida,
					Quantity:    in.Quantity,
					UnitPrice:   price,
					DocumentRef: docRef,
					Notes:       input.Notes,
					Date:        date,
					CreatedAt:   now,
				},
				&entity.StockMovement{
					ID:          uuid.New().String(),
					ProductCode: in.ProductCode,
					Project:     input.DestinationProject,
					Kind:        entity.MovementKindIngreso,
					Quantity:    in.Quantity,
					UnitPrice:   price,
					DocumentRef: docRef,
					Notes:       input.Notes,
					Date:        date,
					CreatedAt:   now,
				},
			)
		}
		if err := ledger.AppendAll(ctx, batch); err != nil {
			return err
		}
		result = MovementResult{DocumentRef: docRef, Movements: batch}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// DirectReceiptLineInput línea de un ingreso directo (precio obligatorio).
type DirectReceiptLineInput struct {
	ProductCode string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// DirectReceiptInput entrada de la vía directa: compra de bajo valor que
// ingresa al kardex sin orden formal ni registro de atención.
type DirectReceiptInput struct {
	CompanyID          string
	SupplierID         string
	Project            string
	DocumentRef        string
	Date               time.Time
	Notes              string
	HasApprovedRequest bool
	Lines              []DirectReceiptLineInput
}

// DirectReceipt asienta INGRESOS directos al kardex si la política de umbral
// lo permite (total bajo el mínimo y requerimiento previo aprobado).
func (uc *MovementUseCase) DirectReceipt(ctx context.Context, input DirectReceiptInput) (*MovementResult, error) {
	if len(input.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	total := decimal.Zero
	seen := make(map[string]bool, len(input.Lines))
	for _, in := range input.Lines {
		if !in.Quantity.GreaterThan(decimal.Zero) || in.UnitPrice.IsNegative() || seen[in.ProductCode] {
			return nil, domain.ErrInvalidInput
		}
		seen[in.ProductCode] = true
		total = total.Add(in.Quantity.Mul(in.UnitPrice))
	}
	if err := uc.policy.ValidateDirectReceipt(total, input.HasApprovedRequest); err != nil {
		return nil, err
	}
	if err := uc.validateProject(ctx, input.Project); err != nil {
		return nil, err
	}
	for _, in := range input.Lines {
		if err := uc.validateProduct(ctx, in.ProductCode); err != nil {
			return nil, err
		}
	}
	date := normalizeDate(input.Date)

	var result MovementResult
	err := uc.txRunner.Run(ctx, func(
		ledger repository.LedgerRepository,
		_ repository.OrderRepository,
		_ repository.FulfillmentRepository,
		seriesRepo repository.DocumentSeriesRepository,
	) error {
		docRef := input.DocumentRef
		if docRef == "" {
			var err error
			if docRef, err = seriesRepo.NextRef(ctx, SeriesNotaIngreso); err != nil {
				return err
			}
		}

		now := time.Now()
		batch := make([]*entity.StockMovement, 0, len(input.Lines))
		for _, in := range input.Lines {
			price := in.UnitPrice
			batch = append(batch, &entity.StockMovement{
				ID:          uuid.New().String(),
				ProductCode: in.ProductCode,
				Project:     input.Project,
				Kind:        entity.MovementKindIngreso,
				Quantity:    in.Quantity,
				UnitPrice:   &price,
				DocumentRef: docRef,
				Notes:       input.Notes,
				Date:        date,
				CreatedAt:   now,
			})
		}
		if err := ledger.AppendAll(ctx, batch); err != nil {
			return err
		}
		result = MovementResult{DocumentRef: docRef, Movements: batch}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// lockedStock toma el bloqueo por (producto, proyecto) y recién entonces lee
// el stock, de modo que la verificación y el asiento posterior queden aislados
// de escritores concurrentes sobre la misma clave.
func (uc *MovementUseCase) lockedStock(ctx context.Context, ledger repository.LedgerRepository, productCode, project string) (decimal.Decimal, error) {
	if err := ledger.LockKey(ctx, productCode, project); err != nil {
		return decimal.Zero, err
	}
	return ledger.StockOf(ctx, productCode, project)
}

// validateLines exige cantidades positivas, productos del catálogo y a lo
// sumo una línea por producto: un producto repetido colisionaría recién en la
// unicidad documental del kardex, con un error engañoso para el caller.
func (uc *MovementUseCase) validateLines(ctx context.Context, project string, lines []MovementLineInput) error {
	if len(lines) == 0 {
		return domain.ErrInvalidInput
	}
	seen := make(map[string]bool, len(lines))
	for _, in := range lines {
		if !in.Quantity.GreaterThan(decimal.Zero) || seen[in.ProductCode] {
			return domain.ErrInvalidInput
		}
		seen[in.ProductCode] = true
		if err := uc.validateProduct(ctx, in.ProductCode); err != nil {
			return err
		}
	}
	return uc.validateProject(ctx, project)
}

func (uc *MovementUseCase) validateProduct(ctx context.Context, code string) error {
	product, err := uc.productRepo.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	if product == nil {
		return &domain.UnknownProductError{ProductCode: code}
	}
	return nil
}

func (uc *MovementUseCase) validateProject(ctx context.Context, id string) error {
	project, err := uc.projectRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if project == nil {
		return &domain.UnknownProjectError{Project: id}
	}
	return nil
}

// normalizeDate usa la fecha del documento si viene informada, o ahora.
func normalizeDate(d time.Time) time.Time {
	if d.IsZero() {
		return time.Now()
	}
	return d
}
