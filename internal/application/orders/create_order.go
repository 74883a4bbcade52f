package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/procurement"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// CreateOrderUseCase crea órdenes de compra/servicio en estado PENDING,
// aplicando la política de monto mínimo y reservando el correlativo de la
// serie (OC-NNN / OS-NNN) dentro de la misma transacción que persiste la orden.
// La aprobación (PENDING→APPROVED/REJECTED) es del flujo de aprobación externo.
type CreateOrderUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	projectRepo  repository.ProjectRepository
	supplierRepo repository.SupplierRepository
	companyRepo  repository.CompanyRepository
	policy       procurement.Policy
}

// NewCreateOrderUseCase construye el caso de uso.
func NewCreateOrderUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	projectRepo repository.ProjectRepository,
	supplierRepo repository.SupplierRepository,
	companyRepo repository.CompanyRepository,
	policy procurement.Policy,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		projectRepo:  projectRepo,
		supplierRepo: supplierRepo,
		companyRepo:  companyRepo,
		policy:       policy,
	}
}

// CreateOrderInput entrada para crear una orden formal.
type CreateOrderInput struct {
	Kind       string // OC u OS
	SupplierID string
	CompanyID  string
	Project    string
	Currency   string
	Lines      []CreateOrderLineInput
}

// CreateOrderLineInput una línea producto/cantidad/precio de la orden.
type CreateOrderLineInput struct {
	ProductCode string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// CreateOrder valida catálogo y política, reserva el correlativo y persiste la
// orden. Falla BelowMinimumOrderAmount si el total no alcanza el umbral: esas
// compras corresponden a la vía directa (ver procurement.Policy.Route).
func (uc *CreateOrderUseCase) CreateOrder(ctx context.Context, input CreateOrderInput) (*entity.Order, error) {
	if input.Kind != entity.OrderKindCompra && input.Kind != entity.OrderKindServicio {
		return nil, domain.ErrInvalidInput
	}
	if len(input.Lines) == 0 || input.SupplierID == "" || input.CompanyID == "" || input.Project == "" {
		return nil, domain.ErrInvalidInput
	}
	for _, l := range input.Lines {
		if !l.Quantity.GreaterThan(decimal.Zero) || l.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	supplier, err := uc.supplierRepo.GetByID(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	company, err := uc.companyRepo.GetByID(ctx, input.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	project, err := uc.projectRepo.GetByID(ctx, input.Project)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, &domain.UnknownProjectError{Project: input.Project}
	}
	for _, l := range input.Lines {
		product, err := uc.productRepo.GetByCode(ctx, l.ProductCode)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, &domain.UnknownProductError{ProductCode: l.ProductCode}
		}
	}

	now := time.Now()
	order := &entity.Order{
		ID:         uuid.New().String(),
		Kind:       input.Kind,
		SupplierID: input.SupplierID,
		CompanyID:  input.CompanyID,
		Project:    input.Project,
		Currency:   input.Currency,
		State:      entity.OrderStatePending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, l := range input.Lines {
		order.Lines = append(order.Lines, entity.OrderLine{
			OrderID:         order.ID,
			ProductCode:     l.ProductCode,
			OrderedQuantity: l.Quantity,
			UnitPrice:       l.UnitPrice,
		})
	}

	if err := uc.policy.ValidateFormalOrder(order.Total()); err != nil {
		return nil, err
	}

	err = uc.txRunner.Run(ctx, func(
		_ repository.LedgerRepository,
		orderRepo repository.OrderRepository,
		_ repository.FulfillmentRepository,
		seriesRepo repository.DocumentSeriesRepository,
	) error {
		correlative, err := seriesRepo.NextRef(ctx, input.Kind)
		if err != nil {
			return err
		}
		order.Correlative = correlative
		return orderRepo.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}
