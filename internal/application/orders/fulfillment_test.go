package orders_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-pro/internal/application/orders"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/procurement"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

type memOrderRepo struct {
	orders map[string]*entity.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[string]*entity.Order)}
}

func (r *memOrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.orders[o.ID] = o
	return nil
}

func (r *memOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	return r.orders[id], nil
}

func (r *memOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *memOrderRepo) UpdateState(_ context.Context, id string, state entity.OrderState) error {
	r.orders[id].State = state
	return nil
}

type memFulfillmentRepo struct {
	records []*entity.FulfillmentRecord
}

func (r *memFulfillmentRepo) Create(_ context.Context, record *entity.FulfillmentRecord) error {
	for _, existing := range r.records {
		if existing.OrderID == record.OrderID && existing.DocumentRef == record.DocumentRef {
			return &domain.DuplicateDocumentReferenceError{DocumentRef: record.DocumentRef}
		}
	}
	r.records = append(r.records, record)
	return nil
}

func (r *memFulfillmentRepo) ReceivedByLine(_ context.Context, orderID string) (map[string]decimal.Decimal, error) {
	received := make(map[string]decimal.Decimal)
	for _, rec := range r.records {
		if rec.OrderID != orderID {
			continue
		}
		for _, l := range rec.Lines {
			received[l.ProductCode] = received[l.ProductCode].Add(l.ReceivedQuantity)
		}
	}
	return received, nil
}

type memSeriesRepo struct {
	counters map[string]int
}

func (r *memSeriesRepo) NextRef(_ context.Context, prefix string) (string, error) {
	if r.counters == nil {
		r.counters = make(map[string]int)
	}
	r.counters[prefix]++
	return fmt.Sprintf("%s-%03d", prefix, r.counters[prefix]), nil
}

type memCatalog struct {
	products  map[string]bool
	projects  map[string]bool
	suppliers map[string]bool
	companies map[string]bool
}

func (c *memCatalog) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	if !c.products[code] {
		return nil, nil
	}
	return &entity.Product{Code: code, UnitMeasure: "UND"}, nil
}

type memProjectRepo struct{ c *memCatalog }

func (r *memProjectRepo) GetByID(_ context.Context, id string) (*entity.Project, error) {
	if !r.c.projects[id] {
		return nil, nil
	}
	return &entity.Project{ID: id}, nil
}

type memSupplierRepo struct{ c *memCatalog }

func (r *memSupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	if !r.c.suppliers[id] {
		return nil, nil
	}
	return &entity.Supplier{ID: id}, nil
}

type memCompanyRepo struct{ c *memCatalog }

func (r *memCompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	if !r.c.companies[id] {
		return nil, nil
	}
	return &entity.Company{ID: id}, nil
}

type memTxRunner struct {
	orders       *memOrderRepo
	fulfillments *memFulfillmentRepo
	series       *memSeriesRepo
}

func (r *memTxRunner) Run(ctx context.Context, fn func(
	ledger repository.LedgerRepository,
	orderRepo repository.OrderRepository,
	fulfillmentRepo repository.FulfillmentRepository,
	seriesRepo repository.DocumentSeriesRepository,
) error) error {
	return fn(nil, r.orders, r.fulfillments, r.series)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func approvedOrder(id string, qty string) *entity.Order {
	return &entity.Order{
		ID:      id,
		Kind:    entity.OrderKindCompra,
		Project: "OBRA-X",
		State:   entity.OrderStateApproved,
		Lines: []entity.OrderLine{
			{OrderID: id, ProductCode: "P1", OrderedQuantity: decimal.RequireFromString(qty), UnitPrice: decimal.NewFromInt(10)},
		},
	}
}

func receiptLines(qty string) []orders.ReceiptLineInput {
	return []orders.ReceiptLineInput{
		{ProductCode: "P1", ReceivedQuantity: decimal.RequireFromString(qty)},
	}
}

func applyReceipt(t *testing.T, tracker *orders.FulfillmentTracker, orderRepo *memOrderRepo,
	fulfillments *memFulfillmentRepo, order *entity.Order, lines []orders.ReceiptLineInput, docRef string,
) (entity.OrderState, error) {
	t.Helper()
	return tracker.ApplyReceiptInTx(context.Background(), orderRepo, fulfillments, order, lines, docRef, time.Now())
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests del seguimiento de atenciones
// ──────────────────────────────────────────────────────────────────────────────

// Escenario: orden de 100; recepción de 60 → PARTIAL con pendiente 40;
// recepción de 40 → COMPLETED con pendiente 0.
func TestApplyReceipt_RecepcionesParcialesHastaCompletar(t *testing.T) {
	orderRepo := newMemOrderRepo()
	fulfillments := &memFulfillmentRepo{}
	tracker := orders.NewFulfillmentTracker(orderRepo, fulfillments)

	order := approvedOrder("oc-1", "100")
	require.NoError(t, orderRepo.Create(context.Background(), order))

	state, err := applyReceipt(t, tracker, orderRepo, fulfillments, order, receiptLines("60"), "NI-001")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatePartial, state)

	pending, err := tracker.PendingFor(context.Background(), "oc-1")
	require.NoError(t, err)
	assert.True(t, pending["P1"].Equal(decimal.NewFromInt(40)), "pendiente esperado 40, obtenido %s", pending["P1"])

	state, err = applyReceipt(t, tracker, orderRepo, fulfillments, order, receiptLines("40"), "NI-002")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStateCompleted, state)

	pending, err = tracker.PendingFor(context.Background(), "oc-1")
	require.NoError(t, err)
	assert.True(t, pending["P1"].IsZero(), "pendiente esperado 0, obtenido %s", pending["P1"])
}

// Una sola recepción que satisface todas las líneas pasa directo
// APPROVED → COMPLETED.
func TestApplyReceipt_RecepcionTotalDirecta(t *testing.T) {
	orderRepo := newMemOrderRepo()
	fulfillments := &memFulfillmentRepo{}
	tracker := orders.NewFulfillmentTracker(orderRepo, fulfillments)

	order := approvedOrder("oc-2", "100")
	require.NoError(t, orderRepo.Create(context.Background(), order))

	state, err := applyReceipt(t, tracker, orderRepo, fulfillments, order, receiptLines("100"), "NI-001")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStateCompleted, state)
}

// Recibir más que el pendiente falla OverReceipt sin escribir nada.
func TestApplyReceipt_SobreRecepcion(t *testing.T) {
	orderRepo := newMemOrderRepo()
	fulfillments := &memFulfillmentRepo{}
	tracker := orders.NewFulfillmentTracker(orderRepo, fulfillments)

	order := approvedOrder("oc-3", "100")
	require.NoError(t, orderRepo.Create(context.Background(), order))

	_, err := applyReceipt(t, tracker, orderRepo, fulfillments, order, receiptLines("60"), "NI-001")
	require.NoError(t, err)

	_, err = applyReceipt(t, tracker, orderRepo, fulfillments, order, receiptLines("50"), "NI-002")
	var overReceipt *domain.OverReceiptError
	require.ErrorAs(t, err, &overReceipt)
	assert.True(t, overReceipt.Pending.Equal(decimal.NewFromInt(40)))
	assert.True(t, overReceipt.Received.Equal(decimal.NewFromInt(50)))
	assert.Len(t, fulfillments.records, 1, "la recepción rechazada no debe registrar atención")
	assert.Equal(t, entity.OrderStatePartial, orderRepo.orders["oc-3"].State)
}

// Un producto que no es línea de la orden falla UnknownOrderLine.
func TestApplyReceipt_LineaDesconocida(t *testing.T) {
	orderRepo := newMemOrderRepo()
	fulfillments := &memFulfillmentRepo{}
	tracker := orders.NewFulfillmentTracker(orderRepo, fulfillments)

	order := approvedOrder("oc-4", "100")
	require.NoError(t, orderRepo.Create(context.Background(), order))

	_, err := applyReceipt(t, tracker, orderRepo, fulfillments, order,
		[]orders.ReceiptLineInput{{ProductCode: "P9", ReceivedQuantity: decimal.NewFromInt(1)}}, "NI-001")
	var unknownLine *domain.UnknownOrderLineError
	require.ErrorAs(t, err, &unknownLine)
	assert.Equal(t, "P9", unknownLine.ProductCode)
}

// Solo órdenes APPROVED o PARTIAL admiten recepciones; COMPLETED es terminal.
func TestApplyReceipt_EstadosInvalidos(t *testing.T) {
	orderRepo := newMemOrderRepo()
	fulfillments := &memFulfillmentRepo{}
	tracker := orders.NewFulfillmentTracker(orderRepo, fulfillments)

	for _, state := range []entity.OrderState{
		entity.OrderStatePending, entity.OrderStateRejected, entity.OrderStateCompleted,
	} {
		order := approvedOrder("oc-"+string(state), "100")
		order.State = state
		require.NoError(t, orderRepo.Create(context.Background(), order))

		_, err := applyReceipt(t, tracker, orderRepo, fulfillments, order, receiptLines("10"), "NI-001")
		var invalidState *domain.InvalidOrderStateError
		require.ErrorAs(t, err, &invalidState, "estado %s no debe admitir recepción", state)
		assert.Equal(t, state, invalidState.State)
	}
}

// Cantidad cero o negativa es entrada inválida.
func TestApplyReceipt_CantidadInvalida(t *testing.T) {
	orderRepo := newMemOrderRepo()
	fulfillments := &memFulfillmentRepo{}
	tracker := orders.NewFulfillmentTracker(orderRepo, fulfillments)

	order := approvedOrder("oc-5", "100")
	require.NoError(t, orderRepo.Create(context.Background(), order))

	_, err := applyReceipt(t, tracker, orderRepo, fulfillments, order, receiptLines("0"), "NI-001")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Dos líneas del mismo producto en una recepción burlarían el control de
// sobre-recepción (cada una se valida contra el mismo pendiente); se rechazan
// como entrada inválida sin escribir nada.
func TestApplyReceipt_ProductoRepetidoEnRecepcion(t *testing.T) {
	orderRepo := newMemOrderRepo()
	fulfillments := &memFulfillmentRepo{}
	tracker := orders.NewFulfillmentTracker(orderRepo, fulfillments)

	order := approvedOrder("oc-6", "100")
	require.NoError(t, orderRepo.Create(context.Background(), order))

	_, err := applyReceipt(t, tracker, orderRepo, fulfillments, order,
		[]orders.ReceiptLineInput{
			{ProductCode: "P1", ReceivedQuantity: decimal.NewFromInt(60)},
			{ProductCode: "P1", ReceivedQuantity: decimal.NewFromInt(60)},
		}, "NI-001")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, fulfillments.records)
	assert.Equal(t, entity.OrderStateApproved, orderRepo.orders["oc-6"].State)
}

func TestPendingFor_OrdenInexistente(t *testing.T) {
	tracker := orders.NewFulfillmentTracker(newMemOrderRepo(), &memFulfillmentRepo{})
	_, err := tracker.PendingFor(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de creación de órdenes
// ──────────────────────────────────────────────────────────────────────────────

func newCreateOrderUC(catalog *memCatalog, orderRepo *memOrderRepo) *orders.CreateOrderUseCase {
	runner := &memTxRunner{orders: orderRepo, fulfillments: &memFulfillmentRepo{}, series: &memSeriesRepo{}}
	return orders.NewCreateOrderUseCase(
		runner, catalog, &memProjectRepo{c: catalog}, &memSupplierRepo{c: catalog},
		&memCompanyRepo{c: catalog}, procurement.NewPolicy(decimal.NewFromInt(500)),
	)
}

func fullCatalog() *memCatalog {
	return &memCatalog{
		products:  map[string]bool{"P1": true},
		projects:  map[string]bool{"OBRA-X": true},
		suppliers: map[string]bool{"PRV-1": true},
		companies: map[string]bool{"EMP-1": true},
	}
}

func orderInput(qty, price int64) orders.CreateOrderInput {
	return orders.CreateOrderInput{
		Kind:       entity.OrderKindCompra,
		SupplierID: "PRV-1",
		CompanyID:  "EMP-1",
		Project:    "OBRA-X",
		Currency:   "PEN",
		Lines: []orders.CreateOrderLineInput{
			{ProductCode: "P1", Quantity: decimal.NewFromInt(qty), UnitPrice: decimal.NewFromInt(price)},
		},
	}
}

// Orden válida: queda PENDING con correlativo OC-001 reservado en la serie.
func TestCreateOrder_AsignaCorrelativoYEstado(t *testing.T) {
	orderRepo := newMemOrderRepo()
	uc := newCreateOrderUC(fullCatalog(), orderRepo)

	order, err := uc.CreateOrder(context.Background(), orderInput(100, 10))
	require.NoError(t, err)
	assert.Equal(t, "OC-001", order.Correlative)
	assert.Equal(t, entity.OrderStatePending, order.State)
	assert.True(t, order.Total().Equal(decimal.NewFromInt(1000)))
	assert.NotNil(t, orderRepo.orders[order.ID])
}

// Escenario: orden formal de 300 (< 500) rechazada por monto mínimo.
func TestCreateOrder_BajoMontoMinimo(t *testing.T) {
	uc := newCreateOrderUC(fullCatalog(), newMemOrderRepo())

	_, err := uc.CreateOrder(context.Background(), orderInput(30, 10))
	var belowMin *domain.BelowMinimumOrderAmountError
	require.ErrorAs(t, err, &belowMin)
	assert.True(t, belowMin.Total.Equal(decimal.NewFromInt(300)))
}

// Proveedor, proyecto y productos deben existir en el catálogo.
func TestCreateOrder_ValidaCatalogo(t *testing.T) {
	catalog := fullCatalog()
	uc := newCreateOrderUC(catalog, newMemOrderRepo())

	in := orderInput(100, 10)
	in.SupplierID = "PRV-9"
	_, err := uc.CreateOrder(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	in = orderInput(100, 10)
	in.CompanyID = "EMP-9"
	_, err = uc.CreateOrder(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	in = orderInput(100, 10)
	in.Project = "OBRA-Z"
	_, err = uc.CreateOrder(context.Background(), in)
	var unknownProject *domain.UnknownProjectError
	assert.ErrorAs(t, err, &unknownProject)

	in = orderInput(100, 10)
	in.Lines[0].ProductCode = "P9"
	_, err = uc.CreateOrder(context.Background(), in)
	var unknownProduct *domain.UnknownProductError
	assert.ErrorAs(t, err, &unknownProduct)
}
