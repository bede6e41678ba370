package purchasing_test

import (
	"context"
	"math"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Tienda-api/internal/application/inventory"
	"github.com/jhoicas/Tienda-api/internal/application/purchasing"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	ledger "github.com/jhoicas/Tienda-api/internal/domain/inventory"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/memory"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/seed"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc        *purchasing.PurchaseOrderUseCase
	products  *memory.ProductRepository
	suppliers *memory.SupplierRepository
	reconcile *inventory.ReconcileUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.NewStore(memory.Options{InvoiceBase: 1000, POBase: 2000})
	products := memory.NewProductRepository(s)
	suppliers := memory.NewSupplierRepository(s)
	require.NoError(t, seed.Load(context.Background(), seed.Targets{
		Users:      memory.NewUserRepository(s),
		Categories: memory.NewCategoryRepository(s),
		Suppliers:  suppliers,
		Products:   products,
	}, "", zerolog.Nop()))
	runner := memory.NewTxRunner(s)
	return &fixture{
		uc:        purchasing.NewPurchaseOrderUseCase(runner, memory.NewPurchaseOrderRepository(s), suppliers, zerolog.Nop()),
		products:  products,
		suppliers: suppliers,
		reconcile: inventory.NewReconcileUseCase(runner, products),
	}
}

func (f *fixture) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := f.products.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p.Stock
}

func (f *fixture) assertConsistent(t *testing.T) {
	t.Helper()
	diffs, err := f.reconcile.Reconcile(context.Background())
	require.NoError(t, err)
	assert.Empty(t, diffs)
}

func (f *fixture) keyboardPO(t *testing.T) *entity.PurchaseOrder {
	t.Helper()
	po, err := f.uc.CreatePurchaseOrder(context.Background(), purchasing.CreatePOInput{
		SupplierID:  "s1",
		Lines:       []purchasing.POLine{{ProductID: "p2", Quantity: 20, UnitCost: decimal.RequireFromString("900.00")}},
		CreatedByID: "u3",
	})
	require.NoError(t, err)
	return po
}

// ──────────────────────────────────────────────────────────────────────────────
// Crear
// ──────────────────────────────────────────────────────────────────────────────

func TestCreatePurchaseOrder_TecladosPendiente(t *testing.T) {
	f := newFixture(t)
	po := f.keyboardPO(t)

	assert.Equal(t, "PO-2001", po.PONumber)
	assert.Equal(t, entity.POStatusPending, po.Status)
	assert.Equal(t, "Palawan Tech Solutions", po.SupplierName)
	assert.True(t, po.TotalAmount.Equal(decimal.RequireFromString("18000.00")))
	require.Len(t, po.Items, 1)
	assert.Equal(t, "Mechanical Keyboard", po.Items[0].ProductName)
	assert.Nil(t, po.ReceivedDate)
	assert.Equal(t, 5, f.stock(t, "p2"), "crear no toca stock")
	f.assertConsistent(t)
}

func TestCreatePurchaseOrder_LineasRepetidas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cost := decimal.RequireFromString("10.00")

	po, err := f.uc.CreatePurchaseOrder(ctx, purchasing.CreatePOInput{
		SupplierID: "s2",
		Lines: []purchasing.POLine{
			{ProductID: "p3", Quantity: 5, UnitCost: cost},
			{ProductID: "p3", Quantity: 7, UnitCost: cost},
		},
		CreatedByID: "u3",
	})
	require.NoError(t, err)
	require.Len(t, po.Items, 1)
	assert.Equal(t, 12, po.Items[0].Quantity)
	assert.True(t, po.TotalAmount.Equal(decimal.RequireFromString("120.00")))

	_, err = f.uc.CreatePurchaseOrder(ctx, purchasing.CreatePOInput{
		SupplierID: "s2",
		Lines: []purchasing.POLine{
			{ProductID: "p3", Quantity: 5, UnitCost: cost},
			{ProductID: "p3", Quantity: 7, UnitCost: decimal.RequireFromString("11.00")},
		},
		CreatedByID: "u3",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreatePurchaseOrder_Errores(t *testing.T) {
	f := newFixture(t)
	cost := decimal.RequireFromString("1.00")
	cases := []struct {
		name string
		in   purchasing.CreatePOInput
		want error
	}{
		{"proveedor inexistente", purchasing.CreatePOInput{SupplierID: "sx", Lines: []purchasing.POLine{{ProductID: "p1", Quantity: 1, UnitCost: cost}}, CreatedByID: "u3"}, domain.ErrNotFound},
		{"sin líneas", purchasing.CreatePOInput{SupplierID: "s1", CreatedByID: "u3"}, domain.ErrInvalidInput},
		{"cantidad cero", purchasing.CreatePOInput{SupplierID: "s1", Lines: []purchasing.POLine{{ProductID: "p1", UnitCost: cost}}, CreatedByID: "u3"}, domain.ErrInvalidInput},
		{"costo negativo", purchasing.CreatePOInput{SupplierID: "s1", Lines: []purchasing.POLine{{ProductID: "p1", Quantity: 1, UnitCost: decimal.RequireFromString("-1")}}, CreatedByID: "u3"}, domain.ErrInvalidInput},
		{"costo con 3 decimales", purchasing.CreatePOInput{SupplierID: "s1", Lines: []purchasing.POLine{{ProductID: "p1", Quantity: 1, UnitCost: decimal.RequireFromString("1.005")}}, CreatedByID: "u3"}, domain.ErrInvalidInput},
		{"producto inexistente", purchasing.CreatePOInput{SupplierID: "s1", Lines: []purchasing.POLine{{ProductID: "px", Quantity: 1, UnitCost: cost}}, CreatedByID: "u3"}, domain.ErrNotFound},
		{"líneas repetidas desbordan", purchasing.CreatePOInput{SupplierID: "s1", Lines: []purchasing.POLine{{ProductID: "p1", Quantity: math.MaxInt, UnitCost: cost}, {ProductID: "p1", Quantity: math.MaxInt, UnitCost: cost}}, CreatedByID: "u3"}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.CreatePurchaseOrder(context.Background(), tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Recibir / cancelar
// ──────────────────────────────────────────────────────────────────────────────

func TestReceivePurchaseOrder_SumaStockUnaVez(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	po := f.keyboardPO(t)

	got, err := f.uc.ReceivePurchaseOrder(ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusReceived, got.Status)
	require.NotNil(t, got.ReceivedDate)
	assert.Equal(t, 25, f.stock(t, "p2"))

	again, err := f.uc.ReceivePurchaseOrder(ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusReceived, again.Status)
	assert.Equal(t, got.ReceivedDate.UnixNano(), again.ReceivedDate.UnixNano())
	assert.Equal(t, 25, f.stock(t, "p2"), "recibir de nuevo no suma")

	_, err = f.uc.CancelPurchaseOrder(ctx, po.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	f.assertConsistent(t)
}

func TestReceivePurchaseOrder_StockSobreElTopeNoRecibe(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	po, err := f.uc.CreatePurchaseOrder(ctx, purchasing.CreatePOInput{
		SupplierID:  "s1",
		Lines:       []purchasing.POLine{{ProductID: "p2", Quantity: ledger.MaxQuantity, UnitCost: decimal.RequireFromString("1.00")}},
		CreatedByID: "u3",
	})
	require.NoError(t, err)

	_, err = f.uc.ReceivePurchaseOrder(ctx, po.ID)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := f.uc.GetPurchaseOrder(ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusPending, got.Status)
	assert.Nil(t, got.ReceivedDate)
	assert.Equal(t, 5, f.stock(t, "p2"))
	f.assertConsistent(t)
}

func TestReceivePurchaseOrder_Concurrente(t *testing.T) {
	f := newFixture(t)
	po := f.keyboardPO(t)

	var received atomic.Int32
	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			got, err := f.uc.ReceivePurchaseOrder(context.Background(), po.ID)
			if err != nil {
				return err
			}
			if got.Status == entity.POStatusReceived {
				received.Add(1)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, int32(8), received.Load())
	assert.Equal(t, 25, f.stock(t, "p2"))
	f.assertConsistent(t)
}

func TestCancelPurchaseOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	po := f.keyboardPO(t)

	cancelled, err := f.uc.CancelPurchaseOrder(ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledDate)

	again, err := f.uc.CancelPurchaseOrder(ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusCancelled, again.Status)

	_, err = f.uc.ReceivePurchaseOrder(ctx, po.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	assert.Equal(t, 5, f.stock(t, "p2"))

	_, err = f.uc.ReceivePurchaseOrder(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.uc.CancelPurchaseOrder(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	f.assertConsistent(t)
}

func TestListPurchaseOrders_FiltroYOrden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.keyboardPO(t)
	second := f.keyboardPO(t)
	_, err := f.uc.ReceivePurchaseOrder(ctx, first.ID)
	require.NoError(t, err)

	all, err := f.uc.ListPurchaseOrders(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)

	pending, err := f.uc.ListPurchaseOrders(ctx, entity.POStatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "PO-2002", pending[0].PONumber)

	_, err = f.uc.ListPurchaseOrders(ctx, "Lost")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := f.uc.GetPurchaseOrder(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusReceived, got.Status)
}

func TestSupplierRenombradoNoReescribeHistorial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	po := f.keyboardPO(t)

	s1, err := f.suppliers.GetByID(ctx, "s1")
	require.NoError(t, err)
	s1.CompanyName = "Nuevo Nombre"
	require.NoError(t, f.suppliers.Update(ctx, s1))

	got, err := f.uc.GetPurchaseOrder(ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, "Palawan Tech Solutions", got.SupplierName)
}
