package sales_test

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Tienda-api/internal/application/inventory"
	"github.com/jhoicas/Tienda-api/internal/application/sales"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/memory"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/seed"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type ledger struct {
	store     *memory.Store
	sales     *sales.ProcessSaleUseCase
	products  *memory.ProductRepository
	reconcile *inventory.ReconcileUseCase
}

func newLedger(t *testing.T) *ledger {
	t.Helper()
	s := memory.NewStore(memory.Options{InvoiceBase: 1000, POBase: 2000})
	products := memory.NewProductRepository(s)
	require.NoError(t, seed.Load(context.Background(), seed.Targets{
		Users:      memory.NewUserRepository(s),
		Categories: memory.NewCategoryRepository(s),
		Suppliers:  memory.NewSupplierRepository(s),
		Products:   products,
	}, "", zerolog.Nop()))
	runner := memory.NewTxRunner(s)
	return &ledger{
		store:     s,
		sales:     sales.NewProcessSaleUseCase(runner, memory.NewSalesOrderRepository(s), decimal.RequireFromString("0.12"), zerolog.Nop()),
		products:  products,
		reconcile: inventory.NewReconcileUseCase(runner, products),
	}
}

func (l *ledger) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := l.products.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p.Stock
}

func (l *ledger) assertConsistent(t *testing.T) {
	t.Helper()
	diffs, err := l.reconcile.Reconcile(context.Background())
	require.NoError(t, err)
	assert.Empty(t, diffs, "el stock debe cuadrar con el historial")
}

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// ProcessSale
// ──────────────────────────────────────────────────────────────────────────────

func TestProcessSale_DosMouses(t *testing.T) {
	l := newLedger(t)
	order, err := l.sales.ProcessSale(context.Background(), sales.SaleInput{
		Lines:          []sales.SaleLine{{ProductID: "p1", Quantity: 2}},
		CashierID:      "u2",
		AmountTendered: money("600.00"),
	})
	require.NoError(t, err)

	assert.Equal(t, "INV-1001", order.InvoiceNumber)
	assert.True(t, order.Subtotal.Equal(money("500.00")))
	assert.True(t, order.Tax.Equal(money("60.00")))
	assert.True(t, order.Total.Equal(money("560.00")))
	assert.True(t, order.Change.Equal(money("40.00")))
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Wireless Mouse", order.Items[0].ProductName)
	assert.True(t, order.Items[0].LineTotal.Equal(money("500.00")))
	assert.Equal(t, 48, l.stock(t, "p1"))
	l.assertConsistent(t)
}

func TestProcessSale_PagoInsuficienteNoTocaNada(t *testing.T) {
	l := newLedger(t)
	_, err := l.sales.ProcessSale(context.Background(), sales.SaleInput{
		Lines:          []sales.SaleLine{{ProductID: "p1", Quantity: 2}},
		CashierID:      "u2",
		AmountTendered: money("559.99"),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientPayment)
	assert.Equal(t, 50, l.stock(t, "p1"))

	list, err := l.sales.ListSales(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, list)

	// No se consumió número de factura.
	order, err := l.sales.ProcessSale(context.Background(), sales.SaleInput{
		Lines:          []sales.SaleLine{{ProductID: "p1", Quantity: 2}},
		CashierID:      "u2",
		AmountTendered: money("560.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-1001", order.InvoiceNumber)
	assert.True(t, order.Change.IsZero())
	l.assertConsistent(t)
}

func TestProcessSale_MultilineaSinStockRevierteTodo(t *testing.T) {
	l := newLedger(t)
	_, err := l.sales.ProcessSale(context.Background(), sales.SaleInput{
		Lines: []sales.SaleLine{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "p2", Quantity: 6},
		},
		CashierID:      "u2",
		AmountTendered: money("100000"),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	var se *domain.StockError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "p2", se.ProductID)
	assert.Equal(t, 5, se.Available)
	assert.Equal(t, 6, se.Requested)

	assert.Equal(t, 50, l.stock(t, "p1"))
	assert.Equal(t, 5, l.stock(t, "p2"))
	list, err := l.sales.ListSales(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, list)

	// El número pedido por la venta fallida no se reutiliza.
	order, err := l.sales.ProcessSale(context.Background(), sales.SaleInput{
		Lines:          []sales.SaleLine{{ProductID: "p1", Quantity: 1}},
		CashierID:      "u2",
		AmountTendered: money("280.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-1002", order.InvoiceNumber)
	l.assertConsistent(t)
}

func TestProcessSale_LineasRepetidasSeFusionan(t *testing.T) {
	l := newLedger(t)
	order, err := l.sales.ProcessSale(context.Background(), sales.SaleInput{
		Lines: []sales.SaleLine{
			{ProductID: "p5", Quantity: 1},
			{ProductID: "p1", Quantity: 1},
			{ProductID: "p5", Quantity: 2},
		},
		CashierID:      "u2",
		AmountTendered: money("1000"),
	})
	require.NoError(t, err)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "p5", order.Items[0].ProductID)
	assert.Equal(t, 3, order.Items[0].Quantity)
	// 3×150 + 250 = 700; IVA 84; total 784
	assert.True(t, order.Total.Equal(money("784.00")))
	assert.Equal(t, 197, l.stock(t, "p5"))
	l.assertConsistent(t)
}

func TestProcessSale_Errores(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()

	p4, err := l.products.GetByID(ctx, "p4")
	require.NoError(t, err)
	p4.Active = false
	require.NoError(t, l.products.Update(ctx, p4))

	cases := []struct {
		name string
		in   sales.SaleInput
		want error
	}{
		{"carrito vacío", sales.SaleInput{CashierID: "u2", AmountTendered: money("10")}, domain.ErrInvalidInput},
		{"cantidad cero", sales.SaleInput{Lines: []sales.SaleLine{{ProductID: "p1"}}, CashierID: "u2", AmountTendered: money("10")}, domain.ErrInvalidInput},
		{"sin cajero", sales.SaleInput{Lines: []sales.SaleLine{{ProductID: "p1", Quantity: 1}}, AmountTendered: money("1000")}, domain.ErrInvalidInput},
		{"pago negativo", sales.SaleInput{Lines: []sales.SaleLine{{ProductID: "p1", Quantity: 1}}, CashierID: "u2", AmountTendered: money("-1")}, domain.ErrInvalidInput},
		{"producto inexistente", sales.SaleInput{Lines: []sales.SaleLine{{ProductID: "nope", Quantity: 1}}, CashierID: "u2", AmountTendered: money("1000")}, domain.ErrNotFound},
		{"producto inactivo", sales.SaleInput{Lines: []sales.SaleLine{{ProductID: "p4", Quantity: 1}}, CashierID: "u2", AmountTendered: money("1000")}, domain.ErrInvalidInput},
		{"líneas repetidas desbordan", sales.SaleInput{Lines: []sales.SaleLine{{ProductID: "p1", Quantity: math.MaxInt}, {ProductID: "p1", Quantity: math.MaxInt}}, CashierID: "u2", AmountTendered: money("1000")}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := l.sales.ProcessSale(ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Equal(t, 30, l.stock(t, "p4"))
	assert.Equal(t, 50, l.stock(t, "p1"))
	l.assertConsistent(t)
}

func TestProcessSale_ConcurrentesNoSobrevenden(t *testing.T) {
	l := newLedger(t)
	var ok atomic.Int32
	var g errgroup.Group
	for i := 0; i < 12; i++ {
		g.Go(func() error {
			_, err := l.sales.ProcessSale(context.Background(), sales.SaleInput{
				Lines:          []sales.SaleLine{{ProductID: "p2", Quantity: 2}},
				CashierID:      "u2",
				AmountTendered: money("10000"),
			})
			if err == nil {
				ok.Add(1)
				return nil
			}
			if errors.Is(err, domain.ErrInsufficientStock) {
				return nil
			}
			return err
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, int32(2), ok.Load())
	assert.Equal(t, 1, l.stock(t, "p2"))
	l.assertConsistent(t)
}

func TestListSales_MasRecientePrimero(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()
	for _, id := range []string{"p1", "p3", "p4"} {
		_, err := l.sales.ProcessSale(ctx, sales.SaleInput{
			Lines:          []sales.SaleLine{{ProductID: id, Quantity: 1}},
			CashierID:      "u2",
			AmountTendered: money("1000"),
		})
		require.NoError(t, err)
	}
	list, err := l.sales.ListSales(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "INV-1003", list[0].InvoiceNumber)
	assert.Equal(t, "INV-1001", list[2].InvoiceNumber)

	limited, err := l.sales.ListSales(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	got, err := l.sales.GetSale(ctx, list[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "INV-1002", got.InvoiceNumber)

	_, err = l.sales.GetSale(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
