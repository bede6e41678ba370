// Package ledgertest contiene la batería de comportamiento que toda implementación
// del ledger (memoria, PostgreSQL) debe pasar.
package ledgertest

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Tienda-api/internal/application/inventory"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	ledger "github.com/jhoicas/Tienda-api/internal/domain/inventory"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// Fixture implementación bajo prueba.
type Fixture struct {
	Runner    inventory.TxRunner
	Products  repository.ProductRepository
	Sales     repository.SalesOrderRepository
	Sequences repository.SequenceRepository
}

var errBoom = errors.New("boom")

// Run ejecuta la batería completa contra la implementación que devuelve newFixture.
func Run(t *testing.T, newFixture func(t *testing.T) Fixture) {
	t.Run("MutateStock aplica y confirma", func(t *testing.T) {
		f := newFixture(t)
		p := createProduct(t, f, 50)

		var got int
		err := f.Runner.Run(context.Background(), scopeOf(p.ID), func(tx repository.LedgerTx) error {
			var err error
			got, err = tx.Stock.MutateStock(context.Background(), p.ID, -2)
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, 48, got)
		assert.Equal(t, 48, stockOf(t, f, p.ID))
	})

	t.Run("stock insuficiente no cambia nada", func(t *testing.T) {
		f := newFixture(t)
		p := createProduct(t, f, 5)

		err := f.Runner.Run(context.Background(), scopeOf(p.ID), func(tx repository.LedgerTx) error {
			_, err := tx.Stock.MutateStock(context.Background(), p.ID, -6)
			return err
		})
		require.ErrorIs(t, err, domain.ErrInsufficientStock)
		var se *domain.StockError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, p.ID, se.ProductID)
		assert.Equal(t, 5, se.Available)
		assert.Equal(t, 6, se.Requested)
		assert.Equal(t, 5, stockOf(t, f, p.ID))
	})

	t.Run("stock llega al tope y no lo supera", func(t *testing.T) {
		f := newFixture(t)
		p := createProduct(t, f, ledger.MaxQuantity-5)
		mutate := func(delta int) (int, error) {
			var got int
			err := f.Runner.Run(context.Background(), scopeOf(p.ID), func(tx repository.LedgerTx) error {
				var err error
				got, err = tx.Stock.MutateStock(context.Background(), p.ID, delta)
				return err
			})
			return got, err
		}

		got, err := mutate(5)
		require.NoError(t, err)
		assert.Equal(t, ledger.MaxQuantity, got)

		for _, delta := range []int{1, ledger.MaxQuantity, ledger.MaxQuantity + 1, math.MaxInt, math.MinInt} {
			_, err := mutate(delta)
			assert.ErrorIs(t, err, domain.ErrInvalidInput, "delta %d", delta)
			assert.NotErrorIs(t, err, domain.ErrInsufficientStock, "delta %d", delta)
		}
		assert.Equal(t, ledger.MaxQuantity, stockOf(t, f, p.ID))
	})

	t.Run("desborde a mitad de la tx descarta lo anterior", func(t *testing.T) {
		f := newFixture(t)
		a := createProduct(t, f, 10)
		b := createProduct(t, f, 10)

		err := f.Runner.Run(context.Background(), scopeOf(a.ID, b.ID), func(tx repository.LedgerTx) error {
			ctx := context.Background()
			if _, err := tx.Stock.MutateStock(ctx, b.ID, -4); err != nil {
				return err
			}
			_, err := tx.Stock.MutateStock(ctx, a.ID, ledger.MaxQuantity)
			return err
		})
		require.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Equal(t, 10, stockOf(t, f, a.ID))
		assert.Equal(t, 10, stockOf(t, f, b.ID))
	})

	t.Run("lecturas dentro de la tx ven el stock pendiente", func(t *testing.T) {
		f := newFixture(t)
		p := createProduct(t, f, 20)

		err := f.Runner.Run(context.Background(), scopeOf(p.ID), func(tx repository.LedgerTx) error {
			ctx := context.Background()
			if _, err := tx.Stock.MutateStock(ctx, p.ID, -8); err != nil {
				return err
			}
			got, err := tx.Products.GetByID(ctx, p.ID)
			require.NoError(t, err)
			assert.Equal(t, 12, got.Stock)

			byCode, err := tx.Products.GetByCode(ctx, p.Code)
			require.NoError(t, err)
			assert.Equal(t, 12, byCode.Stock)

			all, err := tx.Products.List(ctx)
			require.NoError(t, err)
			var listed *entity.Product
			for i := range all {
				if all[i].ID == p.ID {
					listed = &all[i]
				}
			}
			require.NotNil(t, listed)
			assert.Equal(t, 12, listed.Stock)
			return errBoom
		})
		require.ErrorIs(t, err, errBoom)
		assert.Equal(t, 20, stockOf(t, f, p.ID))
	})

	t.Run("error en fn descarta todas las escrituras", func(t *testing.T) {
		f := newFixture(t)
		a := createProduct(t, f, 10)
		b := createProduct(t, f, 10)
		orderID := uuid.NewString()

		err := f.Runner.Run(context.Background(), scopeOf(a.ID, b.ID), func(tx repository.LedgerTx) error {
			ctx := context.Background()
			if _, err := tx.Stock.MutateStock(ctx, a.ID, -3); err != nil {
				return err
			}
			if err := tx.Sales.Create(ctx, saleFor(orderID, a)); err != nil {
				return err
			}
			if _, err := tx.Stock.MutateStock(ctx, b.ID, -3); err != nil {
				return err
			}
			return errBoom
		})
		require.ErrorIs(t, err, errBoom)
		assert.Equal(t, 10, stockOf(t, f, a.ID))
		assert.Equal(t, 10, stockOf(t, f, b.ID))
		_, err = f.Sales.GetByID(context.Background(), orderID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("producto fuera del alcance", func(t *testing.T) {
		f := newFixture(t)
		a := createProduct(t, f, 10)
		b := createProduct(t, f, 10)

		err := f.Runner.Run(context.Background(), scopeOf(a.ID), func(tx repository.LedgerTx) error {
			_, err := tx.Stock.MutateStock(context.Background(), b.ID, 1)
			return err
		})
		require.ErrorIs(t, err, domain.ErrLockScope)
		assert.Equal(t, 10, stockOf(t, f, b.ID))
	})

	t.Run("producto inexistente", func(t *testing.T) {
		f := newFixture(t)
		missing := uuid.NewString()
		err := f.Runner.Run(context.Background(), scopeOf(missing), func(tx repository.LedgerTx) error {
			_, err := tx.Stock.MutateStock(context.Background(), missing, 1)
			return err
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("secuencias nunca se reutilizan", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		first, err := f.Sequences.NextInvoiceNumber(ctx)
		require.NoError(t, err)

		var drawn int64
		err = f.Runner.Run(ctx, repository.LockScope{}, func(tx repository.LedgerTx) error {
			drawn, err = tx.Sequences.NextInvoiceNumber(ctx)
			if err != nil {
				return err
			}
			return errBoom
		})
		require.ErrorIs(t, err, errBoom)
		next, err := f.Sequences.NextInvoiceNumber(ctx)
		require.NoError(t, err)
		assert.Greater(t, drawn, first)
		assert.Greater(t, next, drawn)

		po1, err := f.Sequences.NextPONumber(ctx)
		require.NoError(t, err)
		po2, err := f.Sequences.NextPONumber(ctx)
		require.NoError(t, err)
		assert.Greater(t, po2, po1)
	})

	t.Run("Update no toca el stock", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		p := createProduct(t, f, 7)
		p.Name = "Renombrado"
		p.Stock = 999
		p.InitialStock = 999
		require.NoError(t, f.Products.Update(ctx, p))

		got, err := f.Products.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renombrado", got.Name)
		assert.Equal(t, 7, got.Stock)
		assert.Equal(t, 7, got.InitialStock)
	})

	t.Run("ventas concurrentes no sobrevenden", func(t *testing.T) {
		f := newFixture(t)
		p := createProduct(t, f, 50)

		var ok, rejected atomic.Int32
		var g errgroup.Group
		for i := 0; i < 20; i++ {
			g.Go(func() error {
				err := f.Runner.Run(context.Background(), scopeOf(p.ID), func(tx repository.LedgerTx) error {
					_, err := tx.Stock.MutateStock(context.Background(), p.ID, -3)
					return err
				})
				switch {
				case err == nil:
					ok.Add(1)
				case errors.Is(err, domain.ErrInsufficientStock):
					rejected.Add(1)
				default:
					return err
				}
				return nil
			})
		}
		require.NoError(t, g.Wait())
		assert.Equal(t, int32(16), ok.Load())
		assert.Equal(t, int32(4), rejected.Load())
		assert.Equal(t, 2, stockOf(t, f, p.ID))
	})

	t.Run("alcances cruzados no se interbloquean", func(t *testing.T) {
		f := newFixture(t)
		a := createProduct(t, f, 1000)
		b := createProduct(t, f, 1000)

		var g errgroup.Group
		for i := 0; i < 10; i++ {
			ids := []string{a.ID, b.ID}
			if i%2 == 1 {
				ids = []string{b.ID, a.ID}
			}
			g.Go(func() error {
				return f.Runner.Run(context.Background(), scopeOf(ids...), func(tx repository.LedgerTx) error {
					for _, id := range ids {
						if _, err := tx.Stock.MutateStock(context.Background(), id, -1); err != nil {
							return err
						}
					}
					return nil
				})
			})
		}
		done := make(chan error, 1)
		go func() { done <- g.Wait() }()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(10 * time.Second):
			t.Fatal("posible interbloqueo")
		}
		assert.Equal(t, 990, stockOf(t, f, a.ID))
		assert.Equal(t, 990, stockOf(t, f, b.ID))
	})
}

func scopeOf(ids ...string) repository.LockScope {
	return repository.LockScope{ProductIDs: ids}
}

func createProduct(t *testing.T, f Fixture, stock int) *entity.Product {
	t.Helper()
	now := time.Now().UTC()
	id := uuid.NewString()
	p := &entity.Product{
		ID:           id,
		Code:         "T-" + id[:8],
		Name:         "Producto " + id[:8],
		UnitPrice:    decimal.RequireFromString("10.00"),
		Stock:        stock,
		ReorderLevel: 1,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, f.Products.Create(context.Background(), p))
	return p
}

func stockOf(t *testing.T, f Fixture, id string) int {
	t.Helper()
	p, err := f.Products.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p.Stock
}

func saleFor(id string, p *entity.Product) *entity.SalesOrder {
	price := p.UnitPrice
	return &entity.SalesOrder{
		ID:            id,
		InvoiceNumber: "INV-T-" + id[:8],
		DateTime:      time.Now().UTC(),
		CashierID:     "u2",
		Items: []entity.SalesOrderItem{{
			ProductID: p.ID, ProductName: p.Name, Quantity: 3, UnitPrice: price, LineTotal: price.Mul(decimal.NewFromInt(3)),
		}},
		Subtotal:   price.Mul(decimal.NewFromInt(3)),
		Tax:        decimal.Zero,
		Total:      price.Mul(decimal.NewFromInt(3)),
		AmountPaid: price.Mul(decimal.NewFromInt(3)),
		Change:     decimal.Zero,
	}
}
