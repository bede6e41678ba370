package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/ledgertest"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/postgres"
)

var opts = postgres.Options{InvoiceBase: 1000, POBase: 2000}

// startPostgres levanta un PostgreSQL desechable, aplica las migraciones y devuelve el pool.
func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("prueba de integración: omitida con -short")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	ctr, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("tienda_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ctr.Terminate(context.Background()) })

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	m, err := postgres.NewMigrator(dsn, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, m.Up())
	require.NoError(t, m.Up(), "sin cambios no es error")
	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)
	require.NoError(t, m.Close())

	pool, err := postgres.Connect(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, postgres.AlignSequences(ctx, pool, opts))
	return pool
}

// ─── Ledger ──────────────────────────────────────────────────────────────────

func TestPostgresLedger(t *testing.T) {
	pool := startPostgres(t)
	ledgertest.Run(t, func(t *testing.T) ledgertest.Fixture {
		return ledgertest.Fixture{
			Runner:    postgres.NewTxRunner(pool),
			Products:  postgres.NewProductRepository(pool),
			Sales:     postgres.NewSalesOrderRepository(pool),
			Sequences: postgres.NewSequenceRepository(pool),
		}
	})
}

// ─── Numeración ──────────────────────────────────────────────────────────────

func TestPostgresAlignSequences(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()
	seq := postgres.NewSequenceRepository(pool)

	next := func() (inv, po int64) {
		t.Helper()
		inv, err := seq.NextInvoiceNumber(ctx)
		require.NoError(t, err)
		po, err = seq.NextPONumber(ctx)
		require.NoError(t, err)
		return inv, po
	}

	inv, po := next()
	assert.Equal(t, int64(1001), inv)
	assert.Equal(t, int64(2001), po)

	t.Run("bajar la base no reemite números", func(t *testing.T) {
		require.NoError(t, postgres.AlignSequences(ctx, pool, postgres.Options{InvoiceBase: 10, POBase: 0}))
		inv, po := next()
		assert.Equal(t, int64(1002), inv)
		assert.Equal(t, int64(2002), po)
	})

	t.Run("subir la base adelanta la secuencia", func(t *testing.T) {
		require.NoError(t, postgres.AlignSequences(ctx, pool, postgres.Options{InvoiceBase: 5000, POBase: 2000}))
		inv, po := next()
		assert.Equal(t, int64(5001), inv)
		assert.Equal(t, int64(2003), po)
	})

	t.Run("números ya guardados cuentan como piso", func(t *testing.T) {
		now := time.Now().UTC()
		require.NoError(t, postgres.NewPurchaseOrderRepository(pool).Create(ctx, &entity.PurchaseOrder{
			ID: uuid.NewString(), PONumber: "PO-8000", SupplierID: "s1", SupplierName: "Tech Supplies Inc.",
			OrderDate: now, Status: entity.POStatusPending, CreatedByID: "u3", TotalAmount: decimal.Zero,
		}))
		require.NoError(t, postgres.AlignSequences(ctx, pool, opts))
		_, po := next()
		assert.Equal(t, int64(8001), po)
	})
}

// ─── Repositorios ────────────────────────────────────────────────────────────

func TestPostgresRepositories(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()

	t.Run("primer número de OC es base + 1", func(t *testing.T) {
		// Corre antes que cualquier OC en este contenedor.
		n, err := postgres.NewSequenceRepository(pool).NextPONumber(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2001), n)
	})

	products := postgres.NewProductRepository(pool)
	now := time.Now().UTC().Truncate(time.Microsecond)
	mouse := &entity.Product{
		ID: uuid.NewString(), Code: "MOU-001", Name: "Wireless Mouse",
		UnitPrice: decimal.RequireFromString("250.00"), Stock: 50, ReorderLevel: 10,
		Active: true, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, products.Create(ctx, mouse))

	t.Run("código duplicado", func(t *testing.T) {
		dup := *mouse
		dup.ID = uuid.NewString()
		assert.ErrorIs(t, products.Create(ctx, &dup), domain.ErrDuplicate)
	})

	t.Run("GetByCode y decimal", func(t *testing.T) {
		got, err := products.GetByCode(ctx, "MOU-001")
		require.NoError(t, err)
		assert.Equal(t, 50, got.InitialStock)
		assert.True(t, got.UnitPrice.Equal(decimal.RequireFromString("250")))
		_, err = products.GetByCode(ctx, "NOPE")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("orden de compra: alta, lectura y estado", func(t *testing.T) {
		poRepo := postgres.NewPurchaseOrderRepository(pool)
		po := &entity.PurchaseOrder{
			ID: uuid.NewString(), PONumber: "PO-9001", SupplierID: "s1", SupplierName: "Tech Supplies Inc.",
			OrderDate: now, Status: entity.POStatusPending, CreatedByID: "u3",
			Items: []entity.PurchaseOrderItem{{
				ProductID: mouse.ID, ProductName: mouse.Name, Quantity: 5,
				UnitCost: decimal.RequireFromString("120.00"), LineTotal: decimal.RequireFromString("600.00"),
			}},
			TotalAmount: decimal.RequireFromString("600.00"),
		}
		require.NoError(t, poRepo.Create(ctx, po))

		_, err := poRepo.GetForUpdate(ctx, po.ID)
		assert.ErrorIs(t, err, domain.ErrLockScope)

		received := now.Add(time.Hour)
		po.Status = entity.POStatusReceived
		po.ReceivedDate = &received
		require.NoError(t, poRepo.UpdateStatus(ctx, po))

		got, err := poRepo.GetByID(ctx, po.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.POStatusReceived, got.Status)
		require.NotNil(t, got.ReceivedDate)
		assert.True(t, got.ReceivedDate.Equal(received))
		require.Len(t, got.Items, 1)
		assert.Equal(t, 5, got.Items[0].Quantity)

		pending, err := poRepo.List(ctx, entity.POStatusPending)
		require.NoError(t, err)
		assert.Empty(t, pending)
		all, err := poRepo.List(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("GetForUpdate dentro del alcance", func(t *testing.T) {
		poRepo := postgres.NewPurchaseOrderRepository(pool)
		all, err := poRepo.List(ctx, "")
		require.NoError(t, err)
		require.NotEmpty(t, all)
		id := all[0].ID

		err = postgres.NewTxRunner(pool).Run(ctx, repository.LockScope{PurchaseOrderID: id}, func(tx repository.LedgerTx) error {
			po, err := tx.PurchaseOrders.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			assert.Equal(t, "PO-9001", po.PONumber)
			_, err = tx.PurchaseOrders.GetForUpdate(ctx, uuid.NewString())
			assert.ErrorIs(t, err, domain.ErrLockScope)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("categorías y proveedores", func(t *testing.T) {
		cats := postgres.NewCategoryRepository(pool)
		require.NoError(t, cats.Create(ctx, &entity.Category{ID: "c1", Name: "Peripherals"}))
		assert.ErrorIs(t, cats.Create(ctx, &entity.Category{ID: "c2", Name: "Peripherals"}), domain.ErrDuplicate)
		list, err := cats.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []entity.Category{{ID: "c1", Name: "Peripherals"}}, list)

		sups := postgres.NewSupplierRepository(pool)
		s := &entity.Supplier{ID: "s1", CompanyName: "Tech Supplies Inc.", ContactPerson: "John Smith"}
		require.NoError(t, sups.Create(ctx, s))
		s.Phone = "555-0101"
		require.NoError(t, sups.Update(ctx, s))
		got, err := sups.GetByID(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, "555-0101", got.Phone)
		assert.ErrorIs(t, sups.Update(ctx, &entity.Supplier{ID: "nope"}), domain.ErrNotFound)
	})

	t.Run("usuarios por username", func(t *testing.T) {
		users := postgres.NewUserRepository(pool)
		u := &entity.User{ID: "u1", Username: "admin", FullName: "Kirk John Gabo", PasswordHash: "x", Role: entity.RoleAdmin, CreatedAt: now}
		require.NoError(t, users.Create(ctx, u))
		assert.ErrorIs(t, users.Create(ctx, &entity.User{ID: "u9", Username: "admin", Role: entity.RoleAdmin, CreatedAt: now}), domain.ErrDuplicate)
		got, err := users.GetByUsername(ctx, "admin")
		require.NoError(t, err)
		assert.Equal(t, "u1", got.ID)
		_, err = users.GetByID(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("analítica", func(t *testing.T) {
		runner := postgres.NewTxRunner(pool)
		err := runner.Run(ctx, repository.LockScope{ProductIDs: []string{mouse.ID}}, func(tx repository.LedgerTx) error {
			if _, err := tx.Stock.MutateStock(ctx, mouse.ID, -2); err != nil {
				return err
			}
			return tx.Sales.Create(ctx, &entity.SalesOrder{
				ID: uuid.NewString(), InvoiceNumber: "INV-9001", DateTime: now, CashierID: "u2",
				Items: []entity.SalesOrderItem{{
					ProductID: mouse.ID, ProductName: mouse.Name, Quantity: 2,
					UnitPrice: mouse.UnitPrice, LineTotal: decimal.RequireFromString("500.00"),
				}},
				Subtotal: decimal.RequireFromString("500.00"), Tax: decimal.RequireFromString("60.00"),
				Total: decimal.RequireFromString("560.00"), AmountPaid: decimal.RequireFromString("600.00"),
				Change: decimal.RequireFromString("40.00"),
			})
		})
		require.NoError(t, err)

		an := postgres.NewAnalyticsRepository(pool)
		units, err := an.UnitsSoldByProduct(ctx)
		require.NoError(t, err)
		assert.Equal(t, []repository.UnitsSoldResult{{ProductName: "Wireless Mouse", UnitsSold: 2}}, units)

		m, err := an.GetDashboardMetrics(ctx, now.Add(-time.Minute), now.Add(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, 1, m.SalesCount)
		assert.True(t, m.Revenue.Equal(decimal.RequireFromString("560")))
		assert.Equal(t, 1, m.TotalProducts)
		assert.Equal(t, 0, m.PendingPOCount)
	})
}
