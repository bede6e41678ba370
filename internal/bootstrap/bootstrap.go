// Package bootstrap arma los casos de uso sobre un almacén concreto (memoria o PostgreSQL).
package bootstrap

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	appanalytics "github.com/jhoicas/Tienda-api/internal/application/analytics"
	"github.com/jhoicas/Tienda-api/internal/application/auth"
	"github.com/jhoicas/Tienda-api/internal/application/inventory"
	"github.com/jhoicas/Tienda-api/internal/application/purchasing"
	"github.com/jhoicas/Tienda-api/internal/application/sales"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/memory"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/seed"
	apphttp "github.com/jhoicas/Tienda-api/internal/interfaces/http"
)

// Backend repositorios y runner de un mismo almacén.
type Backend struct {
	Runner         inventory.TxRunner
	Products       repository.ProductRepository
	Sales          repository.SalesOrderRepository
	PurchaseOrders repository.PurchaseOrderRepository
	Adjustments    repository.AdjustmentRepository
	Suppliers      repository.SupplierRepository
	Categories     repository.CategoryRepository
	Users          repository.UserRepository
	Analytics      repository.AnalyticsRepository
}

// NewMemoryBackend almacén en proceso; se pierde al reiniciar.
func NewMemoryBackend(opts memory.Options) *Backend {
	s := memory.NewStore(opts)
	return &Backend{
		Runner:         memory.NewTxRunner(s),
		Products:       memory.NewProductRepository(s),
		Sales:          memory.NewSalesOrderRepository(s),
		PurchaseOrders: memory.NewPurchaseOrderRepository(s),
		Adjustments:    memory.NewAdjustmentRepository(s),
		Suppliers:      memory.NewSupplierRepository(s),
		Categories:     memory.NewCategoryRepository(s),
		Users:          memory.NewUserRepository(s),
		Analytics:      memory.NewAnalyticsRepository(s),
	}
}

// NewPostgresBackend almacén sobre el pool; el esquema debe estar migrado. Alinea las
// secuencias de numeración con las bases de opts antes de devolverlo.
func NewPostgresBackend(ctx context.Context, pool *pgxpool.Pool, opts postgres.Options) (*Backend, error) {
	if err := postgres.AlignSequences(ctx, pool, opts); err != nil {
		return nil, err
	}
	return &Backend{
		Runner:         postgres.NewTxRunner(pool),
		Products:       postgres.NewProductRepository(pool),
		Sales:          postgres.NewSalesOrderRepository(pool),
		PurchaseOrders: postgres.NewPurchaseOrderRepository(pool),
		Adjustments:    postgres.NewAdjustmentRepository(pool),
		Suppliers:      postgres.NewSupplierRepository(pool),
		Categories:     postgres.NewCategoryRepository(pool),
		Users:          postgres.NewUserRepository(pool),
		Analytics:      postgres.NewAnalyticsRepository(pool),
	}, nil
}

// SeedTargets destinos para seed.Load.
func (b *Backend) SeedTargets() seed.Targets {
	return seed.Targets{
		Users:      b.Users,
		Categories: b.Categories,
		Suppliers:  b.Suppliers,
		Products:   b.Products,
	}
}

// Settings parámetros de negocio que no dependen del almacén.
type Settings struct {
	TaxRate   decimal.Decimal
	StoreName string
	Locale    language.Tag // formato de montos en el recibo
	JWT       auth.JWTConfig
}

// RouterDeps construye todos los casos de uso y devuelve las dependencias del router.
func (b *Backend) RouterDeps(s Settings, log zerolog.Logger) apphttp.RouterDeps {
	component := func(name string) zerolog.Logger {
		return log.With().Str("component", name).Logger()
	}
	locale := s.Locale
	if locale == language.Und {
		locale = language.English
	}
	return apphttp.RouterDeps{
		AuthUC:        auth.NewAuthUseCase(b.Users, s.JWT),
		UserUC:        usecase.NewUserUseCase(b.Users),
		ProductUC:     usecase.NewProductUseCase(b.Products, b.Categories, b.Suppliers),
		SupplierUC:    usecase.NewSupplierUseCase(b.Suppliers),
		CategoryUC:    usecase.NewCategoryUseCase(b.Categories),
		Sales:         sales.NewProcessSaleUseCase(b.Runner, b.Sales, s.TaxRate, component("sales")),
		Receipt:       sales.NewReceiptUseCase(b.Sales, b.Users, pdf.NewMarotoReceiptGenerator(locale), s.StoreName, s.TaxRate),
		Purchasing:    purchasing.NewPurchaseOrderUseCase(b.Runner, b.PurchaseOrders, b.Suppliers, component("purchasing")),
		Adjust:        inventory.NewAdjustInventoryUseCase(b.Runner, b.Adjustments, component("inventory")),
		Reconcile:     inventory.NewReconcileUseCase(b.Runner, b.Products),
		Replenishment: inventory.NewReplenishmentUseCase(b.Products),
		Reports:       appanalytics.NewReportUseCase(b.Analytics),
		Dashboard:     appanalytics.NewDashboardUseCase(b.Analytics),
		JWTSecret:     s.JWT.Secret,
	}
}
