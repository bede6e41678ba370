package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Tienda-api/internal/application/analytics"
	"github.com/jhoicas/Tienda-api/internal/application/auth"
	"github.com/jhoicas/Tienda-api/internal/application/inventory"
	"github.com/jhoicas/Tienda-api/internal/application/purchasing"
	"github.com/jhoicas/Tienda-api/internal/application/sales"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	ProductUC     *usecase.ProductUseCase
	SupplierUC    *usecase.SupplierUseCase
	CategoryUC    *usecase.CategoryUseCase
	Sales         *sales.ProcessSaleUseCase
	Receipt       *sales.ReceiptUseCase
	Purchasing    *purchasing.PurchaseOrderUseCase
	Adjust        *inventory.AdjustInventoryUseCase
	Reconcile     *inventory.ReconcileUseCase
	Replenishment *inventory.ReplenishmentUseCase
	Reports       *appanalytics.ReportUseCase
	Dashboard     *appanalytics.DashboardUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	const (
		admin   = entity.RoleAdmin
		cashier = entity.RoleCashier
		clerk   = entity.RoleInventoryClerk
	)
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	// Products; low-stock antes de /:id
	productHandler := NewProductHandler(deps.ProductUC, deps.Replenishment)
	products := protected.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", RequireRole(admin), productHandler.Create)
	products.Put("/:id", RequireRole(admin, clerk), productHandler.Update)

	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers := protected.Group("/suppliers", RequireRole(admin, clerk))
	suppliers.Get("/", supplierHandler.List)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Put("/:id", supplierHandler.Update)

	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories := protected.Group("/categories", RequireRole(admin))
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)

	// Ventas (punto de venta)
	salesHandler := NewSalesHandler(deps.Sales, deps.Receipt)
	salesGroup := protected.Group("/sales")
	salesGroup.Post("/", RequireRole(admin, cashier), salesHandler.Create)
	salesGroup.Get("/", salesHandler.List)
	salesGroup.Get("/:id", salesHandler.GetByID)
	salesGroup.Get("/:id/receipt", salesHandler.Receipt)

	// Órdenes de compra
	poHandler := NewPurchaseOrderHandler(deps.Purchasing)
	pos := protected.Group("/purchase-orders")
	pos.Get("/", poHandler.List)
	pos.Get("/:id", poHandler.GetByID)
	pos.Post("/", RequireRole(admin, clerk), poHandler.Create)
	pos.Post("/:id/receive", RequireRole(admin, clerk), poHandler.Receive)
	pos.Post("/:id/cancel", RequireRole(admin, clerk), poHandler.Cancel)

	// Ajustes de inventario
	inventoryHandler := NewInventoryHandler(deps.Adjust)
	inv := protected.Group("/inventory")
	inv.Get("/adjustments", inventoryHandler.ListAdjustments)
	inv.Post("/adjustments", RequireRole(admin, clerk), inventoryHandler.CreateAdjustment)

	// Reportes
	reportHandler := NewReportHandler(deps.Reports, deps.Reconcile)
	dashboardHandler := NewDashboardHandler(deps.Dashboard)
	reports := protected.Group("/reports")
	reports.Get("/units-sold", reportHandler.UnitsSold)
	reports.Get("/dashboard", dashboardHandler.GetStats)
	reports.Get("/reconcile", RequireRole(admin), reportHandler.Reconcile)
}
