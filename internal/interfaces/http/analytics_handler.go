package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Tienda-api/internal/application/analytics"
	"github.com/jhoicas/Tienda-api/internal/application/inventory"
)

// ReportHandler reportes de ventas y la conciliación del ledger.
type ReportHandler struct {
	reports   *appanalytics.ReportUseCase
	reconcile *inventory.ReconcileUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(reports *appanalytics.ReportUseCase, reconcile *inventory.ReconcileUseCase) *ReportHandler {
	return &ReportHandler{reports: reports, reconcile: reconcile}
}

// UnitsSold godoc
// @Summary      Unidades vendidas por producto
// @Description  Agrupa por el nombre del producto al momento de la venta. Orden: unidades desc, nombre asc.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UnitsSoldDTO
// @Router       /api/reports/units-sold [get]
func (h *ReportHandler) UnitsSold(c *fiber.Ctx) error {
	out, err := h.reports.UnitsSoldByProduct(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Reconcile godoc
// @Summary      Conciliar stock contra historiales
// @Description  stock = inicial + ajustes − vendido + recibido, por producto. Lista vacía = ledger consistente.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReconcileResponse
// @Router       /api/reports/reconcile [get]
func (h *ReportHandler) Reconcile(c *fiber.Ctx) error {
	ds, err := h.reconcile.Reconcile(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(toReconcileResponse(ds))
}
