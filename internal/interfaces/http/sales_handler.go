package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/sales"
)

// SalesHandler punto de venta: registrar ventas, consultarlas y descargar el recibo.
type SalesHandler struct {
	uc      *sales.ProcessSaleUseCase
	receipt *sales.ReceiptUseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(uc *sales.ProcessSaleUseCase, receipt *sales.ReceiptUseCase) *SalesHandler {
	return &SalesHandler{uc: uc, receipt: receipt}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Descuenta stock de todas las líneas en una sola transacción. El cajero es el usuario del token.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Líneas y monto entregado"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      402   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SalesHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	lines := make([]sales.SaleLine, 0, len(in.Items))
	for _, it := range in.Items {
		lines = append(lines, sales.SaleLine{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	order, err := h.uc.ProcessSale(c.UserContext(), sales.SaleInput{
		Lines:          lines,
		CashierID:      GetUserID(c),
		AmountTendered: in.AmountTendered,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(toSaleResponse(order))
}

// GetByID godoc
// @Summary      Obtener venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SalesHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.uc.GetSale(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(toSaleResponse(order))
}

// List godoc
// @Summary      Historial de ventas (más reciente primero)
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de ventas (1-500). Vacío = todas."
// @Success      200    {array}  dto.SaleResponse
// @Router       /api/sales [get]
func (h *SalesHandler) List(c *fiber.Ctx) error {
	var q dto.ListQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	orders, err := h.uc.ListSales(c.UserContext(), q.Limit)
	if err != nil {
		return err
	}
	out := make([]dto.SaleResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toSaleResponse(&orders[i]))
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Descargar recibo en PDF
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SalesHandler) Receipt(c *fiber.Ctx) error {
	pdf, filename, err := h.receipt.DownloadReceipt(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
