package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/purchasing"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// PurchaseOrderHandler ciclo de vida de las órdenes de compra (protegido).
type PurchaseOrderHandler struct {
	uc *purchasing.PurchaseOrderUseCase
}

// NewPurchaseOrderHandler construye el handler.
func NewPurchaseOrderHandler(uc *purchasing.PurchaseOrderUseCase) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de compra
// @Description  Nace en Pending y no mueve stock.
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseOrderRequest  true  "Proveedor y líneas"
// @Success      201   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [post]
func (h *PurchaseOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseOrderRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	lines := make([]purchasing.POLine, 0, len(in.Items))
	for _, it := range in.Items {
		lines = append(lines, purchasing.POLine{ProductID: it.ProductID, Quantity: it.Quantity, UnitCost: it.UnitCost})
	}
	po, err := h.uc.CreatePurchaseOrder(c.UserContext(), purchasing.CreatePOInput{
		SupplierID:  in.SupplierID,
		Lines:       lines,
		CreatedByID: GetUserID(c),
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(toPurchaseOrderResponse(po))
}

// GetByID godoc
// @Summary      Obtener orden de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id} [get]
func (h *PurchaseOrderHandler) GetByID(c *fiber.Ctx) error {
	po, err := h.uc.GetPurchaseOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(toPurchaseOrderResponse(po))
}

// List godoc
// @Summary      Listar órdenes de compra (más reciente primero)
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Pending | Received | Cancelled"
// @Success      200     {array}  dto.PurchaseOrderResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [get]
func (h *PurchaseOrderHandler) List(c *fiber.Ctx) error {
	var q dto.ListQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	list, err := h.uc.ListPurchaseOrders(c.UserContext(), q.Status)
	if err != nil {
		return err
	}
	out := make([]dto.PurchaseOrderResponse, 0, len(list))
	for i := range list {
		out = append(out, toPurchaseOrderResponse(&list[i]))
	}
	return c.JSON(out)
}

// Receive godoc
// @Summary      Recibir orden de compra
// @Description  Suma stock una sola vez. Recibir de nuevo devuelve la orden sin cambios.
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/receive [post]
func (h *PurchaseOrderHandler) Receive(c *fiber.Ctx) error {
	return h.transition(c, h.uc.ReceivePurchaseOrder)
}

// Cancel godoc
// @Summary      Cancelar orden de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/cancel [post]
func (h *PurchaseOrderHandler) Cancel(c *fiber.Ctx) error {
	return h.transition(c, h.uc.CancelPurchaseOrder)
}

func (h *PurchaseOrderHandler) transition(c *fiber.Ctx, fn func(ctx context.Context, id string) (*entity.PurchaseOrder, error)) error {
	po, err := fn(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(toPurchaseOrderResponse(po))
}
