package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/inventory"
)

// InventoryHandler ajustes manuales de inventario (protegido).
type InventoryHandler struct {
	uc *inventory.AdjustInventoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.AdjustInventoryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// CreateAdjustment godoc
// @Summary      Registrar ajuste de inventario
// @Description  quantity_change positivo suma, negativo resta. Nunca deja stock negativo.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAdjustmentRequest  true  "product_id, quantity_change, reason"
// @Success      201   {object}  dto.AdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) CreateAdjustment(c *fiber.Ctx) error {
	var in dto.CreateAdjustmentRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	adj, err := h.uc.AdjustInventory(c.UserContext(), inventory.AdjustmentInput{
		ProductID:      in.ProductID,
		QuantityChange: in.QuantityChange,
		Reason:         in.Reason,
		UserID:         GetUserID(c),
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(toAdjustmentResponse(adj))
}

// ListAdjustments godoc
// @Summary      Historial de ajustes (más reciente primero)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AdjustmentResponse
// @Router       /api/inventory/adjustments [get]
func (h *InventoryHandler) ListAdjustments(c *fiber.Ctx) error {
	list, err := h.uc.ListAdjustments(c.UserContext())
	if err != nil {
		return err
	}
	out := make([]dto.AdjustmentResponse, 0, len(list))
	for i := range list {
		out = append(out, toAdjustmentResponse(&list[i]))
	}
	return c.JSON(out)
}
