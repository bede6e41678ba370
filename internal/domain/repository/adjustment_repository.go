package repository

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// AdjustmentRepository historial de ajustes manuales (solo inserción).
type AdjustmentRepository interface {
	Create(ctx context.Context, adj *entity.InventoryAdjustment) error
	// List devuelve los ajustes del más reciente al más antiguo.
	List(ctx context.Context) ([]entity.InventoryAdjustment, error)
}
