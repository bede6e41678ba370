package repository

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// SalesOrderRepository historial de ventas (solo inserción).
type SalesOrderRepository interface {
	Create(ctx context.Context, order *entity.SalesOrder) error
	GetByID(ctx context.Context, id string) (*entity.SalesOrder, error)
	// List devuelve las ventas de la más reciente a la más antigua. limit <= 0 = sin límite.
	List(ctx context.Context, limit int) ([]entity.SalesOrder, error)
}
