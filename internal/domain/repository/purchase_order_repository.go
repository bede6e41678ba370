package repository

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// PurchaseOrderRepository persistencia de órdenes de compra.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	// GetForUpdate lee la orden bloqueándola hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	// UpdateStatus persiste Status, ReceivedDate y CancelledDate. Las líneas son inmutables.
	UpdateStatus(ctx context.Context, po *entity.PurchaseOrder) error
	// List devuelve las órdenes de la más reciente a la más antigua; status vacío = todas.
	List(ctx context.Context, status string) ([]entity.PurchaseOrder, error)
}
