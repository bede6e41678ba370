package memory

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepository)(nil)

// PurchaseOrderRepository órdenes de compra en memoria.
type PurchaseOrderRepository struct {
	store *Store
}

func NewPurchaseOrderRepository(store *Store) *PurchaseOrderRepository {
	return &PurchaseOrderRepository{store: store}
}

func (r *PurchaseOrderRepository) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.insertPOLocked(*po)
}

func (r *PurchaseOrderRepository) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	po, ok := r.store.pos[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := po.Clone()
	return &c, nil
}

// GetForUpdate fuera de una transacción no hay nada que bloquear.
func (r *PurchaseOrderRepository) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return nil, domain.ErrLockScope
}

func (r *PurchaseOrderRepository) UpdateStatus(ctx context.Context, po *entity.PurchaseOrder) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.applyPOStatusLocked(*po)
}

func (r *PurchaseOrderRepository) List(ctx context.Context, status string) ([]entity.PurchaseOrder, error) {
	return r.store.posSnapshot(status), nil
}
