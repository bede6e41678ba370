package memory

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.AdjustmentRepository = (*AdjustmentRepository)(nil)

type AdjustmentRepository struct {
	store *Store
}

func NewAdjustmentRepository(store *Store) *AdjustmentRepository {
	return &AdjustmentRepository{store: store}
}

func (r *AdjustmentRepository) Create(ctx context.Context, adj *entity.InventoryAdjustment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.adjustments = append(r.store.adjustments, *adj)
	return nil
}

func (r *AdjustmentRepository) List(ctx context.Context) ([]entity.InventoryAdjustment, error) {
	return r.store.adjustmentsSnapshot(), nil
}
