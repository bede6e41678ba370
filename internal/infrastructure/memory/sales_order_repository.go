package memory

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.SalesOrderRepository = (*SalesOrderRepository)(nil)

// SalesOrderRepository historial de ventas en memoria.
type SalesOrderRepository struct {
	store *Store
}

func NewSalesOrderRepository(store *Store) *SalesOrderRepository {
	return &SalesOrderRepository{store: store}
}

func (r *SalesOrderRepository) Create(ctx context.Context, order *entity.SalesOrder) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.insertSaleLocked(*order)
}

func (r *SalesOrderRepository) GetByID(ctx context.Context, id string) (*entity.SalesOrder, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	i, ok := r.store.salesByID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	o := r.store.sales[i].Clone()
	return &o, nil
}

func (r *SalesOrderRepository) List(ctx context.Context, limit int) ([]entity.SalesOrder, error) {
	return r.store.salesSnapshot(limit), nil
}
