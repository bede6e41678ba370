package memory

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepository)(nil)

// ProductRepository productos fuera de transacción. Las lecturas devuelven copias.
type ProductRepository struct {
	store *Store
}

// NewProductRepository construye el repositorio sobre el store.
func NewProductRepository(store *Store) *ProductRepository {
	return &ProductRepository{store: store}
}

func (r *ProductRepository) Create(ctx context.Context, product *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.insertProductLocked(*product); err != nil {
		return err
	}
	product.InitialStock = product.Stock
	return nil
}

// Update no toca Stock ni InitialStock; solo el ledger los cambia.
func (r *ProductRepository) Update(ctx context.Context, product *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.checkProductUpdateLocked(*product); err != nil {
		return err
	}
	r.store.applyProductUpdateLocked(*product)
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	p, ok := r.store.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *ProductRepository) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	id, ok := r.store.productByCode[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p := r.store.products[id]
	return &p, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]entity.Product, error) {
	return r.store.productsSnapshot(nil), nil
}

func (r *ProductRepository) ListLowStock(ctx context.Context) ([]entity.Product, error) {
	return r.store.productsSnapshot(func(p entity.Product) bool {
		return p.Active && p.IsLowStock()
	}), nil
}
