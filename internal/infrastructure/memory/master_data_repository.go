package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var (
	_ repository.SupplierRepository = (*SupplierRepository)(nil)
	_ repository.CategoryRepository = (*CategoryRepository)(nil)
	_ repository.UserRepository     = (*UserRepository)(nil)
)

// SupplierRepository proveedores en memoria.
type SupplierRepository struct {
	store *Store
}

func NewSupplierRepository(store *Store) *SupplierRepository {
	return &SupplierRepository{store: store}
}

func (r *SupplierRepository) Create(ctx context.Context, supplier *entity.Supplier) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.suppliers[supplier.ID]; ok {
		return domain.ErrDuplicate
	}
	r.store.suppliers[supplier.ID] = *supplier
	return nil
}

func (r *SupplierRepository) Update(ctx context.Context, supplier *entity.Supplier) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.suppliers[supplier.ID]; !ok {
		return domain.ErrNotFound
	}
	r.store.suppliers[supplier.ID] = *supplier
	return nil
}

func (r *SupplierRepository) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	s, ok := r.store.suppliers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (r *SupplierRepository) List(ctx context.Context) ([]entity.Supplier, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]entity.Supplier, 0, len(r.store.suppliers))
	for _, s := range r.store.suppliers {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompanyName < out[j].CompanyName })
	return out, nil
}

// CategoryRepository categorías en memoria.
type CategoryRepository struct {
	store *Store
}

func NewCategoryRepository(store *Store) *CategoryRepository {
	return &CategoryRepository{store: store}
}

func (r *CategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.categories[category.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, c := range r.store.categories {
		if c.Name == category.Name {
			return domain.ErrDuplicate
		}
	}
	r.store.categories[category.ID] = *category
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	c, ok := r.store.categories[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]entity.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]entity.Category, 0, len(r.store.categories))
	for _, c := range r.store.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// UserRepository usuarios en memoria, indexados por ID y por username.
type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.users[user.ID]; ok {
		return domain.ErrDuplicate
	}
	if _, ok := r.store.userByName[user.Username]; ok {
		return domain.ErrDuplicate
	}
	r.store.users[user.ID] = *user
	r.store.userByName[user.Username] = user.ID
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	id, ok := r.store.userByName[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	u := r.store.users[id]
	return &u, nil
}
