package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var (
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
)

// SupplierRepo proveedores sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO suppliers (id, company_name, contact_person, phone, email, address)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.CompanyName, s.ContactPerson, s.Phone, s.Email, s.Address,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE suppliers SET company_name = $2, contact_person = $3, phone = $4, email = $5, address = $6
		WHERE id = $1`,
		s.ID, s.CompanyName, s.ContactPerson, s.Phone, s.Email, s.Address,
	)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	var s entity.Supplier
	err := r.q.QueryRow(ctx, `
		SELECT id, company_name, contact_person, phone, email, address
		FROM suppliers WHERE id = $1`, id,
	).Scan(&s.ID, &s.CompanyName, &s.ContactPerson, &s.Phone, &s.Email, &s.Address)
	if err != nil {
		return nil, notFoundOr(err, "get supplier")
	}
	return &s, nil
}

func (r *SupplierRepo) List(ctx context.Context) ([]entity.Supplier, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, company_name, contact_person, phone, email, address
		FROM suppliers ORDER BY company_name COLLATE "C"`)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Supplier, error) {
		var s entity.Supplier
		err := row.Scan(&s.ID, &s.CompanyName, &s.ContactPerson, &s.Phone, &s.Email, &s.Address)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan supplier: %w", err)
	}
	return list, nil
}

// CategoryRepo categorías sobre PostgreSQL; el nombre es único.
type CategoryRepo struct {
	q Querier
}

func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx, `INSERT INTO categories (id, name) VALUES ($1, $2)`, c.ID, c.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(ctx, `SELECT id, name FROM categories WHERE id = $1`, id).Scan(&c.ID, &c.Name)
	if err != nil {
		return nil, notFoundOr(err, "get category")
	}
	return &c, nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]entity.Category, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name FROM categories ORDER BY name COLLATE "C"`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	list, err := pgx.CollectRows(rows, pgx.RowToStructByPos[entity.Category])
	if err != nil {
		return nil, fmt.Errorf("scan category: %w", err)
	}
	return list, nil
}
