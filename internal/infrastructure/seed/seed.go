// Package seed carga el catálogo de demostración de la tienda (usuarios, categorías,
// proveedores y productos) a través de los puertos de repositorio, en memoria o en PostgreSQL.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// DefaultPassword contraseña de los usuarios demo si no se configura otra.
const DefaultPassword = "password"

// Targets repositorios donde se escribe el catálogo.
type Targets struct {
	Users      repository.UserRepository
	Categories repository.CategoryRepository
	Suppliers  repository.SupplierRepository
	Products   repository.ProductRepository
}

// Users usuarios demo (la contraseña se asigna al cargar).
func Users() []entity.User {
	return []entity.User{
		{ID: "u1", Username: "admin", FullName: "Kirk John Gabo", Role: entity.RoleAdmin},
		{ID: "u2", Username: "cashier", FullName: "Owen Sanchez", Role: entity.RoleCashier},
		{ID: "u3", Username: "clerk", FullName: "Jovi Leo Pacto", Role: entity.RoleInventoryClerk},
	}
}

func Categories() []entity.Category {
	return []entity.Category{
		{ID: "c1", Name: "Electronics"},
		{ID: "c2", Name: "Groceries"},
		{ID: "c3", Name: "Apparel"},
	}
}

func Suppliers() []entity.Supplier {
	return []entity.Supplier{
		{
			ID:            "s1",
			CompanyName:   "Palawan Tech Solutions",
			ContactPerson: "Marco Dela Serna",
			Phone:         "0917 123 4567",
			Email:         "marco@palawantech.ph",
			Address:       "Unit 4, North Road, Brgy. San Pedro, Puerto Princesa City, Palawan",
		},
		{
			ID:            "s2",
			CompanyName:   "Puerto Princesa Trading",
			ContactPerson: "Richo Baterzal",
			Phone:         "0918 987 6543",
			Email:         "richo@puertotrading.ph",
			Address:       "Rizal Avenue, Brgy. San Miguel, Puerto Princesa City, Palawan",
		},
	}
}

// Products catálogo inicial con su stock de apertura.
func Products() []entity.Product {
	p := func(id, code, name, cat, sup, price string, stock, reorder int) entity.Product {
		return entity.Product{
			ID: id, Code: code, Name: name, CategoryID: cat, SupplierID: sup,
			UnitPrice: decimal.RequireFromString(price), Stock: stock, InitialStock: stock,
			ReorderLevel: reorder, Active: true,
		}
	}
	return []entity.Product{
		p("p1", "E001", "Wireless Mouse", "c1", "s1", "250.00", 50, 10),
		p("p2", "E002", "Mechanical Keyboard", "c1", "s1", "1850.00", 5, 15),
		p("p3", "G001", "Organic Coffee Beans", "c2", "s2", "450.00", 100, 20),
		p("p4", "A001", "Cotton T-Shirt", "c3", "s2", "350.00", 30, 10),
		p("p5", "E003", "USB-C Cable", "c1", "s1", "150.00", 200, 50),
	}
}

// Load escribe el catálogo. Es idempotente: los registros que ya existen se omiten.
func Load(ctx context.Context, t Targets, password string, log zerolog.Logger) error {
	if password == "" {
		password = DefaultPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}
	now := time.Now().UTC()

	created := 0
	for _, u := range Users() {
		u.PasswordHash = string(hash)
		u.CreatedAt = now
		ok, err := skipDuplicate(t.Users.Create(ctx, &u))
		if err != nil {
			return fmt.Errorf("seed user %s: %w", u.Username, err)
		}
		created += ok
	}
	for _, c := range Categories() {
		ok, err := skipDuplicate(t.Categories.Create(ctx, &c))
		if err != nil {
			return fmt.Errorf("seed category %s: %w", c.Name, err)
		}
		created += ok
	}
	for _, s := range Suppliers() {
		ok, err := skipDuplicate(t.Suppliers.Create(ctx, &s))
		if err != nil {
			return fmt.Errorf("seed supplier %s: %w", s.CompanyName, err)
		}
		created += ok
	}
	for _, p := range Products() {
		p.CreatedAt, p.UpdatedAt = now, now
		ok, err := skipDuplicate(t.Products.Create(ctx, &p))
		if err != nil {
			return fmt.Errorf("seed product %s: %w", p.Code, err)
		}
		created += ok
	}
	log.Info().Int("created", created).Msg("catálogo demo cargado")
	return nil
}

func skipDuplicate(err error) (int, error) {
	if err == nil {
		return 1, nil
	}
	if errors.Is(err, domain.ErrDuplicate) {
		return 0, nil
	}
	return 0, err
}
