package repository

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Ninguna operación de este puerto modifica Stock salvo Create (stock inicial);
// el stock solo cambia por StockRepository.MutateStock.
type ProductRepository interface {
	ProductReader
	// Create registra el producto; su Stock actual pasa a ser también InitialStock.
	Create(ctx context.Context, product *entity.Product) error
	// Update actualiza datos maestros; ignora Stock e InitialStock.
	Update(ctx context.Context, product *entity.Product) error
}

// ProductReader lectura de productos. Es lo único que una transacción del ledger
// expone sobre products: dentro de ella el producto solo cambia vía MutateStock.
type ProductReader interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	// List devuelve todos los productos (con stock actual) ordenados por código.
	List(ctx context.Context) ([]entity.Product, error)
	// ListLowStock devuelve los productos activos con stock <= nivel de reorden.
	ListLowStock(ctx context.Context) ([]entity.Product, error)
}
