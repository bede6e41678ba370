package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Tienda-api/internal/domain"
	ledger "github.com/jhoicas/Tienda-api/internal/domain/inventory"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo única escritura de products.stock. Solo lo construye TxRunner, con la tx
// y los productos que esa tx tiene bloqueados.
type StockRepo struct {
	q     Querier
	scope map[string]struct{}
}

func newStockRepository(q Querier, productIDs []string) *StockRepo {
	scope := make(map[string]struct{}, len(productIDs))
	for _, id := range productIDs {
		scope[id] = struct{}{}
	}
	return &StockRepo{q: q, scope: scope}
}

// MutateStock suma delta al stock. La condición 0 <= stock + delta <= MaxQuantity va en
// el mismo UPDATE, así que un rechazo no deja la fila modificada. La suma se hace en
// BIGINT para que un desborde de INTEGER sea un rechazo y no un error de SQL.
func (r *StockRepo) MutateStock(ctx context.Context, productID string, delta int) (int, error) {
	if _, ok := r.scope[productID]; !ok {
		return 0, domain.ErrLockScope
	}
	if delta > ledger.MaxQuantity || delta < -ledger.MaxQuantity {
		return 0, stockOutOfRange(productID)
	}
	var stock int
	err := r.q.QueryRow(ctx, `
		UPDATE products SET stock = (stock::BIGINT + $2::BIGINT)::INTEGER
		WHERE id = $1 AND stock::BIGINT + $2::BIGINT BETWEEN 0 AND $3
		RETURNING stock`, productID, int64(delta), int64(ledger.MaxQuantity),
	).Scan(&stock)
	if err == nil {
		return stock, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("mutate stock: %w", err)
	}

	err = r.q.QueryRow(ctx, `SELECT stock FROM products WHERE id = $1`, productID).Scan(&stock)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, domain.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get stock: %w", err)
	}
	if delta > 0 {
		return 0, stockOutOfRange(productID)
	}
	return 0, &domain.StockError{ProductID: productID, Available: stock, Requested: -delta}
}

func stockOutOfRange(productID string) error {
	return fmt.Errorf("%w: stock de %s fuera de rango", domain.ErrInvalidInput, productID)
}
