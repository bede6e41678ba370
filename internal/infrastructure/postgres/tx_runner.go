package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Tienda-api/internal/application/inventory"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// Options bases de numeración de facturas y órdenes de compra; las aplica AlignSequences.
type Options struct {
	InvoiceBase int64
	POBase      int64
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, bloquea las filas del alcance (OC primero, luego productos
// por ID ascendente), ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, scope repository.LockScope, fn func(tx repository.LedgerTx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if scope.PurchaseOrderID != "" {
		if _, err := tx.Exec(ctx, `SELECT id FROM purchase_orders WHERE id = $1 FOR UPDATE`, scope.PurchaseOrderID); err != nil {
			return fmt.Errorf("lock purchase order: %w", err)
		}
	}
	productIDs := sortedUnique(scope.ProductIDs)
	if len(productIDs) > 0 {
		if _, err := tx.Exec(ctx, `SELECT id FROM products WHERE id = ANY($1) ORDER BY id FOR UPDATE`, productIDs); err != nil {
			return fmt.Errorf("lock products: %w", err)
		}
	}

	ledger := repository.LedgerTx{
		Products:       NewProductRepository(tx),
		Stock:          newStockRepository(tx, productIDs),
		Sales:          NewSalesOrderRepository(tx),
		PurchaseOrders: &PurchaseOrderRepo{q: tx, locked: scope.PurchaseOrderID},
		Adjustments:    NewAdjustmentRepository(tx),
		Sequences:      NewSequenceRepository(tx),
	}
	if err := fn(ledger); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func sortedUnique(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
