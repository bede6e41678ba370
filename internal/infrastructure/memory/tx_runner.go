package memory

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/application/inventory"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción del ledger en memoria.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run bloquea las claves del alcance, ejecuta fn sobre un overlay y, si fn no falla,
// confirma todo el overlay de una vez bajo el lock de escritura del store.
func (r *TxRunner) Run(ctx context.Context, scope repository.LockScope, fn func(tx repository.LedgerTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	release := r.store.locks.acquire(lockKeys(scope))
	defer release()

	tx := newLedgerTx(r.store, scope)
	if err := fn(tx.repos()); err != nil {
		return err
	}
	return tx.commit()
}
