package inventory

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del ledger, pasando repositorios atados a esa tx.
// Bloquea en exclusiva las claves de scope antes de llamar a fn. Si fn devuelve error se descarta todo;
// si no, se confirma de forma atómica. Garantiza atomicidad para el motor de inventario.
type TxRunner interface {
	Run(ctx context.Context, scope repository.LockScope, fn func(tx repository.LedgerTx) error) error
}
