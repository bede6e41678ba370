package repository

import "context"

// StockRepository es la primitiva única de mutación de stock del ledger.
// Solo existe atada a una transacción (TxRunner.Run) y solo para productos dentro
// del alcance de bloqueo de esa transacción.
type StockRepository interface {
	// MutateStock aplica delta al stock del producto y devuelve el nuevo valor.
	// ErrNotFound si el producto no existe; *domain.StockError (ErrInsufficientStock)
	// si delta < 0 y el stock no alcanza; ErrInvalidInput si |delta| o el resultado superan
	// inventory.MaxQuantity. En error no hay cambios.
	MutateStock(ctx context.Context, productID string, delta int) (int, error)
}
