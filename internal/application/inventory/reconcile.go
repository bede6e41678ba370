package inventory

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// StockDiscrepancy producto cuyo stock guardado no coincide con
// InitialStock + ajustes − vendido + recibido.
type StockDiscrepancy struct {
	ProductID string
	Code      string
	Initial   int
	Adjusted  int
	Sold      int
	Received  int
	Expected  int
	Actual    int
}

// ReconcileUseCase recalcula el stock de cada producto a partir de los tres historiales.
type ReconcileUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewReconcileUseCase construye el caso de uso.
func NewReconcileUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *ReconcileUseCase {
	return &ReconcileUseCase{txRunner: txRunner, productRepo: productRepo}
}

// Reconcile bloquea todos los productos conocidos para leer una foto consistente
// y devuelve los que no cuadran. Lista vacía = ledger consistente. Un producto creado
// después de tomar el alcance no está bloqueado y queda para la próxima conciliación.
func (uc *ReconcileUseCase) Reconcile(ctx context.Context) ([]StockDiscrepancy, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(products))
	locked := make(map[string]struct{}, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
		locked[p.ID] = struct{}{}
	}

	out := []StockDiscrepancy{}
	err = uc.txRunner.Run(ctx, repository.LockScope{ProductIDs: ids}, func(tx repository.LedgerTx) error {
		adjusted := map[string]int{}
		sold := map[string]int{}
		received := map[string]int{}

		adjs, err := tx.Adjustments.List(ctx)
		if err != nil {
			return err
		}
		for _, a := range adjs {
			adjusted[a.ProductID] += a.QuantityChange
		}
		orders, err := tx.Sales.List(ctx, 0)
		if err != nil {
			return err
		}
		for _, o := range orders {
			for _, it := range o.Items {
				sold[it.ProductID] += it.Quantity
			}
		}
		pos, err := tx.PurchaseOrders.List(ctx, entity.POStatusReceived)
		if err != nil {
			return err
		}
		for _, po := range pos {
			for _, it := range po.Items {
				received[it.ProductID] += it.Quantity
			}
		}

		current, err := tx.Products.List(ctx)
		if err != nil {
			return err
		}
		for _, p := range current {
			if _, ok := locked[p.ID]; !ok {
				continue
			}
			expected := p.InitialStock + adjusted[p.ID] - sold[p.ID] + received[p.ID]
			if expected == p.Stock {
				continue
			}
			out = append(out, StockDiscrepancy{
				ProductID: p.ID,
				Code:      p.Code,
				Initial:   p.InitialStock,
				Adjusted:  adjusted[p.ID],
				Sold:      sold[p.ID],
				Received:  received[p.ID],
				Expected:  expected,
				Actual:    p.Stock,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
