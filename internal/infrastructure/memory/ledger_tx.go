package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	ledger "github.com/jhoicas/Tienda-api/internal/domain/inventory"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// ledgerTx overlay de escrituras pendientes de una transacción. Nada de lo escrito aquí
// es visible fuera de la transacción hasta commit.
type ledgerTx struct {
	store *Store

	productScope map[string]struct{}
	poScope      string

	stock map[string]int // nuevo stock por producto mutado

	newSales       []entity.SalesOrder
	newPOs         map[string]entity.PurchaseOrder
	newPOIDs       []string
	poUpdates      map[string]entity.PurchaseOrder
	newAdjustments []entity.InventoryAdjustment
}

func newLedgerTx(store *Store, scope repository.LockScope) *ledgerTx {
	ps := make(map[string]struct{}, len(scope.ProductIDs))
	for _, id := range scope.ProductIDs {
		ps[id] = struct{}{}
	}
	return &ledgerTx{
		store:        store,
		productScope: ps,
		poScope:      scope.PurchaseOrderID,
		stock:        make(map[string]int),
		newPOs:       make(map[string]entity.PurchaseOrder),
		poUpdates:    make(map[string]entity.PurchaseOrder),
	}
}

func (t *ledgerTx) repos() repository.LedgerTx {
	return repository.LedgerTx{
		Products:       &txProductRepository{tx: t},
		Stock:          &txStockRepository{tx: t},
		Sales:          &txSalesOrderRepository{tx: t},
		PurchaseOrders: &txPurchaseOrderRepository{tx: t},
		Adjustments:    &txAdjustmentRepository{tx: t},
		Sequences:      NewSequenceRepository(t.store),
	}
}

// product vista del producto dentro de la transacción: confirmado + stock pendiente.
func (t *ledgerTx) product(id string) (entity.Product, bool) {
	t.store.mu.RLock()
	p, ok := t.store.products[id]
	t.store.mu.RUnlock()
	if !ok {
		return entity.Product{}, false
	}
	if s, ok := t.stock[id]; ok {
		p.Stock = s
	}
	return p, true
}

func (t *ledgerTx) purchaseOrder(id string) (entity.PurchaseOrder, bool) {
	if po, ok := t.poUpdates[id]; ok {
		return po.Clone(), true
	}
	if po, ok := t.newPOs[id]; ok {
		return po.Clone(), true
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	po, ok := t.store.pos[id]
	if !ok {
		return entity.PurchaseOrder{}, false
	}
	return po.Clone(), true
}

// commit valida primero todo lo que puede fallar y después aplica; nunca deja estado parcial.
func (t *ledgerTx) commit() error {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range t.newSales {
		if _, ok := s.salesByID[o.ID]; ok {
			return domain.ErrDuplicate
		}
	}
	for _, id := range t.newPOIDs {
		if _, ok := s.pos[id]; ok {
			return domain.ErrDuplicate
		}
	}

	now := s.now()
	for id, v := range t.stock {
		p := s.products[id]
		p.Stock = v
		p.UpdatedAt = now
		s.products[id] = p
	}
	for _, o := range t.newSales {
		_ = s.insertSaleLocked(o)
	}
	for _, id := range t.newPOIDs {
		_ = s.insertPOLocked(t.newPOs[id])
	}
	for id, po := range t.poUpdates {
		if _, isNew := t.newPOs[id]; isNew {
			continue
		}
		_ = s.applyPOStatusLocked(po)
	}
	s.adjustments = append(s.adjustments, t.newAdjustments...)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios atados a la transacción
// ──────────────────────────────────────────────────────────────────────────────

type txStockRepository struct{ tx *ledgerTx }

func stockOutOfRange(productID string) error {
	return fmt.Errorf("%w: stock de %s fuera de rango", domain.ErrInvalidInput, productID)
}

// MutateStock rechaza sin tocar nada un resultado negativo (StockError) o por encima de
// MaxQuantity (ErrInvalidInput).
func (r *txStockRepository) MutateStock(ctx context.Context, productID string, delta int) (int, error) {
	if _, ok := r.tx.productScope[productID]; !ok {
		return 0, domain.ErrLockScope
	}
	if delta > ledger.MaxQuantity || delta < -ledger.MaxQuantity {
		return 0, stockOutOfRange(productID)
	}
	p, ok := r.tx.product(productID)
	if !ok {
		return 0, domain.ErrNotFound
	}
	next := p.Stock + delta
	if next < 0 {
		return 0, &domain.StockError{ProductID: productID, Available: p.Stock, Requested: -delta}
	}
	if next > ledger.MaxQuantity {
		return 0, stockOutOfRange(productID)
	}
	r.tx.stock[productID] = next
	return next, nil
}

var _ repository.ProductReader = (*txProductRepository)(nil)

type txProductRepository struct{ tx *ledgerTx }

func (r *txProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, ok := r.tx.product(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *txProductRepository) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	r.tx.store.mu.RLock()
	id, ok := r.tx.store.productByCode[code]
	r.tx.store.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *txProductRepository) List(ctx context.Context) ([]entity.Product, error) {
	return r.list(nil), nil
}

func (r *txProductRepository) ListLowStock(ctx context.Context) ([]entity.Product, error) {
	return r.list(func(p entity.Product) bool { return p.Active && p.IsLowStock() }), nil
}

func (r *txProductRepository) list(filter func(entity.Product) bool) []entity.Product {
	base := r.tx.store.productsSnapshot(nil)
	out := make([]entity.Product, 0, len(base))
	for _, p := range base {
		if s, ok := r.tx.stock[p.ID]; ok {
			p.Stock = s
		}
		if filter == nil || filter(p) {
			out = append(out, p)
		}
	}
	return out
}

type txSalesOrderRepository struct{ tx *ledgerTx }

func (r *txSalesOrderRepository) Create(ctx context.Context, order *entity.SalesOrder) error {
	r.tx.newSales = append(r.tx.newSales, order.Clone())
	return nil
}

func (r *txSalesOrderRepository) GetByID(ctx context.Context, id string) (*entity.SalesOrder, error) {
	for _, o := range r.tx.newSales {
		if o.ID == id {
			c := o.Clone()
			return &c, nil
		}
	}
	return NewSalesOrderRepository(r.tx.store).GetByID(ctx, id)
}

func (r *txSalesOrderRepository) List(ctx context.Context, limit int) ([]entity.SalesOrder, error) {
	out := make([]entity.SalesOrder, 0, len(r.tx.newSales))
	for i := len(r.tx.newSales) - 1; i >= 0; i-- {
		out = append(out, r.tx.newSales[i].Clone())
	}
	out = append(out, r.tx.store.salesSnapshot(0)...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type txPurchaseOrderRepository struct{ tx *ledgerTx }

func (r *txPurchaseOrderRepository) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	if _, ok := r.tx.purchaseOrder(po.ID); ok {
		return domain.ErrDuplicate
	}
	r.tx.newPOs[po.ID] = po.Clone()
	r.tx.newPOIDs = append(r.tx.newPOIDs, po.ID)
	return nil
}

func (r *txPurchaseOrderRepository) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	po, ok := r.tx.purchaseOrder(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &po, nil
}

// GetForUpdate solo es válido para la orden declarada en el alcance de bloqueo.
func (r *txPurchaseOrderRepository) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	if id != r.tx.poScope {
		return nil, domain.ErrLockScope
	}
	return r.GetByID(ctx, id)
}

func (r *txPurchaseOrderRepository) UpdateStatus(ctx context.Context, po *entity.PurchaseOrder) error {
	cur, ok := r.tx.purchaseOrder(po.ID)
	if !ok {
		return domain.ErrNotFound
	}
	upd := po.Clone()
	cur.Status = upd.Status
	cur.ReceivedDate = upd.ReceivedDate
	cur.CancelledDate = upd.CancelledDate
	if _, isNew := r.tx.newPOs[po.ID]; isNew {
		r.tx.newPOs[po.ID] = cur
		return nil
	}
	r.tx.poUpdates[po.ID] = cur
	return nil
}

func (r *txPurchaseOrderRepository) List(ctx context.Context, status string) ([]entity.PurchaseOrder, error) {
	out := make([]entity.PurchaseOrder, 0)
	for i := len(r.tx.newPOIDs) - 1; i >= 0; i-- {
		po := r.tx.newPOs[r.tx.newPOIDs[i]]
		if status == "" || po.Status == status {
			out = append(out, po.Clone())
		}
	}
	for _, po := range r.tx.store.posSnapshot("") {
		if u, ok := r.tx.poUpdates[po.ID]; ok {
			po = u.Clone()
		}
		if status == "" || po.Status == status {
			out = append(out, po)
		}
	}
	return out, nil
}

type txAdjustmentRepository struct{ tx *ledgerTx }

func (r *txAdjustmentRepository) Create(ctx context.Context, adj *entity.InventoryAdjustment) error {
	r.tx.newAdjustments = append(r.tx.newAdjustments, *adj)
	return nil
}

func (r *txAdjustmentRepository) List(ctx context.Context) ([]entity.InventoryAdjustment, error) {
	out := make([]entity.InventoryAdjustment, 0, len(r.tx.newAdjustments))
	for i := len(r.tx.newAdjustments) - 1; i >= 0; i-- {
		out = append(out, r.tx.newAdjustments[i])
	}
	return append(out, r.tx.store.adjustmentsSnapshot()...), nil
}
