// Package memory implementa el ledger de la tienda en proceso: mapas indexados por ID,
// un mutex por clave para serializar mutaciones y confirmación atómica bajo el RWMutex del store.
package memory

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// Options parámetros del store.
type Options struct {
	InvoiceBase int64 // la primera factura es InvoiceBase+1
	POBase      int64 // la primera orden de compra es POBase+1
}

// Store estado completo del ledger en memoria. Se inyecta explícitamente en los repositorios.
type Store struct {
	mu sync.RWMutex

	products      map[string]entity.Product
	productByCode map[string]string
	suppliers     map[string]entity.Supplier
	categories    map[string]entity.Category
	users         map[string]entity.User
	userByName    map[string]string

	sales       []entity.SalesOrder // orden de inserción
	salesByID   map[string]int
	pos         map[string]entity.PurchaseOrder
	poOrder     []string // orden de inserción
	adjustments []entity.InventoryAdjustment

	invoiceBase int64
	poBase      int64
	invoiceSeq  atomic.Int64
	poSeq       atomic.Int64

	locks *keyLocks
	now   func() time.Time
}

// NewStore crea un store vacío.
func NewStore(opts Options) *Store {
	return &Store{
		products:      make(map[string]entity.Product),
		productByCode: make(map[string]string),
		suppliers:     make(map[string]entity.Supplier),
		categories:    make(map[string]entity.Category),
		users:         make(map[string]entity.User),
		userByName:    make(map[string]string),
		salesByID:     make(map[string]int),
		pos:           make(map[string]entity.PurchaseOrder),
		invoiceBase:   opts.InvoiceBase,
		poBase:        opts.POBase,
		locks:         newKeyLocks(),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// insertProductLocked requiere s.mu en escritura.
func (s *Store) insertProductLocked(p entity.Product) error {
	if _, ok := s.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	if _, ok := s.productByCode[p.Code]; ok {
		return domain.ErrDuplicate
	}
	p.InitialStock = p.Stock
	s.products[p.ID] = p
	s.productByCode[p.Code] = p.ID
	return nil
}

// checkProductUpdateLocked valida que el producto exista y que el código siga siendo único.
func (s *Store) checkProductUpdateLocked(p entity.Product) error {
	if _, ok := s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	if owner, ok := s.productByCode[p.Code]; ok && owner != p.ID {
		return domain.ErrDuplicate
	}
	return nil
}

// applyProductUpdateLocked copia solo los datos maestros; Stock e InitialStock no se tocan.
func (s *Store) applyProductUpdateLocked(p entity.Product) {
	cur := s.products[p.ID]
	if cur.Code != p.Code {
		delete(s.productByCode, cur.Code)
		s.productByCode[p.Code] = p.ID
	}
	cur.Code = p.Code
	cur.Name = p.Name
	cur.CategoryID = p.CategoryID
	cur.SupplierID = p.SupplierID
	cur.UnitPrice = p.UnitPrice
	cur.ReorderLevel = p.ReorderLevel
	cur.Active = p.Active
	cur.UpdatedAt = p.UpdatedAt
	s.products[p.ID] = cur
}

func (s *Store) insertSaleLocked(o entity.SalesOrder) error {
	if _, ok := s.salesByID[o.ID]; ok {
		return domain.ErrDuplicate
	}
	s.salesByID[o.ID] = len(s.sales)
	s.sales = append(s.sales, o.Clone())
	return nil
}

func (s *Store) insertPOLocked(po entity.PurchaseOrder) error {
	if _, ok := s.pos[po.ID]; ok {
		return domain.ErrDuplicate
	}
	s.pos[po.ID] = po.Clone()
	s.poOrder = append(s.poOrder, po.ID)
	return nil
}

// applyPOStatusLocked persiste solo el estado y sus fechas; las líneas son inmutables.
func (s *Store) applyPOStatusLocked(po entity.PurchaseOrder) error {
	cur, ok := s.pos[po.ID]
	if !ok {
		return domain.ErrNotFound
	}
	upd := po.Clone()
	cur.Status = upd.Status
	cur.ReceivedDate = upd.ReceivedDate
	cur.CancelledDate = upd.CancelledDate
	s.pos[po.ID] = cur
	return nil
}

func (s *Store) productsSnapshot(filter func(entity.Product) bool) []entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Product, 0, len(s.products))
	for _, p := range s.products {
		if filter == nil || filter(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func (s *Store) salesSnapshot(limit int) []entity.SalesOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.sales)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]entity.SalesOrder, 0, n)
	for i := len(s.sales) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.sales[i].Clone())
	}
	return out
}

func (s *Store) posSnapshot(status string) []entity.PurchaseOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.PurchaseOrder, 0, len(s.poOrder))
	for i := len(s.poOrder) - 1; i >= 0; i-- {
		po := s.pos[s.poOrder[i]]
		if status != "" && po.Status != status {
			continue
		}
		out = append(out, po.Clone())
	}
	return out
}

func (s *Store) adjustmentsSnapshot() []entity.InventoryAdjustment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.InventoryAdjustment, 0, len(s.adjustments))
	for i := len(s.adjustments) - 1; i >= 0; i-- {
		out = append(out, s.adjustments[i])
	}
	return out
}
