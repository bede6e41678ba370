package purchasing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/application/inventory"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	ledger "github.com/jhoicas/Tienda-api/internal/domain/inventory"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// POLine línea solicitada al proveedor.
type POLine struct {
	ProductID string
	Quantity  int
	UnitCost  decimal.Decimal
}

// CreatePOInput entrada de CreatePurchaseOrder.
type CreatePOInput struct {
	SupplierID  string
	Lines       []POLine
	CreatedByID string
}

// PurchaseOrderUseCase ciclo de vida de las órdenes de compra:
// Pending → Received (suma stock) | Pending → Cancelled (sin efecto en stock).
type PurchaseOrderUseCase struct {
	txRunner     inventory.TxRunner
	poRepo       repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	log          zerolog.Logger
	now          func() time.Time
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(
	txRunner inventory.TxRunner,
	poRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	log zerolog.Logger,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{
		txRunner:     txRunner,
		poRepo:       poRepo,
		supplierRepo: supplierRepo,
		log:          log,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// CreatePurchaseOrder registra una orden Pending. No toca stock.
// Líneas repetidas del mismo producto se fusionan si el costo coincide; si no, ErrInvalidInput.
func (uc *PurchaseOrderUseCase) CreatePurchaseOrder(ctx context.Context, in CreatePOInput) (*entity.PurchaseOrder, error) {
	if in.SupplierID == "" || in.CreatedByID == "" {
		return nil, domain.ErrInvalidInput
	}
	raw := make([]ledger.CostLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		raw = append(raw, ledger.CostLine{ProductID: l.ProductID, Quantity: l.Quantity, UnitCost: l.UnitCost})
	}
	lines, err := ledger.MergeCostLines(raw)
	if err != nil {
		return nil, err
	}
	for _, l := range lines {
		if !ledger.HasCurrencyPrecision(l.UnitCost) {
			return nil, domain.ErrInvalidInput
		}
	}
	supplier, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}

	var po *entity.PurchaseOrder
	err = uc.txRunner.Run(ctx, repository.LockScope{}, func(tx repository.LedgerTx) error {
		items := make([]entity.PurchaseOrderItem, 0, len(lines))
		total := decimal.Zero
		for _, l := range lines {
			p, err := tx.Products.GetByID(ctx, l.ProductID)
			if err != nil {
				return err
			}
			lt := ledger.LineTotal(l.Quantity, l.UnitCost)
			items = append(items, entity.PurchaseOrderItem{
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    l.Quantity,
				UnitCost:    l.UnitCost,
				LineTotal:   lt,
			})
			total = total.Add(lt)
		}

		n, err := tx.Sequences.NextPONumber(ctx)
		if err != nil {
			return err
		}
		o := &entity.PurchaseOrder{
			ID:           uuid.New().String(),
			PONumber:     ledger.FormatPONumber(n),
			SupplierID:   supplier.ID,
			SupplierName: supplier.CompanyName,
			OrderDate:    uc.now(),
			Status:       entity.POStatusPending,
			CreatedByID:  in.CreatedByID,
			Items:        items,
			TotalAmount:  total,
		}
		if err := tx.PurchaseOrders.Create(ctx, o); err != nil {
			return err
		}
		po = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("po", po.PONumber).
		Str("supplier_id", po.SupplierID).
		Str("created_by", po.CreatedByID).
		Int("lines", len(po.Items)).
		Msg("orden de compra creada")
	return po, nil
}

// ReceivePurchaseOrder recibe la mercancía de una orden Pending: suma stock por línea y marca Received,
// todo en una transacción. Recibir una orden ya Received devuelve el registro sin efecto.
func (uc *PurchaseOrderUseCase) ReceivePurchaseOrder(ctx context.Context, poID string) (*entity.PurchaseOrder, error) {
	// Las líneas son inmutables: se leen fuera del lock para conocer el alcance.
	current, err := uc.poRepo.GetByID(ctx, poID)
	if err != nil {
		return nil, err
	}
	switch current.Status {
	case entity.POStatusReceived:
		return current, nil
	case entity.POStatusCancelled:
		return nil, domain.ErrInvalidStateTransition
	}

	var po *entity.PurchaseOrder
	applied := false
	scope := repository.LockScope{PurchaseOrderID: poID, ProductIDs: current.ProductIDs()}
	err = uc.txRunner.Run(ctx, scope, func(tx repository.LedgerTx) error {
		o, err := tx.PurchaseOrders.GetForUpdate(ctx, poID)
		if err != nil {
			return err
		}
		switch o.Status {
		case entity.POStatusReceived:
			po = o
			return nil
		case entity.POStatusCancelled:
			return domain.ErrInvalidStateTransition
		}
		for _, it := range o.Items {
			if _, err := tx.Stock.MutateStock(ctx, it.ProductID, it.Quantity); err != nil {
				return err
			}
		}
		now := uc.now()
		o.Status = entity.POStatusReceived
		o.ReceivedDate = &now
		if err := tx.PurchaseOrders.UpdateStatus(ctx, o); err != nil {
			return err
		}
		po = o
		applied = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if applied {
		uc.log.Info().
			Str("po", po.PONumber).
			Int("lines", len(po.Items)).
			Msg("orden de compra recibida")
	}
	return po, nil
}

// CancelPurchaseOrder cancela una orden Pending. Cancelar una orden ya Cancelled no hace nada;
// una orden Received no se puede cancelar.
func (uc *PurchaseOrderUseCase) CancelPurchaseOrder(ctx context.Context, poID string) (*entity.PurchaseOrder, error) {
	var po *entity.PurchaseOrder
	applied := false
	err := uc.txRunner.Run(ctx, repository.LockScope{PurchaseOrderID: poID}, func(tx repository.LedgerTx) error {
		o, err := tx.PurchaseOrders.GetForUpdate(ctx, poID)
		if err != nil {
			return err
		}
		switch o.Status {
		case entity.POStatusCancelled:
			po = o
			return nil
		case entity.POStatusReceived:
			return domain.ErrInvalidStateTransition
		}
		now := uc.now()
		o.Status = entity.POStatusCancelled
		o.CancelledDate = &now
		if err := tx.PurchaseOrders.UpdateStatus(ctx, o); err != nil {
			return err
		}
		po = o
		applied = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if applied {
		uc.log.Info().Str("po", po.PONumber).Msg("orden de compra cancelada")
	}
	return po, nil
}

// GetPurchaseOrder obtiene una orden por ID.
func (uc *PurchaseOrderUseCase) GetPurchaseOrder(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return uc.poRepo.GetByID(ctx, id)
}

// ListPurchaseOrders lista órdenes de la más reciente a la más antigua. status vacío = todas.
func (uc *PurchaseOrderUseCase) ListPurchaseOrders(ctx context.Context, status string) ([]entity.PurchaseOrder, error) {
	switch status {
	case "", entity.POStatusPending, entity.POStatusReceived, entity.POStatusCancelled:
	default:
		return nil, domain.ErrInvalidInput
	}
	return uc.poRepo.List(ctx, status)
}
