package sales

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

// SaleLine línea del carrito.
type SaleLine struct {
	ProductID string
	Quantity  int
}

// SaleInput entrada de ProcessSale.
type SaleInput struct {
	Lines          []SaleLine
	CashierID      string
	AmountTendered decimal.Decimal
}

// ProcessSaleUseCase registra ventas de punto de venta: valida el carrito, descuenta stock
// y persiste la venta en una sola transacción del ledger.
type ProcessSaleUseCase struct {
	txRunner  inventory.TxRunner
	salesRepo repository.SalesOrderRepository
	taxRate   decimal.Decimal
	log       zerolog.Logger
	now       func() time.Time
}

// NewProcessSaleUseCase construye el caso de uso. taxRate es la tasa de IVA (ej. 0.12).
func NewProcessSaleUseCase(
	txRunner inventory.TxRunner,
	salesRepo repository.SalesOrderRepository,
	taxRate decimal.Decimal,
	log zerolog.Logger,
) *ProcessSaleUseCase {
	return &ProcessSaleUseCase{
		txRunner:  txRunner,
		salesRepo: salesRepo,
		taxRate:   taxRate,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ProcessSale vende el carrito completo o nada.
// Orden: validar, bloquear productos, resolver precios, verificar pago, numerar, descontar, persistir.
// El número de factura se pide después de verificar el pago; si un descuento falla, ese número se pierde.
func (uc *ProcessSaleUseCase) ProcessSale(ctx context.Context, in SaleInput) (*entity.SalesOrder, error) {
	if in.CashierID == "" || in.AmountTendered.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	raw := make([]ledger.QuantityLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		raw = append(raw, ledger.QuantityLine{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	lines, err := ledger.MergeQuantityLines(raw)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}

	var order *entity.SalesOrder
	err = uc.txRunner.Run(ctx, repository.LockScope{ProductIDs: ids}, func(tx repository.LedgerTx) error {
		items := make([]entity.SalesOrderItem, 0, len(lines))
		lineTotals := make([]decimal.Decimal, 0, len(lines))
		for _, l := range lines {
			p, err := tx.Products.GetByID(ctx, l.ProductID)
			if err != nil {
				return err
			}
			if !p.Active {
				return domain.ErrInvalidInput
			}
			lt := ledger.LineTotal(l.Quantity, p.UnitPrice)
			items = append(items, entity.SalesOrderItem{
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    l.Quantity,
				UnitPrice:   p.UnitPrice,
				LineTotal:   lt,
			})
			lineTotals = append(lineTotals, lt)
		}

		totals := ledger.ComputeSaleTotals(lineTotals, uc.taxRate)
		if in.AmountTendered.LessThan(totals.Total) {
			return domain.ErrInsufficientPayment
		}

		n, err := tx.Sequences.NextInvoiceNumber(ctx)
		if err != nil {
			return err
		}

		for _, it := range items {
			if _, err := tx.Stock.MutateStock(ctx, it.ProductID, -it.Quantity); err != nil {
				return err
			}
		}

		o := &entity.SalesOrder{
			ID:            uuid.New().String(),
			InvoiceNumber: ledger.FormatInvoiceNumber(n),
			DateTime:      uc.now(),
			CashierID:     in.CashierID,
			Items:         items,
			Subtotal:      totals.Subtotal,
			Tax:           totals.Tax,
			Total:         totals.Total,
			AmountPaid:    in.AmountTendered,
			Change:        in.AmountTendered.Sub(totals.Total),
		}
		if err := tx.Sales.Create(ctx, o); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("invoice", order.InvoiceNumber).
		Str("cashier_id", order.CashierID).
		Int("lines", len(order.Items)).
		Str("total", order.Total.StringFixed(ledger.CurrencyPlaces)).
		Msg("venta registrada")
	return order, nil
}

// GetSale obtiene una venta por ID.
func (uc *ProcessSaleUseCase) GetSale(ctx context.Context, id string) (*entity.SalesOrder, error) {
	return uc.salesRepo.GetByID(ctx, id)
}

// ListSales lista ventas de la más reciente a la más antigua.
func (uc *ProcessSaleUseCase) ListSales(ctx context.Context, limit int) ([]entity.SalesOrder, error) {
	return uc.salesRepo.List(ctx, limit)
}
