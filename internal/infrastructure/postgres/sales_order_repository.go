package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)

// SalesOrderRepo ventas y sus líneas (usable con pool o tx).
type SalesOrderRepo struct {
	q Querier
}

// NewSalesOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesOrderRepository(q Querier) *SalesOrderRepo {
	return &SalesOrderRepo{q: q}
}

const salesOrderColumns = `id, invoice_number, date_time, cashier_id, subtotal, tax, total, amount_paid, change_due`

// Create persiste cabecera y líneas en un solo batch.
func (r *SalesOrderRepo) Create(ctx context.Context, order *entity.SalesOrder) error {
	b := &pgx.Batch{}
	b.Queue(`
		INSERT INTO sales_orders (`+salesOrderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		order.ID, order.InvoiceNumber, order.DateTime, order.CashierID,
		order.Subtotal, order.Tax, order.Total, order.AmountPaid, order.Change,
	)
	for i, it := range order.Items {
		b.Queue(`
			INSERT INTO sales_order_items (sales_order_id, line_no, product_id, product_name, quantity, unit_price, line_total)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			order.ID, i+1, it.ProductID, it.ProductName, it.Quantity, it.UnitPrice, it.LineTotal,
		)
	}
	if err := r.q.SendBatch(ctx, b).Close(); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sales order: %w", err)
	}
	return nil
}

// GetByID obtiene una venta con sus líneas.
func (r *SalesOrderRepo) GetByID(ctx context.Context, id string) (*entity.SalesOrder, error) {
	orders, err := r.query(ctx, `SELECT `+salesOrderColumns+` FROM sales_orders WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, domain.ErrNotFound
	}
	return &orders[0], nil
}

func (r *SalesOrderRepo) List(ctx context.Context, limit int) ([]entity.SalesOrder, error) {
	return r.query(ctx, `
		SELECT `+salesOrderColumns+` FROM sales_orders
		ORDER BY seq DESC LIMIT $1`, limitArg(limit))
}

func (r *SalesOrderRepo) query(ctx context.Context, query string, args ...any) ([]entity.SalesOrder, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales orders: %w", err)
	}
	orders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.SalesOrder, error) {
		var o entity.SalesOrder
		err := row.Scan(&o.ID, &o.InvoiceNumber, &o.DateTime, &o.CashierID,
			&o.Subtotal, &o.Tax, &o.Total, &o.AmountPaid, &o.Change)
		return o, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan sales order: %w", err)
	}
	if len(orders) == 0 {
		return []entity.SalesOrder{}, nil
	}

	ids := make([]string, len(orders))
	index := make(map[string]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		index[o.ID] = i
	}
	itemRows, err := r.q.Query(ctx, `
		SELECT sales_order_id, product_id, product_name, quantity, unit_price, line_total
		FROM sales_order_items WHERE sales_order_id = ANY($1)
		ORDER BY sales_order_id, line_no`, ids)
	if err != nil {
		return nil, fmt.Errorf("list sales order items: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var orderID string
		var it entity.SalesOrderItem
		if err := itemRows.Scan(&orderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice, &it.LineTotal); err != nil {
			return nil, fmt.Errorf("scan sales order item: %w", err)
		}
		i := index[orderID]
		orders[i].Items = append(orders[i].Items, it)
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}
