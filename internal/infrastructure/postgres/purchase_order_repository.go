package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo órdenes de compra y sus líneas. locked es la OC que la tx tiene
// bloqueada; vacío fuera de transacción.
type PurchaseOrderRepo struct {
	q      Querier
	locked string
}

// NewPurchaseOrderRepository construye el adaptador fuera de transacción.
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const purchaseOrderColumns = `id, po_number, supplier_id, supplier_name, order_date, status, created_by_id, total_amount, received_date, cancelled_date`

func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	b := &pgx.Batch{}
	b.Queue(`
		INSERT INTO purchase_orders (`+purchaseOrderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		po.ID, po.PONumber, po.SupplierID, po.SupplierName, po.OrderDate, po.Status,
		po.CreatedByID, po.TotalAmount, po.ReceivedDate, po.CancelledDate,
	)
	for i, it := range po.Items {
		b.Queue(`
			INSERT INTO purchase_order_items (purchase_order_id, line_no, product_id, product_name, quantity, unit_cost, line_total)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			po.ID, i+1, it.ProductID, it.ProductName, it.Quantity, it.UnitCost, it.LineTotal,
		)
	}
	if err := r.q.SendBatch(ctx, b).Close(); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.get(ctx, `SELECT `+purchaseOrderColumns+` FROM purchase_orders WHERE id = $1`, id)
}

// GetForUpdate solo vale para la OC declarada en el alcance de la transacción.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	if r.locked == "" || r.locked != id {
		return nil, domain.ErrLockScope
	}
	return r.get(ctx, `SELECT `+purchaseOrderColumns+` FROM purchase_orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *PurchaseOrderRepo) UpdateStatus(ctx context.Context, po *entity.PurchaseOrder) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE purchase_orders SET status = $2, received_date = $3, cancelled_date = $4
		WHERE id = $1`,
		po.ID, po.Status, po.ReceivedDate, po.CancelledDate,
	)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PurchaseOrderRepo) List(ctx context.Context, status string) ([]entity.PurchaseOrder, error) {
	return r.query(ctx, `
		SELECT `+purchaseOrderColumns+` FROM purchase_orders
		WHERE $1 = '' OR status = $1
		ORDER BY seq DESC`, status)
}

func (r *PurchaseOrderRepo) get(ctx context.Context, query, id string) (*entity.PurchaseOrder, error) {
	list, err := r.query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, domain.ErrNotFound
	}
	return &list[0], nil
}

func (r *PurchaseOrderRepo) query(ctx context.Context, query string, args ...any) ([]entity.PurchaseOrder, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.PurchaseOrder, error) {
		var po entity.PurchaseOrder
		err := row.Scan(&po.ID, &po.PONumber, &po.SupplierID, &po.SupplierName, &po.OrderDate,
			&po.Status, &po.CreatedByID, &po.TotalAmount, &po.ReceivedDate, &po.CancelledDate)
		return po, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan purchase order: %w", err)
	}
	if len(list) == 0 {
		return []entity.PurchaseOrder{}, nil
	}

	ids := make([]string, len(list))
	index := make(map[string]int, len(list))
	for i, po := range list {
		ids[i] = po.ID
		index[po.ID] = i
	}
	itemRows, err := r.q.Query(ctx, `
		SELECT purchase_order_id, product_id, product_name, quantity, unit_cost, line_total
		FROM purchase_order_items WHERE purchase_order_id = ANY($1)
		ORDER BY purchase_order_id, line_no`, ids)
	if err != nil {
		return nil, fmt.Errorf("list purchase order items: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var poID string
		var it entity.PurchaseOrderItem
		if err := itemRows.Scan(&poID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitCost, &it.LineTotal); err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		i := index[poID]
		list[i].Items = append(list[i].Items, it)
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}
