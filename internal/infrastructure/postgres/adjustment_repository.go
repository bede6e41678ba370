package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

// AdjustmentRepo historial de ajustes manuales (solo inserción).
type AdjustmentRepo struct {
	q Querier
}

// NewAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

func (r *AdjustmentRepo) Create(ctx context.Context, adj *entity.InventoryAdjustment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_adjustments (id, product_id, product_name, adjustment_date, quantity_change, reason, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		adj.ID, adj.ProductID, adj.ProductName, adj.AdjustmentDate, adj.QuantityChange, adj.Reason, adj.UserID,
	)
	if err != nil {
		return fmt.Errorf("insert adjustment: %w", err)
	}
	return nil
}

func (r *AdjustmentRepo) List(ctx context.Context) ([]entity.InventoryAdjustment, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, product_id, product_name, adjustment_date, quantity_change, reason, user_id
		FROM inventory_adjustments ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.InventoryAdjustment, error) {
		var a entity.InventoryAdjustment
		err := row.Scan(&a.ID, &a.ProductID, &a.ProductName, &a.AdjustmentDate, &a.QuantityChange, &a.Reason, &a.UserID)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan adjustment: %w", err)
	}
	return list, nil
}
