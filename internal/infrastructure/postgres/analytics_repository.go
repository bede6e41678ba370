package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para reportes y tablero.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// UnitsSoldByProduct agrupa por el nombre guardado en la línea de venta, no por el
// nombre actual del producto.
func (r *AnalyticsRepo) UnitsSoldByProduct(ctx context.Context) ([]repository.UnitsSoldResult, error) {
	const query = `
	SELECT
	    d.product_name        AS product_name,
	    SUM(d.quantity)::INT  AS units_sold
	FROM sales_order_items d
	GROUP BY d.product_name
	ORDER BY units_sold DESC, d.product_name COLLATE "C" ASC`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.UnitsSoldByProduct: %w", err)
	}
	defer rows.Close()

	results := []repository.UnitsSoldResult{}
	for rows.Next() {
		var row repository.UnitsSoldResult
		if err := rows.Scan(&row.ProductName, &row.UnitsSold); err != nil {
			return nil, fmt.Errorf("analytics.UnitsSoldByProduct scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetDashboardMetrics ventas del rango [from, to) y contadores actuales del catálogo.
func (r *AnalyticsRepo) GetDashboardMetrics(ctx context.Context, from, to time.Time) (repository.DashboardMetrics, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*)             FROM sales_orders WHERE date_time >= $1 AND date_time < $2) AS sales_count,
	    (SELECT COALESCE(SUM(total), 0) FROM sales_orders WHERE date_time >= $1 AND date_time < $2) AS revenue,
	    (SELECT COUNT(*)             FROM products)                                         AS total_products,
	    (SELECT COUNT(*)             FROM products WHERE active AND stock <= reorder_level)  AS low_stock,
	    (SELECT COUNT(*)             FROM purchase_orders WHERE status = 'Pending')           AS pending_pos`

	var m repository.DashboardMetrics
	err := r.q.QueryRow(ctx, query, from, to).Scan(
		&m.SalesCount,
		&m.Revenue,
		&m.TotalProducts,
		&m.LowStockCount,
		&m.PendingPOCount,
	)
	if err != nil {
		return repository.DashboardMetrics{}, fmt.Errorf("analytics.GetDashboardMetrics: %w", err)
	}
	return m, nil
}
