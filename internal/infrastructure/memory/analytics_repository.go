package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepository)(nil)

// AnalyticsRepository agregados de solo lectura sobre una foto del store.
type AnalyticsRepository struct {
	store *Store
}

func NewAnalyticsRepository(store *Store) *AnalyticsRepository {
	return &AnalyticsRepository{store: store}
}

func (r *AnalyticsRepository) UnitsSoldByProduct(ctx context.Context) ([]repository.UnitsSoldResult, error) {
	r.store.mu.RLock()
	totals := make(map[string]int)
	for _, o := range r.store.sales {
		for _, it := range o.Items {
			totals[it.ProductName] += it.Quantity
		}
	}
	r.store.mu.RUnlock()

	out := make([]repository.UnitsSoldResult, 0, len(totals))
	for name, qty := range totals {
		out = append(out, repository.UnitsSoldResult{ProductName: name, UnitsSold: qty})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UnitsSold != out[j].UnitsSold {
			return out[i].UnitsSold > out[j].UnitsSold
		}
		return out[i].ProductName < out[j].ProductName
	})
	return out, nil
}

func (r *AnalyticsRepository) GetDashboardMetrics(ctx context.Context, from, to time.Time) (repository.DashboardMetrics, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	m := repository.DashboardMetrics{Revenue: decimal.Zero}
	for _, o := range r.store.sales {
		if o.DateTime.Before(from) || !o.DateTime.Before(to) {
			continue
		}
		m.SalesCount++
		m.Revenue = m.Revenue.Add(o.Total)
	}
	for _, p := range r.store.products {
		m.TotalProducts++
		if p.Active && p.IsLowStock() {
			m.LowStockCount++
		}
	}
	for _, po := range r.store.pos {
		if po.Status == entity.POStatusPending {
			m.PendingPOCount++
		}
	}
	return m, nil
}
