// Package analytics contiene los casos de uso de reportes de solo lectura sobre el ledger.
package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

const dashboardTopSellers = 5 // productos en el widget del dashboard

// DashboardUseCase genera el resumen del día.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{
		analyticsRepo: analyticsRepo,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// GetStats construye el DashboardStatsDTO.
//
// Dos consultas en paralelo:
//  1. GetDashboardMetrics(hoy) → ventas, ingresos y contadores del catálogo
//  2. UnitsSoldByProduct       → top de productos más vendidos
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	now := uc.now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	todayEnd := todayStart.Add(24 * time.Hour)

	var (
		metrics repository.DashboardMetrics
		sold    []repository.UnitsSoldResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		metrics, err = uc.analyticsRepo.GetDashboardMetrics(gctx, todayStart, todayEnd)
		if err != nil {
			return fmt.Errorf("dashboard: métricas del día: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		sold, err = uc.analyticsRepo.UnitsSoldByProduct(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: más vendidos: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(sold) > dashboardTopSellers {
		sold = sold[:dashboardTopSellers]
	}
	return &dto.DashboardStatsDTO{
		TodaySalesCount:       metrics.SalesCount,
		TodayRevenue:          metrics.Revenue,
		TotalProducts:         metrics.TotalProducts,
		LowStockCount:         metrics.LowStockCount,
		PendingPurchaseOrders: metrics.PendingPOCount,
		TopSellers:            toUnitsSoldDTOs(sold),
	}, nil
}
