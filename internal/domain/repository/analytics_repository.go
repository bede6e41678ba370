package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// UnitsSoldResult unidades vendidas agrupadas por nombre de producto (foto al vender).
type UnitsSoldResult struct {
	ProductName string
	UnitsSold   int
}

// DashboardMetrics métricas crudas del tablero para un rango de fechas.
type DashboardMetrics struct {
	SalesCount     int
	Revenue        decimal.Decimal
	TotalProducts  int
	LowStockCount  int
	PendingPOCount int
}

// AnalyticsRepository consultas de solo lectura sobre el ledger.
type AnalyticsRepository interface {
	// UnitsSoldByProduct suma cantidades de líneas de venta por nombre de producto,
	// ordenado por unidades descendente y luego por nombre.
	UnitsSoldByProduct(ctx context.Context) ([]UnitsSoldResult, error)

	// GetDashboardMetrics cuenta ventas e ingresos en [from, to) más contadores del catálogo.
	GetDashboardMetrics(ctx context.Context, from, to time.Time) (DashboardMetrics, error)
}
