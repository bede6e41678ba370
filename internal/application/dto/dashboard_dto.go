package dto

import "github.com/shopspring/decimal"

// DashboardStatsDTO respuesta de GET /api/reports/dashboard. "Hoy" es el día UTC en curso.
type DashboardStatsDTO struct {
	TodaySalesCount       int             `json:"today_sales_count"`
	TodayRevenue          decimal.Decimal `json:"today_revenue"`
	TotalProducts         int             `json:"total_products"`
	LowStockCount         int             `json:"low_stock_count"`
	PendingPurchaseOrders int             `json:"pending_purchase_orders"`
	TopSellers            []UnitsSoldDTO  `json:"top_sellers"`
}

// UnitsSoldDTO unidades vendidas de un producto (por nombre al momento de la venta).
type UnitsSoldDTO struct {
	ProductName string `json:"product_name"`
	UnitsSold   int    `json:"units_sold"`
}
