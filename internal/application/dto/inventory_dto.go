package dto

import "time"

// CreateAdjustmentRequest body para POST /api/inventory/adjustments.
type CreateAdjustmentRequest struct {
	ProductID      string `json:"product_id" validate:"required"`
	QuantityChange int    `json:"quantity_change" validate:"required,ne=0,gte=-2147483647,lte=2147483647"`
	Reason         string `json:"reason" validate:"required,max=500"`
}

// AdjustmentResponse ajuste registrado.
type AdjustmentResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	ProductName    string    `json:"product_name"`
	AdjustmentDate time.Time `json:"adjustment_date"`
	QuantityChange int       `json:"quantity_change"`
	Reason         string    `json:"reason"`
	UserID         string    `json:"user_id"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un producto en o bajo su nivel de reorden.
type ReplenishmentSuggestionDTO struct {
	ProductID         string `json:"product_id"`
	Code              string `json:"code"`
	ProductName       string `json:"product_name"`
	SupplierID        string `json:"supplier_id"`
	CurrentStock      int    `json:"current_stock"`
	ReorderLevel      int    `json:"reorder_level"`
	SuggestedOrderQty int    `json:"suggested_order_qty"` // 2 × ReorderLevel − CurrentStock, mínimo 1
}

// StockDiscrepancyDTO producto cuyo stock no cuadra con su historial.
type StockDiscrepancyDTO struct {
	ProductID     string `json:"product_id"`
	Code          string `json:"code"`
	InitialStock  int    `json:"initial_stock"`
	Adjusted      int    `json:"adjusted"`
	Sold          int    `json:"sold"`
	Received      int    `json:"received"`
	ExpectedStock int    `json:"expected_stock"`
	ActualStock   int    `json:"actual_stock"`
}

// ReconcileResponse resultado de la conciliación.
type ReconcileResponse struct {
	Consistent    bool                  `json:"consistent"`
	Discrepancies []StockDiscrepancyDTO `json:"discrepancies"`
}
