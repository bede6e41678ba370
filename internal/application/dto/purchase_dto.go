package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseLineRequest línea de una orden de compra.
type PurchaseLineRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,gt=0,lte=2147483647"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	SupplierID string                `json:"supplier_id" validate:"required"`
	Items      []PurchaseLineRequest `json:"items" validate:"required,min=1,dive"`
}

// PurchaseItemResponse línea de una orden de compra.
type PurchaseItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// PurchaseOrderResponse orden de compra.
type PurchaseOrderResponse struct {
	ID            string                 `json:"id"`
	PONumber      string                 `json:"po_number"`
	SupplierID    string                 `json:"supplier_id"`
	SupplierName  string                 `json:"supplier_name"`
	OrderDate     time.Time              `json:"order_date"`
	Status        string                 `json:"status"`
	CreatedByID   string                 `json:"created_by_id"`
	Items         []PurchaseItemResponse `json:"items"`
	TotalAmount   decimal.Decimal        `json:"total_amount"`
	ReceivedDate  *time.Time             `json:"received_date,omitempty"`
	CancelledDate *time.Time             `json:"cancelled_date,omitempty"`
}
