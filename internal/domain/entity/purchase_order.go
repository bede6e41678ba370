package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	POStatusPending   = "Pending"
	POStatusReceived  = "Received"
	POStatusCancelled = "Cancelled"
)

// PurchaseOrderItem línea de una orden de compra.
type PurchaseOrderItem struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitCost    decimal.Decimal
	LineTotal   decimal.Decimal // Quantity * UnitCost
}

// PurchaseOrder orden de compra a proveedor.
// Nace en Pending y pasa una sola vez a Received (suma stock) o a Cancelled (sin efecto en stock).
type PurchaseOrder struct {
	ID            string
	PONumber      string // PO-<n>
	SupplierID    string
	SupplierName  string
	OrderDate     time.Time
	Status        string
	CreatedByID   string
	Items         []PurchaseOrderItem
	TotalAmount   decimal.Decimal
	ReceivedDate  *time.Time
	CancelledDate *time.Time
}

// ProductIDs devuelve los IDs de producto de las líneas, en orden.
func (o PurchaseOrder) ProductIDs() []string {
	ids := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		ids = append(ids, it.ProductID)
	}
	return ids
}

// IsTerminal indica si la orden ya no admite transiciones.
func (o PurchaseOrder) IsTerminal() bool {
	return o.Status == POStatusReceived || o.Status == POStatusCancelled
}

// Clone devuelve una copia profunda.
func (o PurchaseOrder) Clone() PurchaseOrder {
	c := o
	c.Items = append([]PurchaseOrderItem(nil), o.Items...)
	if o.ReceivedDate != nil {
		t := *o.ReceivedDate
		c.ReceivedDate = &t
	}
	if o.CancelledDate != nil {
		t := *o.CancelledDate
		c.CancelledDate = &t
	}
	return c
}
