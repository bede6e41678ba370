package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesOrderItem línea de una venta. ProductName y UnitPrice son la foto al momento de la venta.
type SalesOrderItem struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal // Quantity * UnitPrice
}

// SalesOrder representa una venta de punto de venta. Inmutable una vez creada (auditoría).
type SalesOrder struct {
	ID            string
	InvoiceNumber string // INV-<n>
	DateTime      time.Time
	CashierID     string
	Items         []SalesOrderItem
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	AmountPaid    decimal.Decimal
	Change        decimal.Decimal
}

// Clone devuelve una copia profunda (las líneas no comparten backing array).
func (o SalesOrder) Clone() SalesOrder {
	c := o
	c.Items = append([]SalesOrderItem(nil), o.Items...)
	return c
}
