package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto (SKU) de la tienda.
// Stock solo cambia al crear el producto y a través del ledger (venta, recepción de OC, ajuste).
type Product struct {
	ID           string
	Code         string // SKU único ingresado por el usuario
	Name         string
	CategoryID   string
	SupplierID   string
	UnitPrice    decimal.Decimal // precio de venta, 2 decimales
	Stock        int
	InitialStock int // stock con el que se creó; base de la conciliación
	ReorderLevel int
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsLowStock indica si el producto está en o por debajo de su nivel de reorden.
func (p Product) IsLowStock() bool {
	return p.Stock <= p.ReorderLevel
}
