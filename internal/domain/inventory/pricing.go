package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultTaxRate IVA aplicado a las ventas si la configuración no define otro (12%).
var DefaultTaxRate = decimal.RequireFromString("0.12")

// CurrencyPlaces precisión monetaria (centavos).
const CurrencyPlaces = 2

// Round2 redondea a 2 decimales, mitad hacia arriba (half away from zero).
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(CurrencyPlaces)
}

// LineTotal cantidad × precio unitario.
func LineTotal(quantity int, unit decimal.Decimal) decimal.Decimal {
	return unit.Mul(decimal.NewFromInt(int64(quantity)))
}

// SaleTotals totales de una venta.
type SaleTotals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// ComputeSaleTotals calcula subtotal, impuesto y total a partir de los totales de línea.
// tax = round2(subtotal × taxRate); total = round2(subtotal + tax).
func ComputeSaleTotals(lineTotals []decimal.Decimal, taxRate decimal.Decimal) SaleTotals {
	subtotal := decimal.Zero
	for _, lt := range lineTotals {
		subtotal = subtotal.Add(lt)
	}
	tax := Round2(subtotal.Mul(taxRate))
	return SaleTotals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    Round2(subtotal.Add(tax)),
	}
}

// HasCurrencyPrecision indica si d no tiene más de 2 decimales.
func HasCurrencyPrecision(d decimal.Decimal) bool {
	return d.Equal(Round2(d))
}

// FormatInvoiceNumber número de factura visible: INV-<n>.
func FormatInvoiceNumber(n int64) string {
	return fmt.Sprintf("INV-%d", n)
}

// FormatPONumber número de orden de compra visible: PO-<n>.
func FormatPONumber(n int64) string {
	return fmt.Sprintf("PO-%d", n)
}
