package inventory

import (
	"math"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/shopspring/decimal"
)

// MaxQuantity tope de cantidades y de stock; coincide con la columna INTEGER de products.stock.
const MaxQuantity = math.MaxInt32

// QuantityLine línea de venta (producto + cantidad).
type QuantityLine struct {
	ProductID string
	Quantity  int
}

// CostLine línea de orden de compra (producto + cantidad + costo unitario).
type CostLine struct {
	ProductID string
	Quantity  int
	UnitCost  decimal.Decimal
}

// MergeQuantityLines valida y fusiona líneas repetidas del mismo producto sumando cantidades.
// Conserva el orden de la primera aparición de cada producto. Una suma por encima de
// MaxQuantity es ErrInvalidInput.
func MergeQuantityLines(lines []QuantityLine) ([]QuantityLine, error) {
	if len(lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	out := make([]QuantityLine, 0, len(lines))
	pos := make(map[string]int, len(lines))
	for _, l := range lines {
		if l.ProductID == "" || l.Quantity <= 0 || l.Quantity > MaxQuantity {
			return nil, domain.ErrInvalidInput
		}
		if i, ok := pos[l.ProductID]; ok {
			if out[i].Quantity > MaxQuantity-l.Quantity {
				return nil, domain.ErrInvalidInput
			}
			out[i].Quantity += l.Quantity
			continue
		}
		pos[l.ProductID] = len(out)
		out = append(out, l)
	}
	return out, nil
}

// MergeCostLines valida y fusiona líneas repetidas de una orden de compra.
// Mismo producto con el mismo costo se fusiona sumando cantidades; con costos distintos es ErrInvalidInput.
func MergeCostLines(lines []CostLine) ([]CostLine, error) {
	if len(lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	out := make([]CostLine, 0, len(lines))
	pos := make(map[string]int, len(lines))
	for _, l := range lines {
		if l.ProductID == "" || l.Quantity <= 0 || l.Quantity > MaxQuantity || l.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		if i, ok := pos[l.ProductID]; ok {
			if !out[i].UnitCost.Equal(l.UnitCost) {
				return nil, domain.ErrInvalidInput
			}
			if out[i].Quantity > MaxQuantity-l.Quantity {
				return nil, domain.ErrInvalidInput
			}
			out[i].Quantity += l.Quantity
			continue
		}
		pos[l.ProductID] = len(out)
		out = append(out, l)
	}
	return out, nil
}
