package inventory

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// ReplenishmentUseCase lista los productos en o bajo su nivel de reorden con una cantidad sugerida de pedido.
type ReplenishmentUseCase struct {
	productRepo repository.ProductRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(productRepo repository.ProductRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{productRepo: productRepo}
}

// LowStock sugiere reponer hasta 2 × nivel de reorden (mínimo 1 unidad).
func (uc *ReplenishmentUseCase) LowStock(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	items, err := uc.productRepo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReplenishmentSuggestionDTO, 0, len(items))
	for _, p := range items {
		out = append(out, dto.ReplenishmentSuggestionDTO{
			ProductID:         p.ID,
			Code:              p.Code,
			ProductName:       p.Name,
			SupplierID:        p.SupplierID,
			CurrentStock:      p.Stock,
			ReorderLevel:      p.ReorderLevel,
			SuggestedOrderQty: SuggestedOrderQty(p.Stock, p.ReorderLevel),
		})
	}
	return out, nil
}

// SuggestedOrderQty cantidad a pedir para llegar a 2 × reorderLevel.
func SuggestedOrderQty(stock, reorderLevel int) int {
	q := 2*reorderLevel - stock
	if q < 1 {
		return 1
	}
	return q
}
