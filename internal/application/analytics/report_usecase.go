package analytics

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// ReportUseCase reportes agregados sobre el historial de ventas.
type ReportUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(analyticsRepo repository.AnalyticsRepository) *ReportUseCase {
	return &ReportUseCase{analyticsRepo: analyticsRepo}
}

// UnitsSoldByProduct unidades vendidas por nombre de producto (foto al vender),
// de mayor a menor; empates por nombre.
func (uc *ReportUseCase) UnitsSoldByProduct(ctx context.Context) ([]dto.UnitsSoldDTO, error) {
	rows, err := uc.analyticsRepo.UnitsSoldByProduct(ctx)
	if err != nil {
		return nil, err
	}
	return toUnitsSoldDTOs(rows), nil
}

func toUnitsSoldDTOs(rows []repository.UnitsSoldResult) []dto.UnitsSoldDTO {
	out := make([]dto.UnitsSoldDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.UnitsSoldDTO{ProductName: r.ProductName, UnitsSold: r.UnitsSold})
	}
	return out
}
