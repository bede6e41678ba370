package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	ledger "github.com/jhoicas/Tienda-api/internal/domain/inventory"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// AdjustmentInput entrada de AdjustInventory.
type AdjustmentInput struct {
	ProductID      string
	QuantityChange int
	Reason         string
	UserID         string
}

// AdjustInventoryUseCase registra ajustes manuales de stock (conteo físico, mermas, hallazgos).
type AdjustInventoryUseCase struct {
	txRunner TxRunner
	adjRepo  repository.AdjustmentRepository
	log      zerolog.Logger
	now      func() time.Time
}

// NewAdjustInventoryUseCase construye el caso de uso.
func NewAdjustInventoryUseCase(txRunner TxRunner, adjRepo repository.AdjustmentRepository, log zerolog.Logger) *AdjustInventoryUseCase {
	return &AdjustInventoryUseCase{
		txRunner: txRunner,
		adjRepo:  adjRepo,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// AdjustInventory aplica el delta y anota el ajuste en la misma transacción.
// Si el delta dejaría el stock negativo o por encima de MaxQuantity no hay cambio ni registro.
func (uc *AdjustInventoryUseCase) AdjustInventory(ctx context.Context, in AdjustmentInput) (*entity.InventoryAdjustment, error) {
	reason := strings.TrimSpace(in.Reason)
	if in.ProductID == "" || in.UserID == "" || reason == "" || in.QuantityChange == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.QuantityChange > ledger.MaxQuantity || in.QuantityChange < -ledger.MaxQuantity {
		return nil, domain.ErrInvalidInput
	}

	var adj *entity.InventoryAdjustment
	err := uc.txRunner.Run(ctx, repository.LockScope{ProductIDs: []string{in.ProductID}}, func(tx repository.LedgerTx) error {
		p, err := tx.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if _, err := tx.Stock.MutateStock(ctx, p.ID, in.QuantityChange); err != nil {
			return err
		}
		a := &entity.InventoryAdjustment{
			ID:             uuid.New().String(),
			ProductID:      p.ID,
			ProductName:    p.Name,
			AdjustmentDate: uc.now(),
			QuantityChange: in.QuantityChange,
			Reason:         reason,
			UserID:         in.UserID,
		}
		if err := tx.Adjustments.Create(ctx, a); err != nil {
			return err
		}
		adj = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("product_id", adj.ProductID).
		Int("quantity_change", adj.QuantityChange).
		Str("user_id", adj.UserID).
		Str("reason", adj.Reason).
		Msg("ajuste de inventario registrado")
	return adj, nil
}

// ListAdjustments lista ajustes del más reciente al más antiguo.
func (uc *AdjustInventoryUseCase) ListAdjustments(ctx context.Context) ([]entity.InventoryAdjustment, error) {
	return uc.adjRepo.List(ctx)
}
