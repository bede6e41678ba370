package memory

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepository)(nil)

// SequenceRepository contadores atómicos; no participan del rollback de la transacción.
type SequenceRepository struct {
	store *Store
}

func NewSequenceRepository(store *Store) *SequenceRepository {
	return &SequenceRepository{store: store}
}

func (r *SequenceRepository) NextInvoiceNumber(ctx context.Context) (int64, error) {
	return r.store.invoiceBase + r.store.invoiceSeq.Add(1), nil
}

func (r *SequenceRepository) NextPONumber(ctx context.Context) (int64, error) {
	return r.store.poBase + r.store.poSeq.Add(1), nil
}
