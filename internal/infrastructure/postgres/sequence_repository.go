package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo números de factura y OC sobre secuencias de PostgreSQL. nextval no
// participa del rollback, así que un número entregado no se reutiliza. El número es el
// valor de la secuencia tal cual; la base se aplica una vez con AlignSequences.
type SequenceRepo struct {
	q Querier
}

func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

func (r *SequenceRepo) NextInvoiceNumber(ctx context.Context) (int64, error) {
	return r.next(ctx, "invoice_seq")
}

func (r *SequenceRepo) NextPONumber(ctx context.Context) (int64, error) {
	return r.next(ctx, "po_seq")
}

func (r *SequenceRepo) next(ctx context.Context, seq string) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT nextval($1::regclass)`, seq).Scan(&n); err != nil {
		return 0, fmt.Errorf("nextval %s: %w", seq, err)
	}
	return n, nil
}

type sequenceTarget struct {
	seq     string
	table   string
	column  string
	pattern string
	base    int64
}

// AlignSequences adelanta invoice_seq y po_seq para que el próximo número sea mayor que
// la base configurada y que cualquier número ya guardado. Nunca retrocede una secuencia:
// bajar la base con datos existentes no reemite números.
func AlignSequences(ctx context.Context, q Querier, opts Options) error {
	targets := []sequenceTarget{
		{seq: "invoice_seq", table: "sales_orders", column: "invoice_number", pattern: `^INV-([0-9]+)$`, base: opts.InvoiceBase},
		{seq: "po_seq", table: "purchase_orders", column: "po_number", pattern: `^PO-([0-9]+)$`, base: opts.POBase},
	}
	for _, t := range targets {
		floor := fmt.Sprintf(`GREATEST($2::BIGINT, COALESCE(MAX(substring(%s FROM $3)::BIGINT), 0))`, t.column)
		sql := fmt.Sprintf(`
			SELECT setval($1::regclass, %[1]s, true)
			FROM %[2]s
			HAVING %[1]s > COALESCE(
				(SELECT last_value FROM pg_sequences WHERE schemaname = current_schema() AND sequencename = $4), 0)`,
			floor, t.table)
		if _, err := q.Exec(ctx, sql, t.seq, t.base, t.pattern, t.seq); err != nil {
			return fmt.Errorf("align %s: %w", t.seq, err)
		}
	}
	return nil
}
