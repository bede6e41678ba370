package repository

import "context"

// SequenceRepository contadores monotónicos de facturas y órdenes de compra.
// Un número entregado nunca se reutiliza, aunque la operación que lo pidió falle después.
type SequenceRepository interface {
	NextInvoiceNumber(ctx context.Context) (int64, error)
	NextPONumber(ctx context.Context) (int64, error)
}
