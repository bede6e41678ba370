package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ReceiptData datos que necesita el generador para imprimir el ticket.
type ReceiptData struct {
	StoreName   string
	CashierName string
	TaxRate     decimal.Decimal
	Order       entity.SalesOrder
}

// ReceiptGenerator puerto de salida para renderizar el ticket de una venta.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, data ReceiptData) ([]byte, error)
}

// ReceiptUseCase genera el ticket (PDF) de una venta ya registrada.
type ReceiptUseCase struct {
	salesRepo repository.SalesOrderRepository
	userRepo  repository.UserRepository
	generator ReceiptGenerator
	storeName string
	taxRate   decimal.Decimal
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	salesRepo repository.SalesOrderRepository,
	userRepo repository.UserRepository,
	generator ReceiptGenerator,
	storeName string,
	taxRate decimal.Decimal,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		salesRepo: salesRepo,
		userRepo:  userRepo,
		generator: generator,
		storeName: storeName,
		taxRate:   taxRate,
	}
}

// DownloadReceipt devuelve los bytes del PDF y un nombre de archivo sugerido.
// Si el cajero ya no existe se imprime su ID.
func (uc *ReceiptUseCase) DownloadReceipt(ctx context.Context, saleID string) ([]byte, string, error) {
	order, err := uc.salesRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, "", err
	}
	cashier := order.CashierID
	u, err := uc.userRepo.GetByID(ctx, order.CashierID)
	switch {
	case err == nil:
		cashier = u.FullName
	case !errors.Is(err, domain.ErrNotFound):
		return nil, "", fmt.Errorf("receipt: obtener cajero: %w", err)
	}

	pdf, err := uc.generator.GenerateReceipt(ctx, ReceiptData{
		StoreName:   uc.storeName,
		CashierName: cashier,
		TaxRate:     uc.taxRate,
		Order:       *order,
	})
	if err != nil {
		return nil, "", fmt.Errorf("receipt: generación fallida: %w", err)
	}
	return pdf, fmt.Sprintf("recibo_%s.pdf", order.InvoiceNumber), nil
}
