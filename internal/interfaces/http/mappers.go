package http

import (
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/inventory"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

func toSaleResponse(o *entity.SalesOrder) dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.SaleItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal,
		})
	}
	return dto.SaleResponse{
		ID:            o.ID,
		InvoiceNumber: o.InvoiceNumber,
		DateTime:      o.DateTime,
		CashierID:     o.CashierID,
		Items:         items,
		Subtotal:      o.Subtotal,
		Tax:           o.Tax,
		Total:         o.Total,
		AmountPaid:    o.AmountPaid,
		Change:        o.Change,
	}
}

func toPurchaseOrderResponse(po *entity.PurchaseOrder) dto.PurchaseOrderResponse {
	items := make([]dto.PurchaseItemResponse, 0, len(po.Items))
	for _, it := range po.Items {
		items = append(items, dto.PurchaseItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitCost:    it.UnitCost,
			LineTotal:   it.LineTotal,
		})
	}
	return dto.PurchaseOrderResponse{
		ID:            po.ID,
		PONumber:      po.PONumber,
		SupplierID:    po.SupplierID,
		SupplierName:  po.SupplierName,
		OrderDate:     po.OrderDate,
		Status:        po.Status,
		CreatedByID:   po.CreatedByID,
		Items:         items,
		TotalAmount:   po.TotalAmount,
		ReceivedDate:  po.ReceivedDate,
		CancelledDate: po.CancelledDate,
	}
}

func toAdjustmentResponse(a *entity.InventoryAdjustment) dto.AdjustmentResponse {
	return dto.AdjustmentResponse{
		ID:             a.ID,
		ProductID:      a.ProductID,
		ProductName:    a.ProductName,
		AdjustmentDate: a.AdjustmentDate,
		QuantityChange: a.QuantityChange,
		Reason:         a.Reason,
		UserID:         a.UserID,
	}
}

func toReconcileResponse(ds []inventory.StockDiscrepancy) dto.ReconcileResponse {
	out := dto.ReconcileResponse{
		Consistent:    len(ds) == 0,
		Discrepancies: make([]dto.StockDiscrepancyDTO, 0, len(ds)),
	}
	for _, d := range ds {
		out.Discrepancies = append(out.Discrepancies, dto.StockDiscrepancyDTO{
			ProductID:     d.ProductID,
			Code:          d.Code,
			InitialStock:  d.Initial,
			Adjusted:      d.Adjusted,
			Sold:          d.Sold,
			Received:      d.Received,
			ExpectedStock: d.Expected,
			ActualStock:   d.Actual,
		})
	}
	return out
}
