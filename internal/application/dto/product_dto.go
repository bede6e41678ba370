package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Stock es el stock de apertura.
type CreateProductRequest struct {
	Code         string          `json:"code" validate:"required,min=1,max=50"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	CategoryID   string          `json:"category_id" validate:"required"`
	SupplierID   string          `json:"supplier_id" validate:"required"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Stock        int             `json:"stock" validate:"min=0,max=2147483647"`
	ReorderLevel int             `json:"reorder_level" validate:"min=0"`
}

// UpdateProductRequest entrada para actualizar un producto (sin Stock: solo cambia vía ledger).
type UpdateProductRequest struct {
	Code         *string          `json:"code" validate:"omitempty,min=1,max=50"`
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	CategoryID   *string          `json:"category_id" validate:"omitempty,min=1"`
	SupplierID   *string          `json:"supplier_id" validate:"omitempty,min=1"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	ReorderLevel *int             `json:"reorder_level" validate:"omitempty,min=0"`
	Active       *bool            `json:"active"`
}

// ProductResponse salida de un producto con su stock actual.
type ProductResponse struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	CategoryID   string          `json:"category_id"`
	SupplierID   string          `json:"supplier_id"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Stock        int             `json:"stock"`
	ReorderLevel int             `json:"reorder_level"`
	Active       bool            `json:"active"`
	LowStock     bool            `json:"low_stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
