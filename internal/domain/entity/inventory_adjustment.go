package entity

import "time"

// InventoryAdjustment ajuste manual de stock (mercancía encontrada, dañada, etc.).
// Registro de auditoría de solo inserción.
type InventoryAdjustment struct {
	ID             string
	ProductID      string
	ProductName    string
	AdjustmentDate time.Time
	QuantityChange int // positivo suma, negativo resta
	Reason         string
	UserID         string
}
