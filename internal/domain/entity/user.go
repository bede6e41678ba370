package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin          = "Administrator"
	RoleCashier        = "Cashier"
	RoleInventoryClerk = "Inventory Clerk"
)

// User representa un operador de la tienda (cajero, encargado de inventario, administrador).
type User struct {
	ID           string
	Username     string
	FullName     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string
	CreatedAt    time.Time
}

// IsValidRole indica si role es uno de los roles conocidos.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleCashier, RoleInventoryClerk:
		return true
	}
	return false
}
