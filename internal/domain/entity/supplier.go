package entity

// Supplier representa un proveedor de la tienda.
type Supplier struct {
	ID            string
	CompanyName   string
	ContactPerson string
	Phone         string
	Email         string
	Address       string
}
