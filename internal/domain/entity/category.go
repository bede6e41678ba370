package entity

// Category representa una categoría de productos del catálogo de la tienda.
type Category struct {
	ID   string
	Name string
}
