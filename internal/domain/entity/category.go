package entity

import "time"

// Category categoría de productos, jerárquica (ParentID vacío si es raíz).
// El nombre es único en todo el catálogo.
type Category struct {
	ID          string
	Name        string
	Description string
	ParentID    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsRoot indica si la categoría no tiene padre.
func (c *Category) IsRoot() bool {
	return c.ParentID == ""
}
