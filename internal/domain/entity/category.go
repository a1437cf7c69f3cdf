package entity

import "time"

// Category es la forma plana persistida de una categoría de productos.
// ParentID vacío marca una raíz. Order solo tiene significado entre
// hermanos que comparten el mismo ParentID; nunca se compara globalmente.
type Category struct {
	ID        string
	UserID    string // partición del dueño; viene del token, nunca del payload
	ParentID  string // vacío si es raíz
	Name      string
	Order     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRoot indica si la categoría no tiene padre.
func (c *Category) IsRoot() bool {
	return c.ParentID == ""
}

// CategoryNode es la forma jerárquica de una categoría: el árbol completo
// que el cliente envía y recibe. Cada nodo es dueño de sus hijos; el orden
// del slice Children es el orden de hermanos.
type CategoryNode struct {
	ID       string
	Name     string
	Children []*CategoryNode
}
