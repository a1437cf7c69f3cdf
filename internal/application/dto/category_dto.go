package dto

import "time"

// CategoryTreeNode nodo del árbol de categorías en el wire. Children puede
// venir vacío u omitido en las hojas; en las respuestas siempre se emite
// como arreglo (posiblemente vacío).
type CategoryTreeNode struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Children []CategoryTreeNode `json:"children"`
}

// CategoryResponse fila plana de una categoría. ParentId es null en raíces.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParentID  *string   `json:"parentId"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateCategoryRequest entrada para crear una categoría individual.
type CreateCategoryRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=100"`
	ParentID *string `json:"parentId"`
	Order    *int    `json:"order" validate:"omitempty,min=0"`
}

// UpdateCategoryRequest actualización de una categoría individual. Los
// campos nil se dejan como están.
type UpdateCategoryRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	ParentID *string `json:"parentId"`
	Order    *int    `json:"order" validate:"omitempty,min=0"`
}

// TreeSaveResponse reporte del guardado total del árbol: qué IDs se
// crearon, cuáles se reescribieron y cuáles desaparecieron.
type TreeSaveResponse struct {
	Created []string `json:"created"`
	Updated []string `json:"updated"`
	Deleted []string `json:"deleted"`
}

// DeleteCategoryResponse resultado del borrado individual.
type DeleteCategoryResponse struct {
	Success     bool   `json:"success"`
	Deleted     string `json:"deleted"`
	HasChildren bool   `json:"hasChildren"`
	ChildCount  int    `json:"childCount"`
}
