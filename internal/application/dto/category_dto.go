package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
	ParentID    string `json:"parent"`
}

// UpdateCategoryRequest edición parcial de una categoría. ParentID admite
// cadena vacía para convertirla en raíz (por eso es puntero).
type UpdateCategoryRequest struct {
	Name        *string `json:"nombre"`
	Description *string `json:"descripcion"`
	ParentID    *string `json:"parent"`
}

// CategoryResponse salida de una categoría con sus propiedades derivadas.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"nombre"`
	Description string    `json:"descripcion,omitempty"`
	ParentID    string    `json:"parent,omitempty"`
	ParentName  string    `json:"parent_nombre,omitempty"`
	IsRoot      bool      `json:"es_raiz"`
	Depth       int       `json:"nivel"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryListResponse listado paginado de categorías.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
