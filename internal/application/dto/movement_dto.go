package dto

import "time"

// ApplyMovementRequest entrada para registrar un movimiento de stock.
// operation_id es la clave de idempotencia (recomendado); performed_at es la
// fecha efectiva opcional (default: ahora).
type ApplyMovementRequest struct {
	ProductID   string     `json:"producto"`
	Kind        string     `json:"movimiento_tipo"`
	Quantity    int        `json:"cantidad"`
	Notes       string     `json:"notas"`
	OperationID string     `json:"operation_id"`
	PerformedAt *time.Time `json:"performed_at"`
}

// StockUpdateRequest variante del registro de movimiento usada por
// PATCH /products/:id/stock (el producto va en la URL).
type StockUpdateRequest struct {
	Kind        string     `json:"movimiento_tipo"`
	Quantity    int        `json:"cantidad"`
	Notes       string     `json:"notas"`
	OperationID string     `json:"operation_id"`
	PerformedAt *time.Time `json:"performed_at"`
}

// MovementResponse salida de un movimiento del libro.
type MovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"producto"`
	Kind        string    `json:"movimiento_tipo"`
	Quantity    int       `json:"cantidad"`
	Notes       string    `json:"notas,omitempty"`
	UserID      string    `json:"user_id,omitempty"`
	OperationID string    `json:"operation_id"`
	PerformedAt time.Time `json:"performed_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// MovementListResponse listado paginado de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
