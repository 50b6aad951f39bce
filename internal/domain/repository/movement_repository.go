package repository

import (
	"time"

	"github.com/jhoicas/pab-api/internal/domain/entity"
)

// MovementFilter filtros para el listado de movimientos.
type MovementFilter struct {
	ProductID string
	UserID    string
	Kind      string // IN | OUT | ADJ
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// MovementRepository define el puerto de persistencia del libro de
// movimientos. Solo inserta y lee: el libro es append-only.
type MovementRepository interface {
	// Create persiste el movimiento. Devuelve domain.ErrDuplicate si ya existe
	// un movimiento con el mismo operation_id (constraint único en BD).
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	GetByOperationID(operationID string) (*entity.Movement, error)
	List(filter MovementFilter) ([]*entity.Movement, error)
}
