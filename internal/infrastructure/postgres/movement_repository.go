package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pab-api/internal/domain"
	"github.com/jhoicas/pab-api/internal/domain/entity"
	"github.com/jhoicas/pab-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, product_id, kind, quantity, notes, user_id, operation_id, performed_at, created_at`

// MovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). Solo INSERT y SELECT: el libro es append-only.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var userID *string
	err := row.Scan(
		&m.ID, &m.ProductID, &m.Kind, &m.Quantity, &m.Notes,
		&userID, &m.OperationID, &m.PerformedAt, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if userID != nil {
		m.UserID = *userID
	}
	return &m, nil
}

// Create persiste un movimiento. El índice único sobre operation_id es el
// árbitro final de idempotencia: una violación 23505 se traduce a
// domain.ErrDuplicate para que el motor la resuelva releyendo la fila ganadora.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	query := `
		INSERT INTO inventory_movements (id, product_id, kind, quantity, notes, user_id, operation_id, performed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.Kind, movement.Quantity,
		movement.Notes, nullable(movement.UserID), movement.OperationID,
		movement.PerformedAt, movement.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// GetByOperationID obtiene un movimiento por su clave de idempotencia.
func (r *MovementRepo) GetByOperationID(operationID string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE operation_id = $1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, operationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement by operation_id: %w", err)
	}
	return m, nil
}

// List lista movimientos con filtros dinámicos y paginación, más recientes primero.
func (r *MovementRepo) List(filter repository.MovementFilter) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.ProductID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.UserID != "" {
		query += fmt.Sprintf(" AND user_id = $%d", pos)
		args = append(args, filter.UserID)
		pos++
	}
	if filter.Kind != "" {
		query += fmt.Sprintf(" AND kind = $%d", pos)
		args = append(args, filter.Kind)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
