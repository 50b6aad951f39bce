package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pab-api/internal/domain"
	"github.com/jhoicas/pab-api/internal/domain/entity"
	"github.com/jhoicas/pab-api/internal/domain/repository"
)

// ApplyMovementUseCase aplica movimientos de stock de forma transaccional
// (IN, OUT, ADJ) con bloqueo de fila (SELECT FOR UPDATE), idempotencia por
// operation_id y Commit/Rollback. Es el único escritor de products.stock.
type ApplyMovementUseCase struct {
	txRunner TxRunner
	movRepo  repository.MovementRepository
}

// NewApplyMovementUseCase construye el caso de uso.
func NewApplyMovementUseCase(txRunner TxRunner, movRepo repository.MovementRepository) *ApplyMovementUseCase {
	return &ApplyMovementUseCase{txRunner: txRunner, movRepo: movRepo}
}

// ApplyMovementInput entrada para aplicar un movimiento de stock.
// Quantity: > 0 para IN/OUT; >= 0 para ADJ (valor absoluto al que queda el
// stock). OperationID opcional: si el caller lo envía, la operación es
// idempotente; si no, se genera uno y la protección contra replays queda en
// manos del caller. PerformedAt opcional (default: ahora).
type ApplyMovementInput struct {
	ProductID   string
	Kind        string
	Quantity    int
	Notes       string
	UserID      string
	OperationID string
	PerformedAt *time.Time
}

// Apply valida la entrada, resuelve idempotencia y ejecuta la unidad de
// trabajo: bloquear la fila del producto, calcular el nuevo stock, escribirlo
// y añadir la entrada al libro. Todo o nada.
//
// El índice único sobre operation_id es el árbitro final ante dos replays
// concurrentes: si el INSERT pierde la carrera (23505 → domain.ErrDuplicate)
// la transacción se revierte y se devuelve la fila ganadora, nunca el error.
func (uc *ApplyMovementUseCase) Apply(ctx context.Context, input ApplyMovementInput) (*entity.Movement, error) {
	switch input.Kind {
	case entity.MovementKindIn, entity.MovementKindOut:
		if input.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
	case entity.MovementKindAdj:
		if input.Quantity < 0 {
			return nil, domain.ErrInvalidQuantity
		}
	default:
		return nil, domain.ErrUnsupportedMovementKind
	}

	operationID := input.OperationID
	if operationID == "" {
		operationID = uuid.New().String()
	} else {
		// Chequeo de idempotencia antes de tomar ningún lock: un replay no
		// debe serializar contra escritores del mismo producto.
		existing, err := uc.movRepo.GetByOperationID(operationID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
	}

	now := time.Now()
	performedAt := now
	if input.PerformedAt != nil {
		performedAt = *input.PerformedAt
	}

	movement := &entity.Movement{
		ID:          uuid.New().String(),
		ProductID:   input.ProductID,
		Kind:        input.Kind,
		Quantity:    input.Quantity,
		Notes:       input.Notes,
		UserID:      input.UserID,
		OperationID: operationID,
		PerformedAt: performedAt,
		CreatedAt:   now,
	}

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		// Bloquea la fila del producto por toda la unidad de trabajo: dos OUT
		// concurrentes sobre el mismo producto se serializan aquí.
		product, err := productRepo.GetForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		newStock := product.Stock
		switch input.Kind {
		case entity.MovementKindIn:
			newStock = product.Stock + input.Quantity
		case entity.MovementKindOut:
			if product.Stock < input.Quantity {
				return domain.ErrInsufficientStock
			}
			newStock = product.Stock - input.Quantity
		case entity.MovementKindAdj:
			newStock = input.Quantity
		}

		if err := productRepo.UpdateStock(product.ID, newStock, now); err != nil {
			return err
		}
		return movRepo.Create(movement)
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			// Carrera de idempotencia: otro caller insertó el mismo
			// operation_id entre el chequeo y el INSERT. Su transacción ganó;
			// devolvemos su movimiento.
			winner, rerr := uc.movRepo.GetByOperationID(operationID)
			if rerr != nil {
				return nil, rerr
			}
			if winner != nil {
				return winner, nil
			}
		}
		return nil, err
	}
	return movement, nil
}
