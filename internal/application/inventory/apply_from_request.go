package inventory

import (
	"context"

	"github.com/jhoicas/pab-api/internal/application/dto"
	"github.com/jhoicas/pab-api/internal/domain/entity"
)

// ApplyFromRequest adapta el request HTTP al caso de uso Apply(ctx, input).
// Usar desde handlers que ya tienen el userID del token.
func (uc *ApplyMovementUseCase) ApplyFromRequest(ctx context.Context, userID string, in dto.ApplyMovementRequest) (*entity.Movement, error) {
	return uc.Apply(ctx, ApplyMovementInput{
		ProductID:   in.ProductID,
		Kind:        in.Kind,
		Quantity:    in.Quantity,
		Notes:       in.Notes,
		UserID:      userID,
		OperationID: in.OperationID,
		PerformedAt: in.PerformedAt,
	})
}

// ApplyStockUpdate variante para PATCH /products/:id/stock, donde el producto
// viene en la URL y el resto en el cuerpo.
func (uc *ApplyMovementUseCase) ApplyStockUpdate(ctx context.Context, productID, userID string, in dto.StockUpdateRequest) (*entity.Movement, error) {
	return uc.Apply(ctx, ApplyMovementInput{
		ProductID:   productID,
		Kind:        in.Kind,
		Quantity:    in.Quantity,
		Notes:       in.Notes,
		UserID:      userID,
		OperationID: in.OperationID,
		PerformedAt: in.PerformedAt,
	})
}
