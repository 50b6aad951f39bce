package usecase

import (
	"github.com/jhoicas/pab-api/internal/application/dto"
	"github.com/jhoicas/pab-api/internal/domain/entity"
	"github.com/jhoicas/pab-api/internal/domain/repository"
)

// MovementQueryUseCase lecturas del libro de movimientos (listado con filtros
// y detalle). La escritura vive en inventory.ApplyMovementUseCase.
type MovementQueryUseCase struct {
	repo repository.MovementRepository
}

// NewMovementQueryUseCase construye el caso de uso.
func NewMovementQueryUseCase(repo repository.MovementRepository) *MovementQueryUseCase {
	return &MovementQueryUseCase{repo: repo}
}

// List lista movimientos con filtros (producto, usuario, tipo, rango de fechas).
func (uc *MovementQueryUseCase) List(filter repository.MovementFilter, page dto.PageRequest) (*dto.MovementListResponse, error) {
	page.DefaultPage()
	filter.Limit = page.Limit
	filter.Offset = page.Offset
	list, err := uc.repo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *ToMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// GetByID detalle de un movimiento (nil si no existe).
func (uc *MovementQueryUseCase) GetByID(id string) (*dto.MovementResponse, error) {
	movement, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if movement == nil {
		return nil, nil
	}
	return ToMovementResponse(movement), nil
}

// ToMovementResponse mapea la entidad al DTO de salida.
func ToMovementResponse(m *entity.Movement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		Kind:        m.Kind,
		Quantity:    m.Quantity,
		Notes:       m.Notes,
		UserID:      m.UserID,
		OperationID: m.OperationID,
		PerformedAt: m.PerformedAt,
		CreatedAt:   m.CreatedAt,
	}
}
