package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pab-api/internal/application/dto"
	"github.com/jhoicas/pab-api/internal/application/inventory"
	"github.com/jhoicas/pab-api/internal/application/usecase"
	"github.com/jhoicas/pab-api/internal/domain"
	"github.com/jhoicas/pab-api/internal/domain/repository"
)

// MovementHandler maneja las peticiones HTTP del libro de movimientos (protegido).
type MovementHandler struct {
	applyUC *inventory.ApplyMovementUseCase
	queryUC *usecase.MovementQueryUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(applyUC *inventory.ApplyMovementUseCase, queryUC *usecase.MovementQueryUseCase) *MovementHandler {
	return &MovementHandler{applyUC: applyUC, queryUC: queryUC}
}

// Apply godoc
// @Summary      Registrar movimiento de stock
// @Description  Aplica IN/OUT/ADJ de forma atómica con lock de fila e
//               idempotencia por operation_id. Un replay devuelve el
//               movimiento original sin tocar el stock.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyMovementRequest  true  "producto, movimiento_tipo, cantidad, notas, operation_id, performed_at"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movimientos [post]
func (h *MovementHandler) Apply(c *fiber.Ctx) error {
	var in dto.ApplyMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "producto es requerido"})
	}
	movement, err := h.applyUC.ApplyFromRequest(c.Context(), GetUserID(c), in)
	if err != nil {
		return movementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(usecase.ToMovementResponse(movement))
}

// List godoc
// @Summary      Listar movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        producto      query  string  false  "Filtrar por producto"
// @Param        usuario       query  string  false  "Filtrar por usuario"
// @Param        tipo          query  string  false  "IN | OUT | ADJ"
// @Param        fecha_inicio  query  string  false  "Desde (RFC 3339)"
// @Param        fecha_fin     query  string  false  "Hasta (RFC 3339)"
// @Param        limit         query  int     false  "Límite"   default(20)
// @Param        offset        query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movimientos [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	filter := repository.MovementFilter{
		ProductID: c.Query("producto"),
		UserID:    c.Query("usuario"),
		Kind:      c.Query("tipo"),
	}
	if v := c.Query("fecha_inicio"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha_inicio inválida, usa RFC 3339"})
		}
		filter.From = &t
	}
	if v := c.Query("fecha_fin"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha_fin inválida, usa RFC 3339"})
		}
		filter.To = &t
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.queryUC.List(filter, page)
	if err != nil {
		return movementError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de un movimiento
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movimientos/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.queryUC.GetByID(c.Params("id"))
	if err != nil {
		return movementError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "movimiento no encontrado"})
	}
	return c.JSON(out)
}

func movementError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "cantidad inválida para el tipo de movimiento"})
	case errors.Is(err, domain.ErrUnsupportedMovementKind):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNSUPPORTED_KIND", Message: "movimiento_tipo debe ser IN, OUT o ADJ"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
