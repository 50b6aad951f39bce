package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound                = errors.New("recurso no encontrado")
	ErrUserNotFound            = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists      = errors.New("el email ya está registrado")
	ErrInvalidInput            = errors.New("entrada inválida")
	ErrDuplicate               = errors.New("recurso duplicado")
	ErrUnauthorized            = errors.New("no autorizado")
	ErrInsufficientStock       = errors.New("stock insuficiente")
	ErrInvalidQuantity         = errors.New("cantidad inválida para el tipo de movimiento")
	ErrUnsupportedMovementKind = errors.New("tipo de movimiento no soportado")
	ErrCategoryCycle           = errors.New("la categoría no puede ser ancestro de sí misma")
)
