package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados derivados del stock (no se persisten).
const (
	StockStateExhausted = "Agotado"
	StockStateLow       = "Bajo"
	StockStateAvailable = "Disponible"
)

// Product producto del inventario. Stock se modifica únicamente a través del
// motor de movimientos (inventory.ApplyMovementUseCase); el flujo de edición
// de producto no lo toca.
type Product struct {
	ID            string
	ReferenceCode string // código de referencia, único
	Barcode       string // código de barras, único si no está vacío
	Name          string
	Description   string
	CategoryID    string // vacío = sin categoría
	Stock         int    // siempre >= 0
	MinStock      int
	MaxStock      *int // nil = sin máximo; si existe, MaxStock >= MinStock
	CostPrice     decimal.Decimal
	SalePrice     decimal.Decimal // debe ser mayor que CostPrice al escribir
	Location      string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LowStock indica si el stock actual está en o por debajo del mínimo.
func (p *Product) LowStock() bool {
	return p.Stock <= p.MinStock
}

// StockState estado textual del stock: Agotado, Bajo o Disponible.
func (p *Product) StockState() string {
	switch {
	case p.Stock == 0:
		return StockStateExhausted
	case p.LowStock():
		return StockStateLow
	default:
		return StockStateAvailable
	}
}
