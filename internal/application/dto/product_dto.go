package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Stock inicial opcional
// (default 0); a partir de ahí solo se modifica vía movimientos.
type CreateProductRequest struct {
	ReferenceCode string          `json:"referencia_codigo"`
	Barcode       string          `json:"barcode"`
	Name          string          `json:"nombre"`
	Description   string          `json:"descripcion"`
	CategoryID    string          `json:"categoria_id"`
	Stock         int             `json:"stock"`
	MinStock      int             `json:"min_stock"`
	MaxStock      *int            `json:"max_stock"`
	CostPrice     decimal.Decimal `json:"coste_precio"`
	SalePrice     decimal.Decimal `json:"venta_precio"`
	Location      string          `json:"localizacion"`
	IsActive      *bool           `json:"is_active"`
}

// UpdateProductRequest edición parcial de un producto. No incluye stock:
// el stock solo cambia a través de movimientos.
type UpdateProductRequest struct {
	ReferenceCode *string          `json:"referencia_codigo"`
	Barcode       *string          `json:"barcode"`
	Name          *string          `json:"nombre"`
	Description   *string          `json:"descripcion"`
	CategoryID    *string          `json:"categoria_id"`
	MinStock      *int             `json:"min_stock"`
	MaxStock      *int             `json:"max_stock"`
	CostPrice     *decimal.Decimal `json:"coste_precio"`
	SalePrice     *decimal.Decimal `json:"venta_precio"`
	Location      *string          `json:"localizacion"`
	IsActive      *bool            `json:"is_active"`
}

// ProductResponse salida completa de un producto con derivados de stock.
type ProductResponse struct {
	ID            string          `json:"id"`
	ReferenceCode string          `json:"referencia_codigo"`
	Barcode       string          `json:"barcode,omitempty"`
	Name          string          `json:"nombre"`
	Description   string          `json:"descripcion,omitempty"`
	CategoryID    string          `json:"categoria_id,omitempty"`
	Stock         int             `json:"stock"`
	MinStock      int             `json:"min_stock"`
	MaxStock      *int            `json:"max_stock"`
	CostPrice     decimal.Decimal `json:"coste_precio"`
	SalePrice     decimal.Decimal `json:"venta_precio"`
	Location      string          `json:"localizacion,omitempty"`
	IsActive      bool            `json:"is_active"`
	LowStock      bool            `json:"bajo_stock"`
	StockState    string          `json:"estado_stock"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
