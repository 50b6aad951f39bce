package repository

import (
	"time"

	"github.com/jhoicas/pab-api/internal/domain/entity"
)

// ProductFilter filtros para el listado de productos.
type ProductFilter struct {
	CategoryID string
	IsActive   *bool
	LowStock   bool   // stock <= min_stock
	Query      string // busca en nombre, referencia y barcode
	MinStock   *int   // stock >= MinStock
	MaxStock   *int   // stock <= MaxStock
	Limit      int
	Offset     int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// UpdateStock existe solo para el motor de movimientos; el resto de la
// aplicación no debe escribir el stock.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByReferenceCode(code string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando su fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción (TxRunner).
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStock(productID string, stock int, updatedAt time.Time) error
	List(filter ProductFilter) ([]*entity.Product, error)
	Delete(id string) error
}
