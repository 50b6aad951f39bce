package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pab-api/internal/domain"
	"github.com/jhoicas/pab-api/internal/domain/entity"
	"github.com/jhoicas/pab-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, reference_code, barcode, name, description, category_id,
		stock, min_stock, max_stock, cost_price, sale_price, location, is_active, created_at, updated_at`

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var barcode, categoryID, location *string
	err := row.Scan(
		&p.ID, &p.ReferenceCode, &barcode, &p.Name, &p.Description, &categoryID,
		&p.Stock, &p.MinStock, &p.MaxStock, &p.CostPrice, &p.SalePrice,
		&location, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if barcode != nil {
		p.Barcode = *barcode
	}
	if categoryID != nil {
		p.CategoryID = *categoryID
	}
	if location != nil {
		p.Location = *location
	}
	return &p, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, reference_code, barcode, name, description, category_id,
			stock, min_stock, max_stock, cost_price, sale_price, location, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.ReferenceCode, nullable(product.Barcode), product.Name,
		product.Description, nullable(product.CategoryID), product.Stock, product.MinStock,
		product.MaxStock, product.CostPrice, product.SalePrice, nullable(product.Location),
		product.IsActive, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByReferenceCode obtiene un producto por su código de referencia.
func (r *ProductRepo) GetByReferenceCode(code string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE reference_code = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by reference: %w", err)
	}
	return p, nil
}

// GetForUpdate obtiene el producto bloqueando su fila (SELECT FOR UPDATE).
// El lock se mantiene hasta Commit/Rollback de la tx en la que corre.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product for update: %w", err)
	}
	return p, nil
}

// Update actualiza los campos editables de un producto. No toca stock: ese
// camino pertenece al motor de movimientos (UpdateStock).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET reference_code = $2, barcode = $3, name = $4, description = $5,
			category_id = $6, min_stock = $7, max_stock = $8, cost_price = $9, sale_price = $10,
			location = $11, is_active = $12, updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.ReferenceCode, nullable(product.Barcode), product.Name,
		product.Description, nullable(product.CategoryID), product.MinStock, product.MaxStock,
		product.CostPrice, product.SalePrice, nullable(product.Location), product.IsActive,
		product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock escribe el nuevo stock. Solo lo invoca el motor de movimientos
// dentro de su transacción, con la fila ya bloqueada por GetForUpdate.
func (r *ProductRepo) UpdateStock(productID string, stock int, updatedAt time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = $2, updated_at = $3 WHERE id = $1`,
		productID, stock, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// List lista productos con filtros dinámicos y paginación.
func (r *ProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.CategoryID != "" {
		query += fmt.Sprintf(" AND category_id = $%d", pos)
		args = append(args, filter.CategoryID)
		pos++
	}
	if filter.IsActive != nil {
		query += fmt.Sprintf(" AND is_active = $%d", pos)
		args = append(args, *filter.IsActive)
		pos++
	}
	if filter.LowStock {
		query += " AND stock <= min_stock"
	}
	if filter.Query != "" {
		query += fmt.Sprintf(" AND (name ILIKE $%d OR reference_code ILIKE $%d OR barcode ILIKE $%d)", pos, pos, pos)
		args = append(args, "%"+filter.Query+"%")
		pos++
	}
	if filter.MinStock != nil {
		query += fmt.Sprintf(" AND stock >= $%d", pos)
		args = append(args, *filter.MinStock)
		pos++
	}
	if filter.MaxStock != nil {
		query += fmt.Sprintf(" AND stock <= $%d", pos)
		args = append(args, *filter.MaxStock)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina un producto por ID (movimientos en cascada por FK).
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
