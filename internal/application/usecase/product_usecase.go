package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pab-api/internal/application/dto"
	"github.com/jhoicas/pab-api/internal/domain"
	"github.com/jhoicas/pab-api/internal/domain/entity"
	"github.com/jhoicas/pab-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock solo se escribe
// aquí en el alta inicial; después es territorio exclusivo del motor de
// movimientos.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo}
}

// validate reglas de escritura del producto: venta > coste, max >= min,
// stock no negativo.
func validateProduct(p *entity.Product) error {
	if p.ReferenceCode == "" || p.Name == "" {
		return domain.ErrInvalidInput
	}
	if p.Stock < 0 || p.MinStock < 0 {
		return domain.ErrInvalidInput
	}
	if p.MaxStock != nil && *p.MaxStock < p.MinStock {
		return domain.ErrInvalidInput
	}
	if !p.SalePrice.GreaterThan(p.CostPrice) {
		return domain.ErrInvalidInput
	}
	return nil
}

// Create crea un producto. Referencia y barcode únicos.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, err := uc.repo.GetByReferenceCode(in.ReferenceCode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.CategoryID != "" {
		category, err := uc.categoryRepo.GetByID(in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrNotFound
		}
	}
	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		ReferenceCode: in.ReferenceCode,
		Barcode:       in.Barcode,
		Name:          in.Name,
		Description:   in.Description,
		CategoryID:    in.CategoryID,
		Stock:         in.Stock,
		MinStock:      in.MinStock,
		MaxStock:      in.MaxStock,
		CostPrice:     in.CostPrice,
		SalePrice:     in.SalePrice,
		Location:      in.Location,
		IsActive:      isActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID (nil si no existe).
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update edición parcial. El stock no es editable por este camino.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.ReferenceCode != nil && *in.ReferenceCode != product.ReferenceCode {
		existing, err := uc.repo.GetByReferenceCode(*in.ReferenceCode)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, domain.ErrDuplicate
		}
		product.ReferenceCode = *in.ReferenceCode
	}
	if in.Barcode != nil {
		product.Barcode = *in.Barcode
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.CategoryID != nil {
		if *in.CategoryID != "" {
			category, err := uc.categoryRepo.GetByID(*in.CategoryID)
			if err != nil {
				return nil, err
			}
			if category == nil {
				return nil, domain.ErrNotFound
			}
		}
		product.CategoryID = *in.CategoryID
	}
	if in.MinStock != nil {
		product.MinStock = *in.MinStock
	}
	if in.MaxStock != nil {
		product.MaxStock = in.MaxStock
	}
	if in.CostPrice != nil {
		product.CostPrice = *in.CostPrice
	}
	if in.SalePrice != nil {
		product.SalePrice = *in.SalePrice
	}
	if in.Location != nil {
		product.Location = *in.Location
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con filtros y paginación.
func (uc *ProductUseCase) List(filter repository.ProductFilter, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	filter.Limit = page.Limit
	filter.Offset = page.Offset
	list, err := uc.repo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// LowStock lista productos con stock <= min_stock.
func (uc *ProductUseCase) LowStock(page dto.PageRequest) (*dto.ProductListResponse, error) {
	return uc.List(repository.ProductFilter{LowStock: true}, page)
}

// Delete elimina un producto (sus movimientos caen en cascada en BD).
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		ReferenceCode: p.ReferenceCode,
		Barcode:       p.Barcode,
		Name:          p.Name,
		Description:   p.Description,
		CategoryID:    p.CategoryID,
		Stock:         p.Stock,
		MinStock:      p.MinStock,
		MaxStock:      p.MaxStock,
		CostPrice:     p.CostPrice,
		SalePrice:     p.SalePrice,
		Location:      p.Location,
		IsActive:      p.IsActive,
		LowStock:      p.LowStock(),
		StockState:    p.StockState(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
