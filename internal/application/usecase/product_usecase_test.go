package usecase

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pab-api/internal/application/dto"
	"github.com/jhoicas/pab-api/internal/domain"
	"github.com/jhoicas/pab-api/internal/domain/entity"
	"github.com/jhoicas/pab-api/internal/domain/repository"
)

// fakeProductRepo repositorio en memoria para los casos de uso de producto.
type fakeProductRepo struct {
	byID map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{byID: make(map[string]*entity.Product)}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.byID[cp.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.byID[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeProductRepo) GetByReferenceCode(code string) (*entity.Product, error) {
	for _, p := range r.byID {
		if p.ReferenceCode == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.byID[cp.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateStock(productID string, stock int, updatedAt time.Time) error {
	p, ok := r.byID[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	p.UpdatedAt = updatedAt
	return nil
}

func (r *fakeProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.byID {
		if filter.LowStock && !p.LowStock() {
			continue
		}
		if filter.CategoryID != "" && p.CategoryID != filter.CategoryID {
			continue
		}
		if filter.IsActive != nil && p.IsActive != *filter.IsActive {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.byID, id)
	return nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func validCreateRequest() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		ReferenceCode: "REF-001",
		Name:          "Auriculares BT",
		Stock:         10,
		MinStock:      2,
		CostPrice:     dec("10.50"),
		SalePrice:     dec("19.99"),
	}
}

func TestProductCreate(t *testing.T) {
	repo := newFakeProductRepo()
	catRepo := newFakeCategoryRepo()
	catRepo.add("cat1", "Audio", "")
	uc := NewProductUseCase(repo, catRepo)

	in := validCreateRequest()
	in.CategoryID = "cat1"
	resp, err := uc.Create(in)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, 10, resp.Stock)
	assert.True(t, resp.IsActive) // default activo
	assert.False(t, resp.LowStock)
	assert.Equal(t, entity.StockStateAvailable, resp.StockState)

	// Referencia duplicada.
	_, err = uc.Create(in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Categoría inexistente.
	in2 := validCreateRequest()
	in2.ReferenceCode = "REF-002"
	in2.CategoryID = "fantasma"
	_, err = uc.Create(in2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductCreate_Validaciones(t *testing.T) {
	uc := NewProductUseCase(newFakeProductRepo(), newFakeCategoryRepo())

	cases := []struct {
		name   string
		mutate func(*dto.CreateProductRequest)
	}{
		{"sin referencia", func(in *dto.CreateProductRequest) { in.ReferenceCode = "" }},
		{"sin nombre", func(in *dto.CreateProductRequest) { in.Name = "" }},
		{"stock negativo", func(in *dto.CreateProductRequest) { in.Stock = -1 }},
		{"min_stock negativo", func(in *dto.CreateProductRequest) { in.MinStock = -1 }},
		{"max menor que min", func(in *dto.CreateProductRequest) {
			max := 1
			in.MinStock = 5
			in.MaxStock = &max
		}},
		{"venta no mayor que coste", func(in *dto.CreateProductRequest) {
			in.CostPrice = dec("20.00")
			in.SalePrice = dec("20.00")
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validCreateRequest()
			tc.mutate(&in)
			_, err := uc.Create(in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestProductUpdate_NoTocaElStock(t *testing.T) {
	repo := newFakeProductRepo()
	uc := NewProductUseCase(repo, newFakeCategoryRepo())

	created, err := uc.Create(validCreateRequest())
	require.NoError(t, err)

	nombre := "Auriculares BT Pro"
	resp, err := uc.Update(created.ID, dto.UpdateProductRequest{Name: &nombre})
	require.NoError(t, err)
	assert.Equal(t, "Auriculares BT Pro", resp.Name)
	assert.Equal(t, 10, resp.Stock) // ningún camino de edición escribe stock
}

func TestProductUpdate_ReferenciaDuplicada(t *testing.T) {
	repo := newFakeProductRepo()
	uc := NewProductUseCase(repo, newFakeCategoryRepo())

	a, err := uc.Create(validCreateRequest())
	require.NoError(t, err)

	inB := validCreateRequest()
	inB.ReferenceCode = "REF-002"
	b, err := uc.Create(inB)
	require.NoError(t, err)

	ref := "REF-001"
	_, err = uc.Update(b.ID, dto.UpdateProductRequest{ReferenceCode: &ref})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Reenviar la propia referencia no es conflicto.
	refA := "REF-001"
	_, err = uc.Update(a.ID, dto.UpdateProductRequest{ReferenceCode: &refA})
	assert.NoError(t, err)
}

func TestProductLowStock(t *testing.T) {
	repo := newFakeProductRepo()
	uc := NewProductUseCase(repo, newFakeCategoryRepo())

	bajo := validCreateRequest()
	bajo.ReferenceCode = "REF-BAJO"
	bajo.Stock = 2
	bajo.MinStock = 5
	_, err := uc.Create(bajo)
	require.NoError(t, err)

	ok := validCreateRequest()
	ok.ReferenceCode = "REF-OK"
	ok.Stock = 50
	_, err = uc.Create(ok)
	require.NoError(t, err)

	list, err := uc.LowStock(dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "REF-BAJO", list.Items[0].ReferenceCode)
	assert.True(t, list.Items[0].LowStock)
}

func TestProductDelete(t *testing.T) {
	repo := newFakeProductRepo()
	uc := NewProductUseCase(repo, newFakeCategoryRepo())

	created, err := uc.Create(validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, uc.Delete(created.ID))
	assert.ErrorIs(t, uc.Delete(created.ID), domain.ErrNotFound)
}
