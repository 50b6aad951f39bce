package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pab-api/internal/application/dto"
	"github.com/jhoicas/pab-api/internal/domain"
	"github.com/jhoicas/pab-api/internal/domain/entity"
	"github.com/jhoicas/pab-api/internal/domain/repository"
)

// maxTreeDepth tope del recorrido padre→raíz. Un árbol real nunca se acerca;
// si se alcanza es que hay un ciclo preexistente en datos y cortamos en vez
// de iterar para siempre.
const maxTreeDepth = 1000

// CategoryUseCase CRUD de categorías y operaciones de árbol (profundidad,
// ancestros, descendientes). Los recorridos son iterativos: cadena de punteros
// padre hacia arriba y lista de trabajo hacia abajo, sin recursión.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría. El nombre es único; el padre debe existir.
func (uc *CategoryUseCase) Create(in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	var parent *entity.Category
	if in.ParentID != "" {
		parent, err = uc.repo.GetByID(in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now()
	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		ParentID:    in.ParentID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(category); err != nil {
		return nil, err
	}
	return uc.toResponse(category, parent)
}

// GetByID obtiene una categoría con sus derivados (nivel, raíz).
func (uc *CategoryUseCase) GetByID(id string) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	return uc.toResponse(category, nil)
}

// Update edición parcial. Al reasignar el padre se valida aciclicidad
// recorriendo la cadena desde el nuevo padre hasta la raíz: si la categoría
// reasignada aparece en esa cadena la operación se rechaza. Cubre tanto el
// auto-padre como ciclos de longitud mayor que uno.
func (uc *CategoryUseCase) Update(id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	if in.Name != nil && *in.Name != category.Name {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		existing, err := uc.repo.GetByName(*in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, domain.ErrDuplicate
		}
		category.Name = *in.Name
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	if in.ParentID != nil && *in.ParentID != category.ParentID {
		if *in.ParentID != "" {
			if *in.ParentID == id {
				return nil, domain.ErrCategoryCycle
			}
			parent, err := uc.repo.GetByID(*in.ParentID)
			if err != nil {
				return nil, err
			}
			if parent == nil {
				return nil, domain.ErrNotFound
			}
			inChain, err := uc.appearsInParentChain(parent, id)
			if err != nil {
				return nil, err
			}
			if inChain {
				return nil, domain.ErrCategoryCycle
			}
		}
		category.ParentID = *in.ParentID
	}
	category.UpdatedAt = time.Now()
	if err := uc.repo.Update(category); err != nil {
		return nil, err
	}
	return uc.toResponse(category, nil)
}

// List lista categorías, opcionalmente solo raíces.
func (uc *CategoryUseCase) List(onlyRoots bool, page dto.PageRequest) (*dto.CategoryListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(onlyRoots, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		resp, err := uc.toResponse(c, nil)
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}
	return &dto.CategoryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Children lista los hijos directos de una categoría.
func (uc *CategoryUseCase) Children(id string) ([]dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	children, err := uc.repo.ListByParent(id)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(children))
	for _, c := range children {
		resp, err := uc.toResponse(c, category)
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}
	return items, nil
}

// Ancestors enumera la cadena de padres hasta la raíz (la raíz al final).
// Coste O(profundidad); recorrido iterativo por punteros padre.
func (uc *CategoryUseCase) Ancestors(id string) ([]*entity.Category, error) {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	var ancestors []*entity.Category
	current := category
	for steps := 0; current.ParentID != ""; steps++ {
		if steps >= maxTreeDepth {
			return nil, domain.ErrCategoryCycle
		}
		parent, err := uc.repo.GetByID(current.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			break // padre borrado con SET NULL pendiente; tratamos como raíz
		}
		ancestors = append(ancestors, parent)
		current = parent
	}
	return ancestors, nil
}

// Descendants enumera todo el subárbol (lista de trabajo explícita, sin
// recursión). Coste O(tamaño del subárbol).
func (uc *CategoryUseCase) Descendants(id string) ([]*entity.Category, error) {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	var descendants []*entity.Category
	pending := []string{id}
	for len(pending) > 0 {
		currentID := pending[0]
		pending = pending[1:]
		children, err := uc.repo.ListByParent(currentID)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			descendants = append(descendants, child)
			pending = append(pending, child.ID)
		}
	}
	return descendants, nil
}

// Depth profundidad en el árbol (raíz = 0), recorrido iterativo.
func (uc *CategoryUseCase) Depth(category *entity.Category) (int, error) {
	depth := 0
	current := category
	for current.ParentID != "" {
		if depth >= maxTreeDepth {
			return 0, domain.ErrCategoryCycle
		}
		parent, err := uc.repo.GetByID(current.ParentID)
		if err != nil {
			return 0, err
		}
		if parent == nil {
			break
		}
		depth++
		current = parent
	}
	return depth, nil
}

// Delete elimina una categoría. Los hijos quedan como raíces y los productos
// sin categoría (ON DELETE SET NULL en BD).
func (uc *CategoryUseCase) Delete(id string) error {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// appearsInParentChain recorre desde start hacia la raíz buscando targetID.
func (uc *CategoryUseCase) appearsInParentChain(start *entity.Category, targetID string) (bool, error) {
	current := start
	for steps := 0; ; steps++ {
		if current.ID == targetID {
			return true, nil
		}
		if current.ParentID == "" {
			return false, nil
		}
		if steps >= maxTreeDepth {
			return false, domain.ErrCategoryCycle
		}
		parent, err := uc.repo.GetByID(current.ParentID)
		if err != nil {
			return false, err
		}
		if parent == nil {
			return false, nil
		}
		current = parent
	}
}

func (uc *CategoryUseCase) toResponse(c *entity.Category, parent *entity.Category) (*dto.CategoryResponse, error) {
	depth, err := uc.Depth(c)
	if err != nil {
		return nil, err
	}
	parentName := ""
	if c.ParentID != "" {
		if parent == nil || parent.ID != c.ParentID {
			parent, err = uc.repo.GetByID(c.ParentID)
			if err != nil {
				return nil, err
			}
		}
		if parent != nil {
			parentName = parent.Name
		}
	}
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		ParentID:    c.ParentID,
		ParentName:  parentName,
		IsRoot:      c.IsRoot(),
		Depth:       depth,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}, nil
}
