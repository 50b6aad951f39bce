package repository

import "github.com/jhoicas/pab-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetByName(name string) (*entity.Category, error)
	Update(category *entity.Category) error
	List(onlyRoots bool, limit, offset int) ([]*entity.Category, error)
	ListByParent(parentID string) ([]*entity.Category, error)
	Delete(id string) error
}
