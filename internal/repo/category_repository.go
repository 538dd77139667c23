package repo

import "github.com/gudang-mitra/gudang-api/internal/models"

type CategoryRepository interface {
	Create(c models.Category) (models.Category, error)
	GetAll() ([]models.Category, error)
	GetBySlug(slug string) (models.Category, error)
	Update(c models.Category) (models.Category, error)
	Delete(id int) error
}
