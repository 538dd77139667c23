package repo

import (
	"sync"

	"github.com/gudang-mitra/gudang-api/internal/models"
)

type InMemoryCategoryRepository struct {
	mu         sync.Mutex
	categories []models.Category
	nextID     int
}

func NewInMemoryCategoryRepository() *InMemoryCategoryRepository {
	return &InMemoryCategoryRepository{
		categories: []models.Category{},
		nextID:     1,
	}
}

func (r *InMemoryCategoryRepository) Create(c models.Category) (models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.categories {
		if existing.Slug == c.Slug {
			return models.Category{}, ErrDuplicatedValueUnique
		}
	}
	c.ID = r.nextID
	r.nextID++
	r.categories = append(r.categories, c)
	return c, nil
}

func (r *InMemoryCategoryRepository) GetAll() ([]models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Category, len(r.categories))
	copy(out, r.categories)
	return out, nil
}

func (r *InMemoryCategoryRepository) GetBySlug(slug string) (models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return models.Category{}, ErrCategoryNotFound
}

func (r *InMemoryCategoryRepository) Update(c models.Category) (models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for idx, existing := range r.categories {
		if existing.ID == c.ID {
			r.categories[idx] = c
			return c, nil
		}
	}
	return models.Category{}, ErrCategoryNotFound
}

func (r *InMemoryCategoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for idx, c := range r.categories {
		if c.ID == id {
			r.categories = append(r.categories[:idx], r.categories[idx+1:]...)
			return nil
		}
	}
	return ErrCategoryNotFound
}
