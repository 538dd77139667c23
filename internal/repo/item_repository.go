package repo

import "github.com/gudang-mitra/gudang-api/internal/models"

// ItemFilter narrows item listings. Nil pointers mean "no bound".
type ItemFilter struct {
	Name     string
	Category string
	MinPrice *float64
	MaxPrice *float64
	MinQty   *int
	MaxQty   *int
	Offset   *int
	Limit    *int
}

// ItemRepository defines the interface for item data operations.
type ItemRepository interface {
	Create(item models.Item) (models.Item, error)
	GetAll() ([]models.Item, error)
	GetByID(id int) (models.Item, error)
	GetByName(name string) (models.Item, error)
	Update(item models.Item) (models.Item, error)
	Delete(id int) error
	Filter(f ItemFilter) ([]models.Item, int, error)
	AdjustQuantity(itemID, delta int) (models.Item, error)
}
