package repo

import (
	"strings"
	"sync"
	"time"

	"github.com/gudang-mitra/gudang-api/internal/models"
)

// InMemoryItemRepository is an in-memory implementation of ItemRepository.
type InMemoryItemRepository struct {
	mu     sync.Mutex
	items  []models.Item
	nextID int
}

// NewInMemoryItemRepository creates a new instance of InMemoryItemRepository.
func NewInMemoryItemRepository() *InMemoryItemRepository {
	return &InMemoryItemRepository{
		items:  []models.Item{},
		nextID: 1,
	}
}

func (r *InMemoryItemRepository) Create(item models.Item) (models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, i := range r.items {
		if i.Name == item.Name {
			return models.Item{}, ErrDuplicatedValueUnique
		}
	}
	item.ID = r.nextID
	r.nextID++
	r.items = append(r.items, item)
	return item, nil
}

func (r *InMemoryItemRepository) GetAll() ([]models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Item, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *InMemoryItemRepository) GetByID(id int) (models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getByIDLocked(id)
}

func (r *InMemoryItemRepository) getByIDLocked(id int) (models.Item, error) {
	for _, i := range r.items {
		if i.ID == id {
			return i, nil
		}
	}
	return models.Item{}, ErrItemNotFound
}

func (r *InMemoryItemRepository) GetByName(name string) (models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, i := range r.items {
		if i.Name == name {
			return i, nil
		}
	}
	return models.Item{}, ErrItemNotFound
}

func (r *InMemoryItemRepository) Update(item models.Item) (models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updateLocked(item)
}

func (r *InMemoryItemRepository) updateLocked(item models.Item) (models.Item, error) {
	for idx, i := range r.items {
		if i.ID == item.ID {
			// borrowed_quantity is owned by the loan workflow
			item.BorrowedQuantity = i.BorrowedQuantity
			r.items[idx] = item
			return item, nil
		}
	}
	return models.Item{}, ErrItemNotFound
}

func (r *InMemoryItemRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for idx, i := range r.items {
		if i.ID == id {
			r.items = append(r.items[:idx], r.items[idx+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

func matchesItemFilter(i models.Item, f ItemFilter) bool {
	if f.Name != "" && !strings.Contains(strings.ToLower(i.Name), strings.ToLower(f.Name)) {
		return false
	}
	if f.Category != "" && i.Category != f.Category {
		return false
	}
	if f.MinPrice != nil && i.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && i.Price > *f.MaxPrice {
		return false
	}
	if f.MinQty != nil && i.Quantity < *f.MinQty {
		return false
	}
	if f.MaxQty != nil && i.Quantity > *f.MaxQty {
		return false
	}
	return true
}

func (r *InMemoryItemRepository) Filter(f ItemFilter) ([]models.Item, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var filtered []models.Item
	for _, i := range r.items {
		if matchesItemFilter(i, f) {
			filtered = append(filtered, i)
		}
	}
	total := len(filtered)

	start := 0
	if f.Offset != nil {
		start = clamp(*f.Offset, 0, len(filtered))
	}
	filtered = filtered[start:]

	if f.Limit != nil && *f.Limit >= 0 && *f.Limit < len(filtered) {
		filtered = filtered[:*f.Limit]
	}
	return filtered, total, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (r *InMemoryItemRepository) AdjustQuantity(itemID, delta int) (models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx, i := range r.items {
		if i.ID == itemID {
			if i.Quantity+delta < 0 {
				return models.Item{}, ErrInvalidQuantityChange
			}
			i.Quantity += delta
			i.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
			r.items[idx] = i
			return i, nil
		}
	}
	return models.Item{}, ErrInvalidQuantityChange
}

// Clear removes every item; used by tests.
func (r *InMemoryItemRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = []models.Item{}
	r.nextID = 1
}
