package repo

import (
	"sync"
	"time"

	"github.com/gudang-mitra/gudang-api/internal/models"
)

type InMemoryMovementRepository struct {
	mu        sync.Mutex
	movements []models.Movement
	nextID    int
}

func NewInMemoryMovementRepository() *InMemoryMovementRepository {
	return &InMemoryMovementRepository{
		movements: []models.Movement{},
		nextID:    1,
	}
}

func (r *InMemoryMovementRepository) Log(itemID, delta int, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movements = append(r.movements, models.Movement{
		ID:        r.nextID,
		ItemID:    itemID,
		Delta:     delta,
		Reason:    reason,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	r.nextID++
	return nil
}

func (r *InMemoryMovementRepository) GetByItemID(itemID int, mf MovementFilter) ([]models.Movement, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var filtered []models.Movement
	for _, m := range r.movements {
		if m.ItemID != itemID {
			continue
		}
		ts, err := time.Parse(time.RFC3339, m.CreatedAt)
		if err == nil {
			if mf.Since != nil && ts.Before(*mf.Since) {
				continue
			}
			if mf.Until != nil && ts.After(*mf.Until) {
				continue
			}
		}
		filtered = append(filtered, m)
	}

	// newest first, mirroring the Postgres ordering
	for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
		filtered[i], filtered[j] = filtered[j], filtered[i]
	}

	total := len(filtered)
	if mf.Limit != nil && *mf.Limit == 0 {
		return []models.Movement{}, total, nil
	}

	start := 0
	if mf.Offset != nil {
		start = clamp(*mf.Offset, 0, len(filtered))
	}
	filtered = filtered[start:]

	limit := defaultMovementLimit
	if mf.Limit != nil && *mf.Limit > 0 {
		limit = min(*mf.Limit, defaultMovementLimit)
	}
	if limit < len(filtered) {
		filtered = filtered[:limit]
	}
	return filtered, total, nil
}

// AddMovement seeds a movement record directly; used by tests.
func (r *InMemoryMovementRepository) AddMovement(m models.Movement) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = r.nextID
	r.nextID++
	r.movements = append(r.movements, m)
}

func (r *InMemoryMovementRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movements = []models.Movement{}
	r.nextID = 1
}
