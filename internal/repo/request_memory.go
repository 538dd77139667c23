package repo

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gudang-mitra/gudang-api/internal/models"
)

// InMemoryRequestRepository mirrors the Postgres approval semantics against
// an in-memory item repository, including the all-or-nothing outcome: every
// referenced item is checked before anything is mutated.
type InMemoryRequestRepository struct {
	mu        sync.Mutex
	requests  []models.Request
	items     *InMemoryItemRepository
	movements *InMemoryMovementRepository
}

func NewInMemoryRequestRepository(items *InMemoryItemRepository, movements *InMemoryMovementRepository) *InMemoryRequestRepository {
	return &InMemoryRequestRepository{
		requests:  []models.Request{},
		items:     items,
		movements: movements,
	}
}

func (r *InMemoryRequestRepository) Create(req models.Request) (models.Request, error) {
	for _, line := range req.Items {
		if _, err := r.items.GetByID(line.ItemID); err != nil {
			return models.Request{}, err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	req.ID = uuid.NewString()
	req.Status = models.RequestPending
	now := time.Now().UTC().Format(time.RFC3339)
	req.CreatedAt = now
	req.UpdatedAt = now
	for idx := range req.Items {
		req.Items[idx].RequestID = req.ID
	}
	r.requests = append(r.requests, req)
	return req, nil
}

func (r *InMemoryRequestRepository) GetAll() ([]models.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Request, len(r.requests))
	copy(out, r.requests)
	return out, nil
}

func (r *InMemoryRequestRepository) GetByRequester(userID int) ([]models.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Request
	for _, req := range r.requests {
		if req.RequesterID == userID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *InMemoryRequestRepository) GetByID(id string) (models.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.requests {
		if req.ID == id {
			return req, nil
		}
	}
	return models.Request{}, ErrRequestNotFound
}

func (r *InMemoryRequestRepository) UpdateStatus(id, newStatus string) (models.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, req := range r.requests {
		if req.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return models.Request{}, ErrRequestNotFound
	}
	req := r.requests[idx]

	if newStatus == models.RequestApproved {
		if req.Status == models.RequestApproved {
			return models.Request{}, ErrAlreadyApproved
		}
		if req.Status != models.RequestPending {
			return models.Request{}, ErrRequestNotPending
		}

		// verify every line before touching any item, so a failure leaves
		// the whole state untouched
		for _, line := range req.Items {
			if _, err := r.items.GetByID(line.ItemID); err != nil {
				return models.Request{}, err
			}
		}
		for _, line := range req.Items {
			item, _ := r.items.GetByID(line.ItemID)
			newQuantity := item.Quantity - line.Quantity
			if newQuantity < 0 {
				newQuantity = 0
			}
			r.items.setQuantity(line.ItemID, newQuantity)
			_ = r.movements.Log(line.ItemID, newQuantity-item.Quantity, models.MovementApproval)
		}
	}

	req.Status = newStatus
	req.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	r.requests[idx] = req
	return req, nil
}

// Clear removes every request; used by tests.
func (r *InMemoryRequestRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = []models.Request{}
}

func (r *InMemoryItemRepository) setQuantity(id, quantity int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for idx, i := range r.items {
		if i.ID == id {
			i.Quantity = quantity
			i.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
			r.items[idx] = i
			return
		}
	}
}
