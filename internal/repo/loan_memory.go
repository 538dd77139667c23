package repo

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gudang-mitra/gudang-api/internal/models"
)

// InMemoryLoanRepository mirrors the Postgres borrow/return semantics
// against an in-memory item repository.
type InMemoryLoanRepository struct {
	mu        sync.Mutex
	loans     []models.Loan
	items     *InMemoryItemRepository
	movements *InMemoryMovementRepository
}

func NewInMemoryLoanRepository(items *InMemoryItemRepository, movements *InMemoryMovementRepository) *InMemoryLoanRepository {
	return &InMemoryLoanRepository{
		loans:     []models.Loan{},
		items:     items,
		movements: movements,
	}
}

func (r *InMemoryLoanRepository) Borrow(userID, itemID, quantity int, dueDate time.Time, notes string) (models.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, err := r.items.GetByID(itemID)
	if err != nil {
		return models.Loan{}, err
	}
	if quantity > item.Quantity-item.BorrowedQuantity {
		return models.Loan{}, ErrInsufficientStock
	}

	loan := models.Loan{
		ID:           uuid.NewString(),
		UserID:       userID,
		ItemID:       itemID,
		Quantity:     quantity,
		Status:       models.LoanActive,
		BorrowedDate: time.Now().UTC(),
		DueDate:      dueDate,
		Notes:        notes,
	}
	r.loans = append(r.loans, loan)
	r.items.adjustBorrowed(itemID, quantity)
	_ = r.movements.Log(itemID, -quantity, models.MovementBorrow)
	return loan, nil
}

func (r *InMemoryLoanRepository) Return(loanID, notes string) (models.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx, loan := range r.loans {
		if loan.ID != loanID {
			continue
		}
		if loan.Status != models.LoanActive {
			return models.Loan{}, ErrLoanAlreadyReturned
		}
		now := time.Now().UTC()
		loan.Status = models.LoanReturned
		loan.ReturnedDate = &now
		if notes != "" {
			loan.Notes = notes
		}
		r.loans[idx] = loan
		r.items.adjustBorrowed(loan.ItemID, -loan.Quantity)
		_ = r.movements.Log(loan.ItemID, loan.Quantity, models.MovementReturn)
		return loan, nil
	}
	return models.Loan{}, ErrLoanNotFound
}

func (r *InMemoryLoanRepository) GetByID(id string) (models.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, loan := range r.loans {
		if loan.ID == id {
			return loan, nil
		}
	}
	return models.Loan{}, ErrLoanNotFound
}

func (r *InMemoryLoanRepository) Filter(f LoanFilter) ([]models.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	var out []models.Loan
	for _, loan := range r.loans {
		if f.UserID != nil && loan.UserID != *f.UserID {
			continue
		}
		if f.ItemID != nil && loan.ItemID != *f.ItemID {
			continue
		}
		switch f.Status {
		case models.LoanActive, models.LoanReturned:
			if loan.Status != f.Status {
				continue
			}
		case models.LoanOverdue:
			if loan.Status != models.LoanActive || !loan.DueDate.Before(now) {
				continue
			}
		}
		out = append(out, loan)
	}
	return out, nil
}

// Clear removes every loan; used by tests.
func (r *InMemoryLoanRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loans = []models.Loan{}
}

// adjustBorrowed shifts an item's borrowed counter, floored at zero.
func (r *InMemoryItemRepository) adjustBorrowed(id, delta int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for idx, i := range r.items {
		if i.ID == id {
			i.BorrowedQuantity += delta
			if i.BorrowedQuantity < 0 {
				i.BorrowedQuantity = 0
			}
			i.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
			r.items[idx] = i
			return
		}
	}
}
