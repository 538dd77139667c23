package repo

import (
	"time"

	"github.com/gudang-mitra/gudang-api/internal/models"
)

// LoanFilter narrows loan listings. Status accepts the persisted statuses
// plus "overdue", which selects active loans past their due date.
type LoanFilter struct {
	UserID *int
	ItemID *int
	Status string
}

// LoanRepository tracks temporary withdrawals against items. A borrow holds
// units via the item's borrowed_quantity counter without touching the
// canonical quantity; a return releases them.
type LoanRepository interface {
	Borrow(userID, itemID, quantity int, dueDate time.Time, notes string) (models.Loan, error)
	Return(loanID, notes string) (models.Loan, error)
	GetByID(id string) (models.Loan, error)
	Filter(f LoanFilter) ([]models.Loan, error)
}
