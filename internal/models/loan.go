package models

import "time"

// Persisted loan statuses. "overdue" is a display-only label computed at
// read time over active loans past their due date; it is never stored.
const (
	LoanActive   = "active"
	LoanReturned = "returned"
	LoanOverdue  = "overdue"
)

// Loan is a temporary, returnable withdrawal of item quantity.
type Loan struct {
	ID           string     `json:"id"`
	UserID       int        `json:"user_id"`
	ItemID       int        `json:"item_id"`
	Quantity     int        `json:"quantity"`
	Status       string     `json:"status"`
	BorrowedDate time.Time  `json:"borrowed_date"`
	DueDate      time.Time  `json:"due_date"`
	ReturnedDate *time.Time `json:"returned_date,omitempty"`
	Notes        string     `json:"notes,omitempty"`
}

// DisplayStatus returns the label shown to clients, overlaying "overdue"
// on active loans past due.
func (l Loan) DisplayStatus(now time.Time) string {
	if l.Status == LoanActive && l.DueDate.Before(now) {
		return LoanOverdue
	}
	return l.Status
}
