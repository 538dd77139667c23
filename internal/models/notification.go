package models

import "time"

// Notification types for request and loan lifecycle events.
const (
	NotifRequestApproved  = "request_approved"
	NotifRequestRejected  = "request_rejected"
	NotifRequestCompleted = "request_completed"
	NotifRequestSubmitted = "request_submitted"
	NotifLoanDue          = "loan_due"
	NotifLowStock         = "low_stock"
)

type Notification struct {
	ID            int       `json:"id"`
	UserID        int       `json:"user_id"`
	Type          string    `json:"type"`
	Message       string    `json:"message"`
	IsRead        bool      `json:"is_read"`
	RelatedItemID *int      `json:"related_item_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
