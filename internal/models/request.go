package models

// Canonical request statuses. Legacy spellings coming from older clients
// ("denied", "fulfilled") are normalized at the API boundary and never stored.
const (
	RequestPending    = "pending"
	RequestApproved   = "approved"
	RequestRejected   = "rejected"
	RequestCompleted  = "completed"
	RequestOutOfStock = "out_of_stock"
)

// Request priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Request is a user's ask to withdraw quantities of one or more items.
type Request struct {
	ID          string        `json:"id"`
	ProjectName string        `json:"project_name"`
	RequesterID int           `json:"requester_id"`
	Reason      string        `json:"reason,omitempty"`
	Priority    string        `json:"priority"`
	DueDate     string        `json:"due_date,omitempty"`
	Status      string        `json:"status"`
	Items       []RequestItem `json:"items"`
	CreatedAt   string        `json:"created_at,omitempty"`
	UpdatedAt   string        `json:"updated_at,omitempty"`
}

// RequestItem is a line of a request. Created atomically with its parent,
// never independently mutated.
type RequestItem struct {
	RequestID string `json:"request_id,omitempty"`
	ItemID    int    `json:"item_id"`
	Quantity  int    `json:"quantity"`
}

// NormalizeRequestStatus maps legacy client spellings onto the canonical
// enum. The second return is false for unknown values.
func NormalizeRequestStatus(s string) (string, bool) {
	switch s {
	case RequestPending, RequestApproved, RequestRejected, RequestCompleted, RequestOutOfStock:
		return s, true
	case "denied":
		return RequestRejected, true
	case "fulfilled":
		return RequestCompleted, true
	}
	return "", false
}

// ValidPriority reports whether p is a known priority.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}
