package repo

// MostRequestedItem names the item appearing on the most request lines.
type MostRequestedItem struct {
	Name         string `json:"name"`
	RequestCount int    `json:"request_count"`
}

// Stats are the dashboard aggregates.
type Stats struct {
	TotalItems        int               `json:"total_items"`
	TotalUsers        int               `json:"total_users"`
	PendingRequests   int               `json:"pending_requests"`
	ApprovedRequests  int               `json:"approved_requests"`
	ActiveLoans       int               `json:"active_loans"`
	LowStockCount     int               `json:"low_stock_count"`
	OutOfStockCount   int               `json:"out_of_stock_count"`
	MostRequestedItem MostRequestedItem `json:"most_requested_item"`
}

type StatsRepository interface {
	GetDashboardStats() (Stats, error)
}
