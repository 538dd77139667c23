package repo

import "github.com/gudang-mitra/gudang-api/internal/models"

// InMemoryStatsRepository computes aggregates over the in-memory repos the
// handlers are already wired with.
type InMemoryStatsRepository struct {
	items    *InMemoryItemRepository
	users    *InMemoryUserRepository
	requests *InMemoryRequestRepository
	loans    *InMemoryLoanRepository
}

func NewInMemoryStatsRepository() *InMemoryStatsRepository {
	return &InMemoryStatsRepository{}
}

func (r *InMemoryStatsRepository) SetRepositories(items *InMemoryItemRepository, users *InMemoryUserRepository, requests *InMemoryRequestRepository, loans *InMemoryLoanRepository) {
	r.items = items
	r.users = users
	r.requests = requests
	r.loans = loans
}

func (r *InMemoryStatsRepository) GetDashboardStats() (Stats, error) {
	var s Stats

	items, _ := r.items.GetAll()
	s.TotalItems = len(items)
	for _, i := range items {
		switch i.Status() {
		case models.StatusLowStock:
			s.LowStockCount++
		case models.StatusOutOfStock:
			s.OutOfStockCount++
		}
	}

	r.users.mu.Lock()
	s.TotalUsers = len(r.users.users)
	r.users.mu.Unlock()

	requests, _ := r.requests.GetAll()
	lineCounts := map[int]int{}
	for _, req := range requests {
		switch req.Status {
		case models.RequestPending:
			s.PendingRequests++
		case models.RequestApproved:
			s.ApprovedRequests++
		}
		for _, line := range req.Items {
			lineCounts[line.ItemID]++
		}
	}
	for itemID, count := range lineCounts {
		if count > s.MostRequestedItem.RequestCount {
			item, err := r.items.GetByID(itemID)
			if err != nil {
				continue
			}
			s.MostRequestedItem = MostRequestedItem{Name: item.Name, RequestCount: count}
		}
	}

	active, _ := r.loans.Filter(LoanFilter{Status: models.LoanActive})
	s.ActiveLoans = len(active)

	return s, nil
}
