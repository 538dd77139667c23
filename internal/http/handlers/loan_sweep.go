package handlers

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gudang-mitra/gudang-api/internal/models"
	"github.com/gudang-mitra/gudang-api/internal/repo"
)

var (
	sweepMu       sync.Mutex
	sweptOverdue  = map[string]bool{}
	sweepInterval = time.Hour
)

// StartOverdueLoanSweepLoop periodically reminds borrowers of overdue
// loans. Run it in a goroutine from main.
func StartOverdueLoanSweepLoop() {
	for {
		time.Sleep(sweepInterval)
		SweepOverdueLoans()
	}
}

// SweepOverdueLoans writes a loan_due notification to the borrower of
// every active loan past its due date. Each loan is flagged at most once
// per process lifetime.
func SweepOverdueLoans() {
	loans, err := loanRepo.Filter(repo.LoanFilter{Status: models.LoanOverdue})
	if err != nil {
		log.Printf("overdue loan sweep failed: %v", err)
		return
	}

	sweepMu.Lock()
	defer sweepMu.Unlock()
	for _, loan := range loans {
		if sweptOverdue[loan.ID] {
			continue
		}

		itemName := fmt.Sprintf("item %d", loan.ItemID)
		if item, err := itemRepo.GetByID(loan.ItemID); err == nil {
			itemName = fmt.Sprintf("%q", item.Name)
		}

		itemID := loan.ItemID
		if _, err := notificationRepo.Create(models.Notification{
			UserID:        loan.UserID,
			Type:          models.NotifLoanDue,
			Message:       fmt.Sprintf("Loan of %d x %s was due on %s", loan.Quantity, itemName, loan.DueDate.Format("2006-01-02")),
			RelatedItemID: &itemID,
		}); err != nil {
			log.Printf("failed to write overdue notification for loan %s: %v", loan.ID, err)
			continue
		}
		sweptOverdue[loan.ID] = true
	}
}
