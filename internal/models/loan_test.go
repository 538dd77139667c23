package models

import (
	"testing"
	"time"
)

func TestLoanDisplayStatus(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		loan     Loan
		expected string
	}{
		{"active before due", Loan{Status: LoanActive, DueDate: now.Add(48 * time.Hour)}, LoanActive},
		{"active past due", Loan{Status: LoanActive, DueDate: now.Add(-time.Hour)}, LoanOverdue},
		{"returned past due stays returned", Loan{Status: LoanReturned, DueDate: now.Add(-time.Hour)}, LoanReturned},
		{"returned before due", Loan{Status: LoanReturned, DueDate: now.Add(time.Hour)}, LoanReturned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.loan.DisplayStatus(now); got != tt.expected {
				t.Errorf("DisplayStatus() = %q, want %q", got, tt.expected)
			}
		})
	}
}
