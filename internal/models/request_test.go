package models

import "testing"

func TestNormalizeRequestStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		ok       bool
	}{
		{"pending", RequestPending, true},
		{"approved", RequestApproved, true},
		{"rejected", RequestRejected, true},
		{"completed", RequestCompleted, true},
		{"out_of_stock", RequestOutOfStock, true},
		{"denied", RequestRejected, true},
		{"fulfilled", RequestCompleted, true},
		{"Approved", "", false},
		{"cancelled", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := NormalizeRequestStatus(tt.input)
			if ok != tt.ok {
				t.Fatalf("NormalizeRequestStatus(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if got != tt.expected {
				t.Errorf("NormalizeRequestStatus(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestValidPriority(t *testing.T) {
	for _, p := range []string{PriorityLow, PriorityMedium, PriorityHigh} {
		if !ValidPriority(p) {
			t.Errorf("expected %q to be a valid priority", p)
		}
	}
	for _, p := range []string{"urgent", "", "HIGH"} {
		if ValidPriority(p) {
			t.Errorf("expected %q to be rejected", p)
		}
	}
}
