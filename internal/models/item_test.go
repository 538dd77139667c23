package models

import "testing"

func TestItemStatus(t *testing.T) {
	tests := []struct {
		name        string
		quantity    int
		minQuantity int
		expected    string
	}{
		{"well stocked", 10, 3, StatusInStock},
		{"just above threshold", 4, 3, StatusInStock},
		{"at threshold", 3, 3, StatusLowStock},
		{"below threshold", 2, 3, StatusLowStock},
		{"zero quantity", 0, 3, StatusOutOfStock},
		{"zero quantity zero threshold", 0, 0, StatusOutOfStock},
		{"negative quantity", -1, 3, StatusOutOfStock},
		{"after a deduction leaving stock", 6, 3, StatusInStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ItemStatus(tt.quantity, tt.minQuantity); got != tt.expected {
				t.Errorf("ItemStatus(%d, %d) = %q, want %q", tt.quantity, tt.minQuantity, got, tt.expected)
			}
		})
	}
}

func TestItemAvailable(t *testing.T) {
	tests := []struct {
		name     string
		item     Item
		expected int
	}{
		{"nothing borrowed", Item{Quantity: 10}, 10},
		{"partially borrowed", Item{Quantity: 10, BorrowedQuantity: 4}, 6},
		{"fully borrowed", Item{Quantity: 5, BorrowedQuantity: 5}, 0},
		{"over-borrowed floors at zero", Item{Quantity: 3, BorrowedQuantity: 5}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.Available(); got != tt.expected {
				t.Errorf("Available() = %d, want %d", got, tt.expected)
			}
		})
	}
}
