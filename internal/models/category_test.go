package models

import "testing"

func TestCategoryDisplayName(t *testing.T) {
	tests := []struct {
		slug     string
		expected string
	}{
		{"cleaning-materials", "Cleaning Materials"},
		{"office-supplies", "Office Supplies"},
		{"it-equipment", "IT Equipment"},
		{"atk", "ATK (Alat Tulis Kantor)"},
		{"electronics", "Electronics"},
		{"safety-equipment", "Safety Equipment"},
		{"spare-parts", "Spare Parts"},
		{"misc", "Misc"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			if got := CategoryDisplayName(tt.slug); got != tt.expected {
				t.Errorf("CategoryDisplayName(%q) = %q, want %q", tt.slug, got, tt.expected)
			}
		})
	}
}
