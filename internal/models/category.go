package models

import "strings"

// Category groups items by a free-text slug. Items reference the slug, not
// the row, so deleting a category never cascades to items.
type Category struct {
	ID          int    `json:"id"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// categoryDisplayNames holds the display names that differ from plain
// slug title-casing. Everything else falls through to the generic rule.
var categoryDisplayNames = map[string]string{
	"cleaning-materials": "Cleaning Materials",
	"office-supplies":    "Office Supplies",
	"it-equipment":       "IT Equipment",
	"atk":                "ATK (Alat Tulis Kantor)",
	"electronics":        "Electronics",
	"furniture":          "Furniture",
	"safety-equipment":   "Safety Equipment",
}

// CategoryDisplayName formats a category slug for display. Every formatting
// path goes through here so the mapping lives in exactly one place.
func CategoryDisplayName(slug string) string {
	if name, ok := categoryDisplayNames[slug]; ok {
		return name
	}
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
