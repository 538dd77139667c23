package models

// Item status labels derived from quantity vs min_quantity.
const (
	StatusInStock    = "in-stock"
	StatusLowStock   = "low-stock"
	StatusOutOfStock = "out-of-stock"
)

// Item represents a warehouse stock-keeping unit.
type Item struct {
	ID               int     `json:"id"`
	Name             string  `json:"name"`
	Description      string  `json:"description,omitempty"`
	Category         string  `json:"category"`
	Quantity         int     `json:"quantity"`
	MinQuantity      int     `json:"min_quantity"`
	BorrowedQuantity int     `json:"borrowed_quantity"`
	Price            float64 `json:"price"`
	CreatedAt        string  `json:"created_at,omitempty"`
	UpdatedAt        string  `json:"updated_at,omitempty"`
}

// ItemStatus is the single source of truth for an item's stock label.
// Stored status values are never trusted over this computation.
func ItemStatus(quantity, minQuantity int) string {
	switch {
	case quantity <= 0:
		return StatusOutOfStock
	case quantity <= minQuantity:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// Status returns the derived stock label for the item.
func (i Item) Status() string {
	return ItemStatus(i.Quantity, i.MinQuantity)
}

// Available returns how many units can still be borrowed.
func (i Item) Available() int {
	avail := i.Quantity - i.BorrowedQuantity
	if avail < 0 {
		return 0
	}
	return avail
}
