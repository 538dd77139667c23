package repo

import (
	"time"

	"github.com/gudang-mitra/gudang-api/internal/models"
)

// MovementFilter narrows the stock-audit listing for an item.
type MovementFilter struct {
	Since  *time.Time
	Until  *time.Time
	Offset *int
	Limit  *int
}

// MovementRepository records and lists the stock-mutation audit trail.
type MovementRepository interface {
	Log(itemID, delta int, reason string) error
	GetByItemID(itemID int, mf MovementFilter) ([]models.Movement, int, error)
}
