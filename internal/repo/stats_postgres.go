package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/gudang-mitra/gudang-api/internal/models"
)

type PostgresStatsRepository struct {
	db *sql.DB
}

func NewPostgresStatsRepository(db *sql.DB) *PostgresStatsRepository {
	return &PostgresStatsRepository{db: db}
}

func (r *PostgresStatsRepository) GetDashboardStats() (Stats, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var s Stats

	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&s.TotalItems)
	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&s.TotalUsers)
	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM requests WHERE status = $1`, models.RequestPending).Scan(&s.PendingRequests)
	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM requests WHERE status = $1`, models.RequestApproved).Scan(&s.ApprovedRequests)
	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM loans WHERE status = $1`, models.LoanActive).Scan(&s.ActiveLoans)
	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items WHERE quantity > 0 AND quantity <= min_quantity`).Scan(&s.LowStockCount)
	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items WHERE quantity <= 0`).Scan(&s.OutOfStockCount)

	_ = r.db.QueryRowContext(ctx, `
		SELECT i.name, COUNT(*) as cnt
		FROM request_items ri
		JOIN items i ON ri.item_id = i.id
		GROUP BY i.name
		ORDER BY cnt DESC
		LIMIT 1
	`).Scan(&s.MostRequestedItem.Name, &s.MostRequestedItem.RequestCount)

	return s, nil
}
