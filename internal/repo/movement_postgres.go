package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gudang-mitra/gudang-api/internal/models"
)

type PostgresMovementRepository struct {
	db *sql.DB
}

func NewPostgresMovementRepository(db *sql.DB) *PostgresMovementRepository {
	return &PostgresMovementRepository{db: db}
}

// Log inserts a stock movement record.
func (r *PostgresMovementRepository) Log(itemID, delta int, reason string) error {
	query := `INSERT INTO movements (item_id, delta, reason, created_at) VALUES ($1, $2, $3, $4)`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, query, itemID, delta, reason, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to insert movement: %w", err)
	}
	return nil
}

const defaultMovementLimit = 100

// GetByItemID returns the movement history of an item, newest first.
func (r *PostgresMovementRepository) GetByItemID(itemID int, mf MovementFilter) ([]models.Movement, int, error) {
	whereClause, args := r.buildWhereClause(itemID, mf)

	total, err := r.getTotal(whereClause, args)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get total count: %w", err)
	}

	if mf.Limit != nil && *mf.Limit == 0 {
		return []models.Movement{}, total, nil
	}
	if mf.Offset != nil && *mf.Offset >= total {
		return []models.Movement{}, total, nil
	}

	query, queryArgs := r.buildMainQuery(whereClause, args, mf)
	movements, err := r.executeQuery(query, queryArgs)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to execute query: %w", err)
	}

	return movements, total, nil
}

func (r *PostgresMovementRepository) buildWhereClause(itemID int, mf MovementFilter) (string, []any) {
	args := []any{itemID}
	whereClause := "WHERE item_id = $1"
	argIndex := 2

	if mf.Since != nil {
		whereClause += fmt.Sprintf(" AND created_at >= $%d", argIndex)
		args = append(args, *mf.Since)
		argIndex++
	}
	if mf.Until != nil {
		whereClause += fmt.Sprintf(" AND created_at <= $%d", argIndex)
		args = append(args, *mf.Until)
	}

	return whereClause, args
}

func (r *PostgresMovementRepository) buildMainQuery(whereClause string, baseArgs []any, mf MovementFilter) (string, []any) {
	query := fmt.Sprintf("SELECT id, item_id, delta, reason, created_at FROM movements %s ORDER BY created_at DESC", whereClause)
	args := make([]any, len(baseArgs))
	copy(args, baseArgs)
	argIndex := len(baseArgs) + 1

	limit := defaultMovementLimit
	if mf.Limit != nil && *mf.Limit > 0 {
		limit = min(*mf.Limit, defaultMovementLimit)
	}
	query += fmt.Sprintf(" LIMIT $%d", argIndex)
	args = append(args, limit)
	argIndex++

	if mf.Offset != nil && *mf.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, *mf.Offset)
	}

	return query, args
}

func (r *PostgresMovementRepository) getTotal(whereClause string, args []any) (int, error) {
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM movements %s", whereClause)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *PostgresMovementRepository) executeQuery(query string, args []any) ([]models.Movement, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []models.Movement
	for rows.Next() {
		var m models.Movement
		if err := rows.Scan(&m.ID, &m.ItemID, &m.Delta, &m.Reason, &m.CreatedAt); err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}

func logMovementTx(ctx context.Context, tx *sql.Tx, itemID, delta int, reason string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO movements (item_id, delta, reason, created_at) VALUES ($1, $2, $3, $4)`,
		itemID, delta, reason, time.Now().UTC())
	return err
}
