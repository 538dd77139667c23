package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/gudang-mitra/gudang-api/internal/models"
)

type PostgresRequestRepository struct {
	db *sql.DB
}

func NewPostgresRequestRepository(db *sql.DB) *PostgresRequestRepository {
	return &PostgresRequestRepository{db: db}
}

// Create inserts the request header and all of its item lines in one
// transaction. A bad item reference rolls back the whole request.
func (r *PostgresRequestRepository) Create(req models.Request) (models.Request, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Request{}, err
	}
	defer tx.Rollback()

	req.ID = uuid.NewString()
	req.Status = models.RequestPending
	now := time.Now().UTC().Format(time.RFC3339)
	req.CreatedAt = now
	req.UpdatedAt = now

	_, err = tx.ExecContext(ctx, `
		INSERT INTO requests (id, project_name, requester_id, reason, priority, due_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		req.ID, req.ProjectName, req.RequesterID, req.Reason, req.Priority, req.DueDate, req.Status, req.CreatedAt, req.UpdatedAt)
	if err != nil {
		return models.Request{}, err
	}

	for idx := range req.Items {
		req.Items[idx].RequestID = req.ID
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM items WHERE id = $1)`, req.Items[idx].ItemID).Scan(&exists); err != nil {
			return models.Request{}, err
		}
		if !exists {
			return models.Request{}, ErrItemNotFound
		}
		_, err = tx.ExecContext(ctx, `INSERT INTO request_items (request_id, item_id, quantity) VALUES ($1, $2, $3)`,
			req.ID, req.Items[idx].ItemID, req.Items[idx].Quantity)
		if err != nil {
			return models.Request{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Request{}, err
	}
	return req, nil
}

func (r *PostgresRequestRepository) GetAll() ([]models.Request, error) {
	return r.list(`SELECT id, project_name, requester_id, reason, priority, due_date, status, created_at, updated_at
		FROM requests ORDER BY created_at DESC`)
}

func (r *PostgresRequestRepository) GetByRequester(userID int) ([]models.Request, error) {
	return r.list(`SELECT id, project_name, requester_id, reason, priority, due_date, status, created_at, updated_at
		FROM requests WHERE requester_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *PostgresRequestRepository) list(query string, args ...any) ([]models.Request, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []models.Request
	for rows.Next() {
		var req models.Request
		if err := rows.Scan(&req.ID, &req.ProjectName, &req.RequesterID, &req.Reason, &req.Priority, &req.DueDate, &req.Status, &req.CreatedAt, &req.UpdatedAt); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for idx := range requests {
		items, err := r.itemsOf(ctx, requests[idx].ID)
		if err != nil {
			return nil, err
		}
		requests[idx].Items = items
	}
	return requests, nil
}

func (r *PostgresRequestRepository) GetByID(id string) (models.Request, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var req models.Request
	err := r.db.QueryRowContext(ctx, `SELECT id, project_name, requester_id, reason, priority, due_date, status, created_at, updated_at
		FROM requests WHERE id = $1`, id).
		Scan(&req.ID, &req.ProjectName, &req.RequesterID, &req.Reason, &req.Priority, &req.DueDate, &req.Status, &req.CreatedAt, &req.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Request{}, ErrRequestNotFound
	}
	if err != nil {
		return models.Request{}, err
	}

	req.Items, err = r.itemsOf(ctx, id)
	return req, err
}

func (r *PostgresRequestRepository) itemsOf(ctx context.Context, requestID string) ([]models.RequestItem, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT request_id, item_id, quantity FROM request_items WHERE request_id = $1 ORDER BY item_id`, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.RequestItem
	for rows.Next() {
		var ri models.RequestItem
		if err := rows.Scan(&ri.RequestID, &ri.ItemID, &ri.Quantity); err != nil {
			return nil, err
		}
		items = append(items, ri)
	}
	return items, rows.Err()
}

// UpdateStatus transitions a request and, on pending→approved, deducts the
// requested quantities from the items. Each item row is locked with
// FOR UPDATE so concurrent approvals against the same item cannot lose
// updates. Everything commits or nothing does.
func (r *PostgresRequestRepository) UpdateStatus(id, newStatus string) (models.Request, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Request{}, err
	}
	defer tx.Rollback()

	var current string
	err = tx.QueryRowContext(ctx, `SELECT status FROM requests WHERE id = $1 FOR UPDATE`, id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Request{}, ErrRequestNotFound
	}
	if err != nil {
		return models.Request{}, err
	}

	if newStatus == models.RequestApproved {
		if current == models.RequestApproved {
			return models.Request{}, ErrAlreadyApproved
		}
		if current != models.RequestPending {
			return models.Request{}, ErrRequestNotPending
		}
		if err := r.deductStock(ctx, tx, id); err != nil {
			return models.Request{}, err
		}
	}

	_, err = tx.ExecContext(ctx, `UPDATE requests SET status = $1, updated_at = $2 WHERE id = $3`,
		newStatus, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return models.Request{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Request{}, err
	}
	return r.GetByID(id)
}

func (r *PostgresRequestRepository) deductStock(ctx context.Context, tx *sql.Tx, requestID string) error {
	rows, err := tx.QueryContext(ctx, `SELECT item_id, quantity FROM request_items WHERE request_id = $1 ORDER BY item_id`, requestID)
	if err != nil {
		return err
	}
	lines := []models.RequestItem{}
	for rows.Next() {
		var ri models.RequestItem
		if err := rows.Scan(&ri.ItemID, &ri.Quantity); err != nil {
			rows.Close()
			return err
		}
		lines = append(lines, ri)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, line := range lines {
		var quantity int
		err := tx.QueryRowContext(ctx, `SELECT quantity FROM items WHERE id = $1 FOR UPDATE`, line.ItemID).Scan(&quantity)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrItemNotFound
		}
		if err != nil {
			return err
		}

		newQuantity := quantity - line.Quantity
		if newQuantity < 0 {
			newQuantity = 0
		}
		_, err = tx.ExecContext(ctx, `UPDATE items SET quantity = $1, updated_at = $2 WHERE id = $3`,
			newQuantity, time.Now().UTC().Format(time.RFC3339), line.ItemID)
		if err != nil {
			return err
		}
		if err := logMovementTx(ctx, tx, line.ItemID, newQuantity-quantity, models.MovementApproval); err != nil {
			return err
		}
	}
	return nil
}
