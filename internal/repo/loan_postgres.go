package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gudang-mitra/gudang-api/internal/models"
)

type PostgresLoanRepository struct {
	db *sql.DB
}

func NewPostgresLoanRepository(db *sql.DB) *PostgresLoanRepository {
	return &PostgresLoanRepository{db: db}
}

// Borrow creates an active loan and reserves the units on the item, inside
// one transaction. The item row is locked first so two concurrent borrows
// cannot both pass the availability check.
func (r *PostgresLoanRepository) Borrow(userID, itemID, quantity int, dueDate time.Time, notes string) (models.Loan, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Loan{}, err
	}
	defer tx.Rollback()

	var stock, borrowed int
	err = tx.QueryRowContext(ctx, `SELECT quantity, borrowed_quantity FROM items WHERE id = $1 FOR UPDATE`, itemID).
		Scan(&stock, &borrowed)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Loan{}, ErrItemNotFound
	}
	if err != nil {
		return models.Loan{}, err
	}

	if quantity > stock-borrowed {
		return models.Loan{}, ErrInsufficientStock
	}

	loan := models.Loan{
		ID:           uuid.NewString(),
		UserID:       userID,
		ItemID:       itemID,
		Quantity:     quantity,
		Status:       models.LoanActive,
		BorrowedDate: time.Now().UTC(),
		DueDate:      dueDate,
		Notes:        notes,
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO loans (id, user_id, item_id, quantity, status, borrowed_date, due_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		loan.ID, loan.UserID, loan.ItemID, loan.Quantity, loan.Status, loan.BorrowedDate, loan.DueDate, loan.Notes)
	if err != nil {
		return models.Loan{}, err
	}

	_, err = tx.ExecContext(ctx, `UPDATE items SET borrowed_quantity = borrowed_quantity + $1, updated_at = $2 WHERE id = $3`,
		quantity, time.Now().UTC().Format(time.RFC3339), itemID)
	if err != nil {
		return models.Loan{}, err
	}

	if err := logMovementTx(ctx, tx, itemID, -quantity, models.MovementBorrow); err != nil {
		return models.Loan{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Loan{}, err
	}
	return loan, nil
}

// Return closes an active loan and releases its units, floored at zero so a
// drifted counter can never go negative.
func (r *PostgresLoanRepository) Return(loanID, notes string) (models.Loan, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Loan{}, err
	}
	defer tx.Rollback()

	var loan models.Loan
	err = tx.QueryRowContext(ctx, `
		SELECT id, user_id, item_id, quantity, status, borrowed_date, due_date, returned_date, notes
		FROM loans WHERE id = $1 FOR UPDATE`, loanID).
		Scan(&loan.ID, &loan.UserID, &loan.ItemID, &loan.Quantity, &loan.Status, &loan.BorrowedDate, &loan.DueDate, &loan.ReturnedDate, &loan.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Loan{}, ErrLoanNotFound
	}
	if err != nil {
		return models.Loan{}, err
	}

	if loan.Status != models.LoanActive {
		return models.Loan{}, ErrLoanAlreadyReturned
	}

	now := time.Now().UTC()
	loan.Status = models.LoanReturned
	loan.ReturnedDate = &now
	if notes != "" {
		loan.Notes = notes
	}

	_, err = tx.ExecContext(ctx, `UPDATE loans SET status = $1, returned_date = $2, notes = $3 WHERE id = $4`,
		loan.Status, loan.ReturnedDate, loan.Notes, loan.ID)
	if err != nil {
		return models.Loan{}, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE items
		SET borrowed_quantity = GREATEST(borrowed_quantity - $1, 0), updated_at = $2
		WHERE id = $3`,
		loan.Quantity, now.Format(time.RFC3339), loan.ItemID)
	if err != nil {
		return models.Loan{}, err
	}

	if err := logMovementTx(ctx, tx, loan.ItemID, loan.Quantity, models.MovementReturn); err != nil {
		return models.Loan{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Loan{}, err
	}
	return loan, nil
}

func (r *PostgresLoanRepository) GetByID(id string) (models.Loan, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var loan models.Loan
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, item_id, quantity, status, borrowed_date, due_date, returned_date, notes
		FROM loans WHERE id = $1`, id).
		Scan(&loan.ID, &loan.UserID, &loan.ItemID, &loan.Quantity, &loan.Status, &loan.BorrowedDate, &loan.DueDate, &loan.ReturnedDate, &loan.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Loan{}, ErrLoanNotFound
	}
	return loan, err
}

func (r *PostgresLoanRepository) Filter(f LoanFilter) ([]models.Loan, error) {
	query := `SELECT id, user_id, item_id, quantity, status, borrowed_date, due_date, returned_date, notes FROM loans WHERE 1=1`
	args := []any{}
	argIdx := 1

	if f.UserID != nil {
		query += fmt.Sprintf(" AND user_id = $%d", argIdx)
		args = append(args, *f.UserID)
		argIdx++
	}
	if f.ItemID != nil {
		query += fmt.Sprintf(" AND item_id = $%d", argIdx)
		args = append(args, *f.ItemID)
		argIdx++
	}
	switch f.Status {
	case models.LoanActive, models.LoanReturned:
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, f.Status)
	case models.LoanOverdue:
		query += fmt.Sprintf(" AND status = $%d AND due_date < $%d", argIdx, argIdx+1)
		args = append(args, models.LoanActive, time.Now().UTC())
	}
	query += " ORDER BY borrowed_date DESC"

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []models.Loan
	for rows.Next() {
		var loan models.Loan
		if err := rows.Scan(&loan.ID, &loan.UserID, &loan.ItemID, &loan.Quantity, &loan.Status, &loan.BorrowedDate, &loan.DueDate, &loan.ReturnedDate, &loan.Notes); err != nil {
			return nil, err
		}
		loans = append(loans, loan)
	}
	return loans, rows.Err()
}
