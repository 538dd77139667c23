package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gudang-mitra/gudang-api/internal/models"
)

type PostgresItemRepository struct {
	db *sql.DB
}

func NewPostgresItemRepository(db *sql.DB) *PostgresItemRepository {
	return &PostgresItemRepository{db: db}
}

const itemColumns = `id, name, description, category, quantity, min_quantity, borrowed_quantity, price`

func scanItem(row interface{ Scan(...any) error }, i *models.Item) error {
	return row.Scan(&i.ID, &i.Name, &i.Description, &i.Category, &i.Quantity, &i.MinQuantity, &i.BorrowedQuantity, &i.Price)
}

func (r *PostgresItemRepository) Create(i models.Item) (models.Item, error) {
	query := `INSERT INTO items (name, description, category, quantity, min_quantity, borrowed_quantity, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query, i.Name, i.Description, i.Category, i.Quantity, i.MinQuantity, i.BorrowedQuantity, i.Price, i.CreatedAt, i.UpdatedAt).Scan(&i.ID)
	if err != nil && strings.Contains(err.Error(), "unique constraint") {
		return models.Item{}, ErrDuplicatedValueUnique
	}
	return i, err
}

func (r *PostgresItemRepository) GetAll() ([]models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var i models.Item
		if err := scanItem(rows, &i); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

func (r *PostgresItemRepository) GetByID(id int) (models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var i models.Item
	err := scanItem(r.db.QueryRowContext(ctx, query, id), &i)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, ErrItemNotFound
	}
	return i, err
}

func (r *PostgresItemRepository) GetByName(name string) (models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE name = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var i models.Item
	err := scanItem(r.db.QueryRowContext(ctx, query, name), &i)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, ErrItemNotFound
	}
	return i, err
}

func (r *PostgresItemRepository) Update(i models.Item) (models.Item, error) {
	query := `UPDATE items SET name = $1, description = $2, category = $3, quantity = $4, min_quantity = $5, price = $6, updated_at = $7 WHERE id = $8`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, i.Name, i.Description, i.Category, i.Quantity, i.MinQuantity, i.Price, i.UpdatedAt, i.ID)
	if err != nil {
		return models.Item{}, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Item{}, ErrItemNotFound
	}
	return i, nil
}

func (r *PostgresItemRepository) Delete(id int) error {
	query := `DELETE FROM items WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *PostgresItemRepository) Filter(f ItemFilter) ([]models.Item, int, error) {
	conditions, args, argIdx := itemFilterConditions(f)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var totalCount int
	countQuery := "SELECT COUNT(*) FROM items WHERE 1=1" + conditions
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + itemColumns + ` FROM items WHERE 1=1` + conditions + ` ORDER BY id`

	if f.Limit != nil && *f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, *f.Limit)
		argIdx++
	}
	if f.Offset != nil && *f.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, *f.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var i models.Item
		if err := scanItem(rows, &i); err != nil {
			return nil, 0, err
		}
		items = append(items, i)
	}

	return items, totalCount, rows.Err()
}

func itemFilterConditions(f ItemFilter) (string, []any, int) {
	query := ""
	argIdx := 1
	args := []any{}

	if f.Name != "" {
		query += fmt.Sprintf(" AND name ILIKE $%d", argIdx)
		args = append(args, "%"+f.Name+"%")
		argIdx++
	}
	if f.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, f.Category)
		argIdx++
	}
	if f.MinPrice != nil {
		query += fmt.Sprintf(" AND price >= $%d", argIdx)
		args = append(args, *f.MinPrice)
		argIdx++
	}
	if f.MaxPrice != nil {
		query += fmt.Sprintf(" AND price <= $%d", argIdx)
		args = append(args, *f.MaxPrice)
		argIdx++
	}
	if f.MinQty != nil {
		query += fmt.Sprintf(" AND quantity >= $%d", argIdx)
		args = append(args, *f.MinQty)
		argIdx++
	}
	if f.MaxQty != nil {
		query += fmt.Sprintf(" AND quantity <= $%d", argIdx)
		args = append(args, *f.MaxQty)
		argIdx++
	}

	return query, args, argIdx
}

// AdjustQuantity applies a delta to an item's stock. The WHERE guard keeps
// the quantity from ever going negative; a vanished row means either the
// item is missing or the change was invalid.
func (r *PostgresItemRepository) AdjustQuantity(itemID int, delta int) (models.Item, error) {
	query := `
		UPDATE items
		SET quantity = quantity + $1, updated_at = $2
		WHERE id = $3 AND quantity + $1 >= 0
		RETURNING ` + itemColumns + `
	`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var i models.Item
	err := scanItem(r.db.QueryRowContext(ctx, query, delta, time.Now().UTC().Format(time.RFC3339), itemID), &i)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, ErrInvalidQuantityChange
	}
	return i, err
}
