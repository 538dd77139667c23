package repo

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/gudang-mitra/gudang-api/internal/models"
)

type PostgresCategoryRepository struct {
	db *sql.DB
}

func NewPostgresCategoryRepository(db *sql.DB) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

func (r *PostgresCategoryRepository) Create(c models.Category) (models.Category, error) {
	query := `INSERT INTO categories (slug, description, created_at) VALUES ($1, $2, $3) RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query, c.Slug, c.Description, c.CreatedAt).Scan(&c.ID)
	if err != nil && strings.Contains(err.Error(), "unique constraint") {
		return models.Category{}, ErrDuplicatedValueUnique
	}
	return c, err
}

func (r *PostgresCategoryRepository) GetAll() ([]models.Category, error) {
	query := `SELECT id, slug, description FROM categories ORDER BY slug`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Slug, &c.Description); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *PostgresCategoryRepository) GetBySlug(slug string) (models.Category, error) {
	query := `SELECT id, slug, description FROM categories WHERE slug = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var c models.Category
	err := r.db.QueryRowContext(ctx, query, slug).Scan(&c.ID, &c.Slug, &c.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Category{}, ErrCategoryNotFound
	}
	return c, err
}

func (r *PostgresCategoryRepository) Update(c models.Category) (models.Category, error) {
	query := `UPDATE categories SET slug = $1, description = $2 WHERE id = $3`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, c.Slug, c.Description, c.ID)
	if err != nil {
		return models.Category{}, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Category{}, ErrCategoryNotFound
	}
	return c, nil
}

func (r *PostgresCategoryRepository) Delete(id int) error {
	query := `DELETE FROM categories WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
