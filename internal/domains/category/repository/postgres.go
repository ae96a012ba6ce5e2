package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"wishlist-backend/internal/domains/category"
	"wishlist-backend/pkg/database"
)

type postgresRepository struct {
	db database.DBTX
}

// NewPostgresRepository tạo repository instance
func NewPostgresRepository(db database.DBTX) category.CategoryRepository {
	return &postgresRepository{db: db}
}

const selectColumns = `id, wishlist_id, name, slug, COALESCE(color, '#4f46e5'), created_at, updated_at`

func scanCategory(row pgx.Row, c *category.Category) error {
	return row.Scan(&c.ID, &c.WishlistID, &c.Name, &c.Slug, &c.Color, &c.CreatedAt, &c.UpdatedAt)
}

func (r *postgresRepository) Create(ctx context.Context, c *category.Category) error {
	query := `
		INSERT INTO categories (id, wishlist_id, name, slug, color)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, c.ID, c.WishlistID, c.Name, c.Slug, c.Color).
		Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	query := `SELECT ` + selectColumns + ` FROM categories WHERE id = $1`

	var c category.Category
	if err := scanCategory(r.db.QueryRow(ctx, query, id), &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &c, nil
}

func (r *postgresRepository) ListByWishlist(ctx context.Context, wishlistID uuid.UUID) ([]category.Category, error) {
	query := `SELECT ` + selectColumns + ` FROM categories WHERE wishlist_id = $1 ORDER BY name ASC`

	rows, err := r.db.Query(ctx, query, wishlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]category.Category, 0)
	for rows.Next() {
		var c category.Category
		if err := scanCategory(rows, &c); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return categories, nil
}

func (r *postgresRepository) Update(ctx context.Context, c *category.Category) error {
	query := `
		UPDATE categories
		SET name = $1, slug = $2, color = $3, updated_at = NOW()
		WHERE id = $4 AND wishlist_id = $5
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query, c.Name, c.Slug, c.Color, c.ID, c.WishlistID).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return category.ErrCategoryNotFound
		}
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

// DeleteCascade xóa category mà không xóa item.
//
// FLOW (một transaction):
//  1. UPDATE items SET category_id = NULL WHERE category_id = $1
//  2. DELETE FROM categories WHERE id = $1 AND wishlist_id = $2
//
// Bước 1 luôn chạy trước, nên không bao giờ có item trỏ tới category đã xóa.
// Nếu bước 2 không tìm thấy row, transaction rollback và trả về
// ErrCategoryNotFound.
func (r *postgresRepository) DeleteCascade(ctx context.Context, wishlistID, id uuid.UUID) (int64, error) {
	return database.WithTransactionResult(ctx, r.db, func(tx pgx.Tx) (int64, error) {
		nulled, err := tx.Exec(ctx,
			`UPDATE items SET category_id = NULL, updated_at = NOW() WHERE category_id = $1 AND wishlist_id = $2`,
			id, wishlistID,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to uncategorize items: %w", err)
		}

		deleted, err := tx.Exec(ctx,
			`DELETE FROM categories WHERE id = $1 AND wishlist_id = $2`,
			id, wishlistID,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to delete category: %w", err)
		}
		if deleted.RowsAffected() == 0 {
			return 0, category.ErrCategoryNotFound
		}

		return nulled.RowsAffected(), nil
	})
}
