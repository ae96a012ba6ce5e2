package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"wishlist-backend/internal/domains/item"
	"wishlist-backend/pkg/database"
)

type postgresRepository struct {
	db database.DBTX
}

func NewPostgresRepository(db database.DBTX) item.Repository {
	return &postgresRepository{db: db}
}

const selectColumns = `
	id, wishlist_id, title, description, url, image_url, thumbnail_url,
	price, brand, category_id, heart_count, thumbs_up_count, created_at, updated_at
`

func scanItem(row pgx.Row, it *item.Item) error {
	return row.Scan(
		&it.ID,
		&it.WishlistID,
		&it.Title,
		&it.Description,
		&it.URL,
		&it.ImageURL,
		&it.ThumbnailURL,
		&it.Price,
		&it.Brand,
		&it.CategoryID,
		&it.HeartCount,
		&it.ThumbsUpCount,
		&it.CreatedAt,
		&it.UpdatedAt,
	)
}

// mapWriteError: composite FK items_category_same_wishlist => category không thuộc wishlist.
func mapWriteError(err error) error {
	if database.IsForeignKeyViolation(err) {
		return item.ErrCategoryNotInList
	}
	return err
}

func (r *postgresRepository) Create(ctx context.Context, it *item.Item) error {
	query := `
		INSERT INTO items (
			id, wishlist_id, title, description, url, image_url,
			price, brand, category_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING heart_count, thumbs_up_count, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		it.ID,
		it.WishlistID,
		it.Title,
		it.Description,
		it.URL,
		it.ImageURL,
		it.Price,
		it.Brand,
		it.CategoryID,
	).Scan(&it.HeartCount, &it.ThumbsUpCount, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", mapWriteError(err))
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*item.Item, error) {
	query := `SELECT ` + selectColumns + ` FROM items WHERE id = $1`

	var it item.Item
	if err := scanItem(r.db.QueryRow(ctx, query, id), &it); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, item.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return &it, nil
}

func (r *postgresRepository) ListByWishlist(ctx context.Context, wishlistID uuid.UUID) ([]item.Item, error) {
	query := `SELECT ` + selectColumns + ` FROM items WHERE wishlist_id = $1 ORDER BY created_at DESC, id`

	rows, err := r.db.Query(ctx, query, wishlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items := make([]item.Item, 0)
	for rows.Next() {
		var it item.Item
		if err := scanItem(rows, &it); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	return items, nil
}

func (r *postgresRepository) Update(ctx context.Context, it *item.Item) error {
	query := `
		UPDATE items SET
			title = $1, description = $2, url = $3, image_url = $4,
			thumbnail_url = $5, price = $6, brand = $7, category_id = $8,
			updated_at = NOW()
		WHERE id = $9
		RETURNING heart_count, thumbs_up_count, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		it.Title,
		it.Description,
		it.URL,
		it.ImageURL,
		it.ThumbnailURL,
		it.Price,
		it.Brand,
		it.CategoryID,
		it.ID,
	).Scan(&it.HeartCount, &it.ThumbsUpCount, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return item.ErrItemNotFound
		}
		return fmt.Errorf("failed to update item: %w", mapWriteError(err))
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return item.ErrItemNotFound
	}
	return nil
}

func (r *postgresRepository) SetThumbnail(ctx context.Context, id uuid.UUID, imageURL, thumbnailURL string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE items SET thumbnail_url = $1 WHERE id = $2 AND image_url = $3`,
		thumbnailURL, id, imageURL,
	)
	if err != nil {
		return false, fmt.Errorf("failed to set thumbnail: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
