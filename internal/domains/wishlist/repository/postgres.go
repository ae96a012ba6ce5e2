package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"wishlist-backend/internal/domains/wishlist"
	"wishlist-backend/pkg/database"
)

type postgresRepository struct {
	db database.DBTX
}

func NewPostgresRepository(db database.DBTX) wishlist.Repository {
	return &postgresRepository{db: db}
}

const selectColumns = `
	w.id, w.user_id, w.title, w.slug, w.description, w.is_public,
	w.background_color, w.font_family, w.logo_url, w.language,
	w.created_at, w.updated_at
`

func scanWishlist(row pgx.Row, w *wishlist.Wishlist, extra ...any) error {
	dest := []any{
		&w.ID,
		&w.UserID,
		&w.Title,
		&w.Slug,
		&w.Description,
		&w.IsPublic,
		&w.BackgroundColor,
		&w.FontFamily,
		&w.LogoURL,
		&w.Language,
		&w.CreatedAt,
		&w.UpdatedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

func (r *postgresRepository) Create(ctx context.Context, w *wishlist.Wishlist) error {
	query := `
		INSERT INTO wishlists (
			id, user_id, title, slug, description, is_public,
			background_color, font_family, logo_url, language
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		w.ID,
		w.UserID,
		w.Title,
		w.Slug,
		w.Description,
		w.IsPublic,
		w.BackgroundColor,
		w.FontFamily,
		w.LogoURL,
		w.Language,
	).Scan(&w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return wishlist.ErrSlugTaken
		}
		return fmt.Errorf("failed to create wishlist: %w", err)
	}
	return nil
}

func (r *postgresRepository) getOne(ctx context.Context, where string, arg any) (*wishlist.Wishlist, error) {
	query := `
		SELECT ` + selectColumns + `,
			(SELECT COUNT(*) FROM items i WHERE i.wishlist_id = w.id)
		FROM wishlists w
		WHERE ` + where

	var w wishlist.Wishlist
	if err := scanWishlist(r.db.QueryRow(ctx, query, arg), &w, &w.ItemCount); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, wishlist.ErrWishlistNotFound
		}
		return nil, fmt.Errorf("failed to get wishlist: %w", err)
	}
	return &w, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*wishlist.Wishlist, error) {
	return r.getOne(ctx, "w.id = $1", id)
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*wishlist.Wishlist, error) {
	return r.getOne(ctx, "w.slug = $1", slug)
}

func (r *postgresRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]wishlist.Wishlist, error) {
	query := `
		SELECT ` + selectColumns + `, COUNT(i.id)
		FROM wishlists w
		LEFT JOIN items i ON i.wishlist_id = w.id
		WHERE w.user_id = $1
		GROUP BY w.id
		ORDER BY w.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlists: %w", err)
	}
	defer rows.Close()

	lists := make([]wishlist.Wishlist, 0)
	for rows.Next() {
		var w wishlist.Wishlist
		if err := scanWishlist(rows, &w, &w.ItemCount); err != nil {
			return nil, fmt.Errorf("failed to scan wishlist: %w", err)
		}
		lists = append(lists, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wishlists: %w", err)
	}
	return lists, nil
}

func (r *postgresRepository) Update(ctx context.Context, w *wishlist.Wishlist) error {
	query := `
		UPDATE wishlists SET
			title = $1, description = $2, is_public = $3, background_color = $4,
			font_family = $5, logo_url = $6, language = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		w.Title,
		w.Description,
		w.IsPublic,
		w.BackgroundColor,
		w.FontFamily,
		w.LogoURL,
		w.Language,
		w.ID,
	).Scan(&w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return wishlist.ErrWishlistNotFound
		}
		return fmt.Errorf("failed to update wishlist: %w", err)
	}
	return nil
}

// Delete - categories, items và interactions bị xóa theo FK ON DELETE CASCADE.
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM wishlists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete wishlist: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return wishlist.ErrWishlistNotFound
	}
	return nil
}
