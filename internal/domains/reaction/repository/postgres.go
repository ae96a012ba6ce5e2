package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"wishlist-backend/internal/domains/reaction"
	"wishlist-backend/pkg/database"
)

type postgresRepository struct {
	db database.DBTX
}

func NewPostgresRepository(db database.DBTX) reaction.Repository {
	return &postgresRepository{db: db}
}

// counterColumn whitelists the counter each kind increments.
var counterColumn = map[reaction.Kind]string{
	reaction.KindHeart:    "heart_count",
	reaction.KindThumbsUp: "thumbs_up_count",
}

// Record ghi reaction trong một transaction:
//  1. item phải thuộc wishlist public
//  2. INSERT ... ON CONFLICT DO NOTHING
//  3. chỉ tăng counter khi thực sự insert được row
func (r *postgresRepository) Record(ctx context.Context, in *reaction.Interaction) (*reaction.Outcome, error) {
	column, ok := counterColumn[in.Kind]
	if !ok {
		return nil, reaction.ErrInvalidKind
	}

	return database.WithTransactionResult(ctx, r.db, func(tx pgx.Tx) (*reaction.Outcome, error) {
		out := &reaction.Outcome{}

		err := tx.QueryRow(ctx, `
			SELECT w.slug
			FROM items i
			JOIN wishlists w ON w.id = i.wishlist_id
			WHERE i.id = $1 AND w.is_public
		`, in.ItemID).Scan(&out.WishlistSlug)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, reaction.ErrItemNotFound
			}
			return nil, fmt.Errorf("failed to resolve item: %w", err)
		}

		tag, err := tx.Exec(ctx, `
			INSERT INTO item_interactions (id, item_id, interaction_type, fingerprint, ip_address, user_agent)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (item_id, interaction_type, fingerprint) DO NOTHING
		`, in.ID, in.ItemID, in.Kind, in.Fingerprint, in.IPAddress, in.UserAgent)
		if err != nil {
			return nil, fmt.Errorf("failed to insert interaction: %w", err)
		}
		out.Recorded = tag.RowsAffected() == 1

		query := `SELECT heart_count, thumbs_up_count FROM items WHERE id = $1`
		if out.Recorded {
			query = `UPDATE items SET ` + column + ` = ` + column + ` + 1 WHERE id = $1 RETURNING heart_count, thumbs_up_count`
		}
		if err := tx.QueryRow(ctx, query, in.ItemID).Scan(&out.Counts.HeartCount, &out.Counts.ThumbsUpCount); err != nil {
			return nil, fmt.Errorf("failed to read counters: %w", err)
		}
		return out, nil
	})
}

func (r *postgresRepository) Recount(ctx context.Context, wishlistID uuid.UUID) (int64, error) {
	var scope *uuid.UUID
	if wishlistID != uuid.Nil {
		scope = &wishlistID
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE items i
		SET heart_count = c.hearts, thumbs_up_count = c.thumbs
		FROM (
			SELECT it.id,
				COUNT(ii.id) FILTER (WHERE ii.interaction_type = 'heart')     AS hearts,
				COUNT(ii.id) FILTER (WHERE ii.interaction_type = 'thumbs_up') AS thumbs
			FROM items it
			LEFT JOIN item_interactions ii ON ii.item_id = it.id
			WHERE $1::uuid IS NULL OR it.wishlist_id = $1
			GROUP BY it.id
		) c
		WHERE i.id = c.id
		  AND (i.heart_count <> c.hearts OR i.thumbs_up_count <> c.thumbs)
	`, scope)
	if err != nil {
		return 0, fmt.Errorf("failed to recount reactions: %w", err)
	}
	return tag.RowsAffected(), nil
}
