package wishlist

import (
	"context"

	"github.com/google/uuid"
)

// Repository - data access cho wishlists.
type Repository interface {
	// Create returns ErrSlugTaken on a slug collision.
	Create(ctx context.Context, w *Wishlist) error
	GetByID(ctx context.Context, id uuid.UUID) (*Wishlist, error)
	GetBySlug(ctx context.Context, slug string) (*Wishlist, error)
	// ListByUser - mới nhất trước, kèm item_count.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Wishlist, error)
	Update(ctx context.Context, w *Wishlist) error
	Delete(ctx context.Context, id uuid.UUID) error
}
