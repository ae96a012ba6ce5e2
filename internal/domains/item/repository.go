package item

import (
	"context"

	"github.com/google/uuid"
)

// Repository - data access cho items.
type Repository interface {
	Create(ctx context.Context, it *Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*Item, error)
	// ListByWishlist returns the store order: newest first.
	ListByWishlist(ctx context.Context, wishlistID uuid.UUID) ([]Item, error)
	// Update writes every editable column; counters are never touched here.
	Update(ctx context.Context, it *Item) error
	Delete(ctx context.Context, id uuid.UUID) error

	// SetThumbnail records a generated thumbnail only while the item still
	// points at imageURL. Returns false when the image changed meanwhile.
	SetThumbnail(ctx context.Context, id uuid.UUID, imageURL, thumbnailURL string) (bool, error)
}
