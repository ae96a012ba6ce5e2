package wishlist

import (
	"context"

	"github.com/google/uuid"

	"wishlist-backend/internal/domains/item"
)

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req CreateWishlistRequest) (*Wishlist, error)
	List(ctx context.Context, userID uuid.UUID) ([]Wishlist, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*Wishlist, error)
	Update(ctx context.Context, userID, id uuid.UUID, req UpdateWishlistRequest) (*Wishlist, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	UploadLogo(ctx context.Context, userID, id uuid.UUID, filename string, data []byte) (*Wishlist, error)

	// GetPublic resolves a share slug. viewerID is uuid.Nil for anonymous
	// visitors; private wishlists resolve only for their owner.
	GetPublic(ctx context.Context, slug string, viewerID uuid.UUID, q item.ListQuery) (*PublicWishlistResponse, error)
	// Export renders the projected item list as xlsx.
	Export(ctx context.Context, userID, id uuid.UUID, q item.ListQuery) (*Export, error)
}
