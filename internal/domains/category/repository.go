package category

import (
	"context"

	"github.com/google/uuid"
)

// CategoryRepository - data access cho categories.
type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	// GetByID returns ErrCategoryNotFound when missing.
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	// ListByWishlist trả về categories sắp xếp theo name.
	ListByWishlist(ctx context.Context, wishlistID uuid.UUID) ([]Category, error)
	Update(ctx context.Context, c *Category) error

	// DeleteCascade nulls every item reference to the category and then removes
	// it, in one transaction. Returns the number of items that became
	// uncategorized.
	DeleteCascade(ctx context.Context, wishlistID, id uuid.UUID) (int64, error)
}
