package item

import (
	"time"

	"github.com/google/uuid"
)

// Item is one entry of a wishlist. Price is free text ("$45", "Ask for price")
// and only interpreted numerically when sorting.
type Item struct {
	ID            uuid.UUID  `json:"id"`
	WishlistID    uuid.UUID  `json:"wishlist_id"`
	Title         string     `json:"title"`
	Description   *string    `json:"description,omitempty"`
	URL           *string    `json:"url,omitempty"`
	ImageURL      *string    `json:"image_url,omitempty"`
	ThumbnailURL  *string    `json:"thumbnail_url,omitempty"`
	Price         *string    `json:"price,omitempty"`
	Brand         *string    `json:"brand,omitempty"`
	CategoryID    *uuid.UUID `json:"category_id"`
	HeartCount    int        `json:"heart_count"`
	ThumbsUpCount int        `json:"thumbs_up_count"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// IsUncategorized reports a null category reference.
func (i *Item) IsUncategorized() bool {
	return i.CategoryID == nil
}

// InCategory reports whether the item references categoryID.
func (i *Item) InCategory(categoryID uuid.UUID) bool {
	return i.CategoryID != nil && *i.CategoryID == categoryID
}
