package wishlist

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"wishlist-backend/internal/domains/category"
	"wishlist-backend/internal/domains/item"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ========================================
// REQUEST DTOs
// ========================================

// CreateWishlistRequest - POST /api/v1/wishlists
type CreateWishlistRequest struct {
	Title           string  `json:"title"`
	Description     *string `json:"description,omitempty"`
	IsPublic        *bool   `json:"is_public,omitempty"`
	BackgroundColor *string `json:"background_color,omitempty"`
	FontFamily      *string `json:"font_family,omitempty"`
	Language        *string `json:"language,omitempty"`
}

func (r CreateWishlistRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 200),
		),
		validation.Field(&r.Description, validation.Length(0, 2000)),
		validation.Field(&r.BackgroundColor, validation.Match(hexColor).Error("background color must be #rrggbb")),
		validation.Field(&r.FontFamily, validation.Length(0, 100)),
		validation.Field(&r.Language, validation.In(SupportedLanguages...).Error("unsupported language")),
	)
}

// UpdateWishlistRequest - PATCH /api/v1/wishlists/:id. Slug không bao giờ đổi.
// An empty string clears description, background color or font family.
type UpdateWishlistRequest struct {
	Title           *string `json:"title,omitempty"`
	Description     *string `json:"description,omitempty"`
	IsPublic        *bool   `json:"is_public,omitempty"`
	BackgroundColor *string `json:"background_color,omitempty"`
	FontFamily      *string `json:"font_family,omitempty"`
	Language        *string `json:"language,omitempty"`
}

func (r UpdateWishlistRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty.Error("title cannot be empty"),
			validation.Length(1, 200),
		),
		validation.Field(&r.Description, validation.Length(0, 2000)),
		validation.Field(&r.BackgroundColor, validation.Match(hexColor).Error("background color must be #rrggbb")),
		validation.Field(&r.FontFamily, validation.Length(0, 100)),
		validation.Field(&r.Language,
			validation.NilOrNotEmpty,
			validation.In(SupportedLanguages...).Error("unsupported language"),
		),
	)
}

// ========================================
// PUBLIC SHARE SURFACE
// ========================================

// PublicSnapshot is what gets cached per slug: the raw stores, not a
// projection, so every search/sort combination is served from one entry.
type PublicSnapshot struct {
	Wishlist   Wishlist            `json:"wishlist"`
	Categories []category.Category `json:"categories"`
	Items      []item.Item         `json:"items"`
}

// PublicWishlistResponse - GET /api/v1/public/wishlists/:slug
type PublicWishlistResponse struct {
	Wishlist   Wishlist            `json:"wishlist"`
	Categories []category.Category `json:"categories"`
	Items      []item.Item         `json:"items"`
	Total      int                 `json:"total"`
	IsEmpty    bool                `json:"is_empty"`
	NoMatches  bool                `json:"no_matches"`
	Counts     item.CategoryCounts `json:"counts"`
}

// Export is a rendered spreadsheet.
type Export struct {
	Filename string
	Data     []byte
}
