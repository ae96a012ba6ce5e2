package item

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// ========================================
// REQUEST DTOs
// ========================================

// CreateItemRequest - POST /wishlists/:id/items
type CreateItemRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	URL         *string    `json:"url,omitempty"`
	ImageURL    *string    `json:"image_url,omitempty"`
	Price       *string    `json:"price,omitempty"`
	Brand       *string    `json:"brand,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
}

func (r CreateItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 300),
		),
		validation.Field(&r.Description, validation.Length(0, 2000)),
		validation.Field(&r.URL, is.URL),
		validation.Field(&r.ImageURL, is.URL),
		validation.Field(&r.Price, validation.Length(0, 100)),
		validation.Field(&r.Brand, validation.Length(0, 100)),
	)
}

// UpdateItemRequest - PATCH /items/:itemId. Nil fields are left unchanged and
// an empty string clears an optional text field. ClearCategory moves the item
// to uncategorized.
type UpdateItemRequest struct {
	Title         *string    `json:"title,omitempty"`
	Description   *string    `json:"description,omitempty"`
	URL           *string    `json:"url,omitempty"`
	ImageURL      *string    `json:"image_url,omitempty"`
	Price         *string    `json:"price,omitempty"`
	Brand         *string    `json:"brand,omitempty"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	ClearCategory bool       `json:"clear_category,omitempty"`
	ClearImage    bool       `json:"clear_image,omitempty"`
}

func (r UpdateItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty.Error("title cannot be empty"),
			validation.Length(1, 300),
		),
		validation.Field(&r.Description, validation.Length(0, 2000)),
		validation.Field(&r.URL, is.URL),
		validation.Field(&r.ImageURL, is.URL),
		validation.Field(&r.Price, validation.Length(0, 100)),
		validation.Field(&r.Brand, validation.Length(0, 100)),
		validation.Field(&r.ClearCategory,
			validation.When(r.CategoryID != nil, validation.Empty.Error("cannot set and clear category at once")),
		),
		validation.Field(&r.ClearImage,
			validation.When(r.ImageURL != nil, validation.Empty.Error("cannot set and clear image at once")),
		),
	)
}

// ListQuery - GET /wishlists/:id/items?search=&category=&sort=
type ListQuery struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Sort     string `form:"sort"`
}

// ========================================
// RESPONSE DTOs
// ========================================

// ListResponse is the projected item list plus the counters the UI needs to
// tell "no items yet" from "nothing matches".
type ListResponse struct {
	Items     []Item         `json:"items"`
	Total     int            `json:"total"`
	IsEmpty   bool           `json:"is_empty"`
	NoMatches bool           `json:"no_matches"`
	Counts    CategoryCounts `json:"counts"`
}

// CategoryCounts - số item theo category, plus uncategorized.
type CategoryCounts struct {
	ByCategory    map[uuid.UUID]int `json:"by_category"`
	Uncategorized int               `json:"uncategorized"`
}

// UploadResponse - POST /wishlists/:id/uploads/item-image
type UploadResponse struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

// Normalize trims user-entered text; empty optional strings become nil.
func (r *CreateItemRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = trimOptional(r.Description)
	r.URL = trimOptional(r.URL)
	r.ImageURL = trimOptional(r.ImageURL)
	r.Price = trimOptional(r.Price)
	r.Brand = trimOptional(r.Brand)
}

// Normalize trims every provided field. Empty strings are kept so they can
// clear the column.
func (r *UpdateItemRequest) Normalize() {
	for _, f := range []*string{r.Title, r.Description, r.URL, r.ImageURL, r.Price, r.Brand} {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
