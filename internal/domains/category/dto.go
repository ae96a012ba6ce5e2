package category

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ============================================================
// REQUEST DTOs
// ============================================================

// CreateCategoryReq - POST /v1/wishlists/:id/categories
//
//	Body: {"name": "Mutfak", "color": "#ff8800"}
type CreateCategoryReq struct {
	Name  string  `json:"name"`
	Color *string `json:"color,omitempty"`
}

func (r CreateCategoryReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("category name is required"),
			validation.Length(1, 100),
		),
		validation.Field(&r.Color, validation.Match(colorPattern).Error("color must be #rrggbb")),
	)
}

// UpdateCategoryReq - PATCH /v1/categories/:categoryId (partial update)
type UpdateCategoryReq struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

func (r UpdateCategoryReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.NilOrNotEmpty.Error("category name cannot be empty"),
			validation.Length(1, 100),
		),
		validation.Field(&r.Color, validation.Match(colorPattern).Error("color must be #rrggbb")),
	)
}

// ============================================================
// RESPONSE DTOs
// ============================================================

// DeleteCategoryResp cho biết bao nhiêu item đã chuyển về uncategorized.
type DeleteCategoryResp struct {
	ID                 string `json:"id"`
	UncategorizedItems int64  `json:"uncategorized_items"`
}
