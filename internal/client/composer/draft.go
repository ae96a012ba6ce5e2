package composer

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"wishlist-backend/internal/domains/item"
)

// NewCategoryOption is the category field value that interrupts item
// composing to create a category first.
const NewCategoryOption = "__new_category__"

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ImageFile is a local image waiting to be uploaded on submit.
type ImageFile struct {
	Name string
	Data []byte
}

// ItemDraft is the item form. Category is "" for uncategorized, a category
// id, or NewCategoryOption.
type ItemDraft struct {
	Title       string
	Description string
	URL         string
	Price       string
	Brand       string
	Category    string
	ImageURL    string
	Image       *ImageFile
}

func (d ItemDraft) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Title,
			validation.By(notBlank("title is required")),
			validation.Length(1, 300),
		),
		validation.Field(&d.Description, validation.Length(0, 2000)),
		validation.Field(&d.URL, is.URL),
		validation.Field(&d.ImageURL, is.URL),
		validation.Field(&d.Price, validation.Length(0, 100)),
		validation.Field(&d.Brand, validation.Length(0, 100)),
		validation.Field(&d.Category,
			validation.When(d.Category != NewCategoryOption, is.UUID.Error("unknown category")),
		),
	)
}

// DraftFromItem pre-populates the form for edit mode.
func DraftFromItem(it item.Item) ItemDraft {
	d := ItemDraft{
		Title:       it.Title,
		Description: deref(it.Description),
		URL:         deref(it.URL),
		Price:       deref(it.Price),
		Brand:       deref(it.Brand),
		ImageURL:    deref(it.ImageURL),
	}
	if it.CategoryID != nil {
		d.Category = it.CategoryID.String()
	}
	return d
}

func (d ItemDraft) categoryID() *uuid.UUID {
	id, err := uuid.Parse(d.Category)
	if err != nil {
		return nil
	}
	return &id
}

// CategoryDraft is the inline "new category" form.
type CategoryDraft struct {
	Name  string
	Color string
}

func (d CategoryDraft) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Name,
			validation.By(notBlank("category name is required")),
			validation.Length(1, 100),
		),
		validation.Field(&d.Color, validation.Match(hexColor).Error("color must be #rrggbb")),
	)
}

func notBlank(msg string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if strings.TrimSpace(s) == "" {
			return validation.NewError("validation_required", msg)
		}
		return nil
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
