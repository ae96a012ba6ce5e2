package category

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"wishlist-backend/internal/shared/utils"
)

const DefaultColor = "#4f46e5"

// ============================================================
// ENTITY: Category
// ============================================================
// Category là nhãn nhóm item, scoped vào đúng một wishlist.
//
// INVARIANTS:
// - WishlistID không đổi sau khi tạo
// - Xóa category KHÔNG xóa item: item.category_id => NULL (cascade-to-null)
type Category struct {
	ID         uuid.UUID `json:"id"`
	WishlistID uuid.UUID `json:"wishlist_id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	Color      string    `json:"color"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewCategory builds a category with a derived slug and the default color.
func NewCategory(wishlistID uuid.UUID, name string, color *string) *Category {
	name = strings.TrimSpace(name)
	c := &Category{
		ID:         uuid.New(),
		WishlistID: wishlistID,
		Name:       name,
		Slug:       utils.GenerateSlug(name),
		Color:      DefaultColor,
	}
	if color != nil && *color != "" {
		c.Color = strings.ToLower(*color)
	}
	return c
}

// Rename đổi tên và tính lại slug.
func (c *Category) Rename(name string) {
	c.Name = strings.TrimSpace(name)
	c.Slug = utils.GenerateSlug(c.Name)
}

// Names indexes category names by id, the shape the item filter resolves
// category names from.
func Names(categories []Category) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names
}
