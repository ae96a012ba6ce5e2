package wishlist

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"wishlist-backend/pkg/cache"
)

const DefaultLanguage = "tr"

// SupportedLanguages - ngôn ngữ giao diện của trang public.
var SupportedLanguages = []interface{}{"tr", "en", "de", "fr", "es"}

// Wishlist là collection của user, chia sẻ qua slug.
// Slug được sinh một lần khi tạo và không đổi khi đổi title,
// để link đã chia sẻ không bị hỏng.
type Wishlist struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Description     *string   `json:"description,omitempty"`
	IsPublic        bool      `json:"is_public"`
	BackgroundColor *string   `json:"background_color,omitempty"`
	FontFamily      *string   `json:"font_family,omitempty"`
	LogoURL         *string   `json:"logo_url,omitempty"`
	Language        string    `json:"language"`
	ItemCount       int       `json:"item_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// OwnedBy reports whether userID owns the wishlist.
func (w *Wishlist) OwnedBy(userID uuid.UUID) bool {
	return w.UserID == userID
}

// Owned loads a wishlist and checks ownership. Missing wishlists return
// ErrWishlistNotFound; someone else's return ErrForbidden.
func Owned(ctx context.Context, repo Repository, id, userID uuid.UUID) (*Wishlist, error) {
	w, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !w.OwnedBy(userID) {
		return nil, ErrForbidden
	}
	return w, nil
}

// PublicCacheKey - key của snapshot trang public trong Redis.
func PublicCacheKey(slug string) string {
	return fmt.Sprintf("wishlist:public:%s", slug)
}

// InvalidatePublic drops the cached public snapshot. Failures are logged only:
// the entry expires on its own TTL.
func InvalidatePublic(ctx context.Context, c cache.Cache, slug string) {
	if c == nil || slug == "" {
		return
	}
	if err := c.Delete(ctx, PublicCacheKey(slug)); err != nil {
		log.Warn().Err(err).Str("slug", slug).Msg("Failed to invalidate public wishlist cache")
	}
}
