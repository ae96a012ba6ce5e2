package reaction

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// Kind - loại reaction trên trang public.
type Kind string

const (
	KindHeart    Kind = "heart"
	KindThumbsUp Kind = "thumbs_up"
)

// Kinds lists the accepted kinds, in validation.In form.
var Kinds = []interface{}{KindHeart, KindThumbsUp}

// Interaction là một reaction của khách vãng lai. Mỗi (item, kind, fingerprint)
// chỉ có tối đa một row.
type Interaction struct {
	ID          uuid.UUID `json:"id"`
	ItemID      uuid.UUID `json:"item_id"`
	Kind        Kind      `json:"interaction_type"`
	Fingerprint string    `json:"-"`
	IPAddress   string    `json:"-"`
	UserAgent   string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// Counts mirrors the counter columns on items.
type Counts struct {
	HeartCount    int `json:"heart_count"`
	ThumbsUpCount int `json:"thumbs_up_count"`
}

// Outcome is what Record reports back.
type Outcome struct {
	Recorded     bool
	WishlistSlug string
	Counts       Counts
}

// Fingerprint identifies an anonymous visitor as sha256(ip + "|" + user agent).
// Shared IPs collapse into one visitor and rotating proxies split one, so this
// only dampens repeat clicks.
func Fingerprint(ip, userAgent string) string {
	sum := sha256.Sum256([]byte(ip + "|" + userAgent))
	return hex.EncodeToString(sum[:])
}
