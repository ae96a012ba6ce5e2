package view

import (
	"errors"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"wishlist-backend/internal/domains/item"
	"wishlist-backend/internal/shared/utils"
)

var ErrUnknownSortKey = errors.New("unknown sort key")

type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortAlphaAsc  SortKey = "alpha-asc"
	SortAlphaDesc SortKey = "alpha-desc"
	SortPriceDesc SortKey = "price-desc"
	SortPriceAsc  SortKey = "price-asc"
)

var sortAliases = map[string]SortKey{
	"newest":       SortNewest,
	"oldest":       SortOldest,
	"alpha-asc":    SortAlphaAsc,
	"alphabetical": SortAlphaAsc,
	"alpha-desc":   SortAlphaDesc,
	"price-desc":   SortPriceDesc,
	"price-high":   SortPriceDesc,
	"price-asc":    SortPriceAsc,
	"price-low":    SortPriceAsc,
}

// ParseSortKey resolves a key or alias. Empty means newest.
func ParseSortKey(s string) (SortKey, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SortNewest, nil
	}
	if k, ok := sortAliases[s]; ok {
		return k, nil
	}
	return "", ErrUnknownSortKey
}

// Comparator orders items for one sort key. Title comparison is locale aware
// and case-insensitive. A Comparator holds a collator buffer and must not be
// shared between goroutines.
type Comparator struct {
	key      SortKey
	collator *collate.Collator
}

// NewComparator builds a comparator; lang is a BCP 47 tag such as "tr" and
// falls back to the root collation when it does not parse.
func NewComparator(key SortKey, lang string) *Comparator {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.Und
	}
	return &Comparator{
		key:      key,
		collator: collate.New(tag, collate.IgnoreCase),
	}
}

// Compare returns -1 when a sorts before b, 1 when after, 0 when equal.
func (c *Comparator) Compare(a, b *item.Item) int {
	switch c.key {
	case SortOldest:
		return a.CreatedAt.Compare(b.CreatedAt)
	case SortAlphaAsc:
		return c.collator.CompareString(a.Title, b.Title)
	case SortAlphaDesc:
		return c.collator.CompareString(b.Title, a.Title)
	case SortPriceDesc:
		return utils.ExtractPrice(b.Price).Cmp(utils.ExtractPrice(a.Price))
	case SortPriceAsc:
		return utils.ExtractPrice(a.Price).Cmp(utils.ExtractPrice(b.Price))
	default:
		return b.CreatedAt.Compare(a.CreatedAt)
	}
}

// Sort orders items in place with a stable sort, so equal keys keep their
// input order. Prices are extracted once per item.
func (c *Comparator) Sort(items []item.Item) {
	if c.key != SortPriceAsc && c.key != SortPriceDesc {
		slices.SortStableFunc(items, func(a, b item.Item) int { return c.Compare(&a, &b) })
		return
	}

	type keyed struct {
		price decimal.Decimal
		it    item.Item
	}
	decorated := make([]keyed, len(items))
	for i := range items {
		decorated[i] = keyed{price: utils.ExtractPrice(items[i].Price), it: items[i]}
	}

	desc := c.key == SortPriceDesc
	slices.SortStableFunc(decorated, func(a, b keyed) int {
		if desc {
			return b.price.Cmp(a.price)
		}
		return a.price.Cmp(b.price)
	})

	for i := range decorated {
		items[i] = decorated[i].it
	}
}
