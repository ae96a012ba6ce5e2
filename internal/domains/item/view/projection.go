package view

import (
	"github.com/google/uuid"

	"wishlist-backend/internal/domains/category"
	"wishlist-backend/internal/domains/item"
)

// Query is the view state: search text, category selector, sort key, plus the
// wishlist language used for collation.
type Query struct {
	Search   string
	Category Selector
	Sort     SortKey
	Language string
}

// ParseQuery validates raw request values.
func ParseQuery(search, categorySel, sortKey, lang string) (Query, error) {
	sel, err := ParseSelector(categorySel)
	if err != nil {
		return Query{}, err
	}
	key, err := ParseSortKey(sortKey)
	if err != nil {
		return Query{}, err
	}
	return Query{Search: search, Category: sel, Sort: key, Language: lang}, nil
}

// Projection is the ordered visible list. Total is the size of the store it
// was computed from.
type Projection struct {
	Items []item.Item
	Total int
}

// IsEmpty reports that the store has no items at all.
func (p Projection) IsEmpty() bool { return p.Total == 0 }

// NoMatches reports items exist but none pass the current filter.
func (p Projection) NoMatches() bool { return p.Total > 0 && len(p.Items) == 0 }

// Project filters then stably sorts. The input slice is never modified and
// the result is recomputed in full on every call.
func Project(items []item.Item, categories []category.Category, q Query) Projection {
	filter := NewFilter(q.Search, q.Category, category.Names(categories))

	visible := make([]item.Item, 0, len(items))
	for i := range items {
		if filter.Matches(&items[i]) {
			visible = append(visible, items[i])
		}
	}

	NewComparator(q.Sort, q.Language).Sort(visible)
	return Projection{Items: visible, Total: len(items)}
}

// CountByCategory counts items per category id plus uncategorized.
func CountByCategory(items []item.Item) item.CategoryCounts {
	counts := item.CategoryCounts{ByCategory: make(map[uuid.UUID]int)}
	for i := range items {
		if items[i].CategoryID == nil {
			counts.Uncategorized++
			continue
		}
		counts.ByCategory[*items[i].CategoryID]++
	}
	return counts
}
