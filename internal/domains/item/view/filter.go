package view

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"wishlist-backend/internal/domains/item"
)

// Filter combines a search text with a category selector. Search is a
// case-folded substring match over title, description, brand and the name of
// the item's category.
type Filter struct {
	needle     string
	selector   Selector
	categories map[uuid.UUID]string
	fold       cases.Caser
}

// NewFilter folds the search text once, untrimmed: only "" matches everything.
// categoryNames resolves category ids.
func NewFilter(search string, selector Selector, categoryNames map[uuid.UUID]string) *Filter {
	fold := cases.Fold()
	return &Filter{
		needle:     fold.String(search),
		selector:   selector,
		categories: categoryNames,
		fold:       fold,
	}
}

func (f *Filter) Matches(it *item.Item) bool {
	return f.selector.Matches(it.CategoryID) && f.matchesSearch(it)
}

func (f *Filter) matchesSearch(it *item.Item) bool {
	if f.needle == "" {
		return true
	}
	if f.contains(it.Title) || f.containsPtr(it.Description) || f.containsPtr(it.Brand) {
		return true
	}
	if it.CategoryID != nil {
		if name, ok := f.categories[*it.CategoryID]; ok {
			return f.contains(name)
		}
	}
	return false
}

func (f *Filter) contains(s string) bool {
	return s != "" && strings.Contains(f.fold.String(s), f.needle)
}

func (f *Filter) containsPtr(s *string) bool {
	return s != nil && f.contains(*s)
}

// Matches is the one-shot form of Filter.Matches.
func Matches(it *item.Item, search string, selector Selector, categoryNames map[uuid.UUID]string) bool {
	return NewFilter(search, selector, categoryNames).Matches(it)
}
