// Package view holds the pure filter, sort and projection logic that decides
// which items of a wishlist are visible and in what order. It is shared by the
// API (owner list, public page, export) and the terminal client.
package view

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidSelector = errors.New("invalid category selector")

type selectorKind uint8

const (
	selectAll selectorKind = iota
	selectUncategorized
	selectCategory
)

// Selector chooses items by category: all, uncategorized, or one category.
// The zero value selects all.
type Selector struct {
	kind selectorKind
	id   uuid.UUID
}

var (
	All           = Selector{kind: selectAll}
	Uncategorized = Selector{kind: selectUncategorized}
)

func ByCategory(id uuid.UUID) Selector {
	return Selector{kind: selectCategory, id: id}
}

// ParseSelector accepts "", "all", "uncategorized" (aliases "none", "other")
// or a category UUID.
func ParseSelector(s string) (Selector, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return All, nil
	case "uncategorized", "none", "other":
		return Uncategorized, nil
	}

	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return All, ErrInvalidSelector
	}
	return ByCategory(id), nil
}

func (s Selector) IsAll() bool           { return s.kind == selectAll }
func (s Selector) IsUncategorized() bool { return s.kind == selectUncategorized }

// CategoryID returns the selected category, false for all/uncategorized.
func (s Selector) CategoryID() (uuid.UUID, bool) {
	return s.id, s.kind == selectCategory
}

// Matches reports whether an item with the given category reference passes.
func (s Selector) Matches(categoryID *uuid.UUID) bool {
	switch s.kind {
	case selectUncategorized:
		return categoryID == nil
	case selectCategory:
		return categoryID != nil && *categoryID == s.id
	default:
		return true
	}
}

func (s Selector) String() string {
	switch s.kind {
	case selectUncategorized:
		return "uncategorized"
	case selectCategory:
		return s.id.String()
	default:
		return "all"
	}
}
