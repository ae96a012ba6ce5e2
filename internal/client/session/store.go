// Package session holds the in-memory item and category stores of the
// wishlist currently open in the terminal client. A Store is created by Load
// and dropped when the user moves to another wishlist. It is not safe for
// concurrent use.
package session

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"wishlist-backend/internal/domains/category"
	"wishlist-backend/internal/domains/item"
	"wishlist-backend/internal/domains/item/view"
	"wishlist-backend/internal/domains/wishlist"
)

// Remote is the part of the API client the store reads through.
type Remote interface {
	ListItems(ctx context.Context, wishlistID uuid.UUID, q item.ListQuery) (*item.ListResponse, error)
	ListCategories(ctx context.Context, wishlistID uuid.UUID) ([]category.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) (*category.DeleteCategoryResp, error)
}

type Store struct {
	remote     Remote
	wishlist   wishlist.Wishlist
	items      []item.Item
	categories []category.Category

	search   string
	selector view.Selector
	sort     view.SortKey
}

// Load fetches the item and category stores of w.
func Load(ctx context.Context, remote Remote, w wishlist.Wishlist) (*Store, error) {
	s := &Store{
		remote:   remote,
		wishlist: w,
		selector: view.All,
		sort:     view.SortNewest,
	}
	if err := s.Reconcile(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reconcile replaces both stores with a full refetch. On failure the current
// state is kept.
func (s *Store) Reconcile(ctx context.Context) error {
	resp, err := s.remote.ListItems(ctx, s.wishlist.ID, item.ListQuery{})
	if err != nil {
		return fmt.Errorf("load items: %w", err)
	}
	categories, err := s.remote.ListCategories(ctx, s.wishlist.ID)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}

	s.items = resp.Items
	s.categories = categories
	s.sortCategories()
	s.dropStaleSelector()
	return nil
}

// ========================================
// LOCAL PATCHES
// ========================================

// ApplyInsert puts a newly created item at the front of the store.
func (s *Store) ApplyInsert(it item.Item) {
	s.items = slices.Insert(s.items, 0, it)
}

// ApplyUpdate replaces the item with the same id. It reports false when the
// item is not in the store.
func (s *Store) ApplyUpdate(it item.Item) bool {
	i := s.indexOfItem(it.ID)
	if i < 0 {
		return false
	}
	s.items[i] = it
	return true
}

func (s *Store) ApplyDelete(id uuid.UUID) {
	s.items = slices.DeleteFunc(s.items, func(it item.Item) bool { return it.ID == id })
}

// ApplyCategory adds or replaces a category, keeping name order.
func (s *Store) ApplyCategory(c category.Category) {
	if i := s.indexOfCategory(c.ID); i >= 0 {
		s.categories[i] = c
	} else {
		s.categories = append(s.categories, c)
	}
	s.sortCategories()
}

// DeleteCategory runs the remote cascade, then applies it locally as one
// unit: items pointing at the category become uncategorized and the category
// leaves the store. A selector on that category falls back to all. If the
// remote call fails nothing local changes. Returns the number of local items
// that became uncategorized.
func (s *Store) DeleteCategory(ctx context.Context, id uuid.UUID) (int, error) {
	if _, err := s.remote.DeleteCategory(ctx, id); err != nil {
		return 0, err
	}

	n := 0
	for i := range s.items {
		if s.items[i].InCategory(id) {
			s.items[i].CategoryID = nil
			n++
		}
	}
	s.categories = slices.DeleteFunc(s.categories, func(c category.Category) bool { return c.ID == id })
	s.dropStaleSelector()
	return n, nil
}

// ========================================
// VIEW STATE
// ========================================

func (s *Store) SetSearch(text string) { s.search = text }

func (s *Store) SetSort(key view.SortKey) { s.sort = key }

// SetCategory selects a category filter. Unknown category ids are rejected.
func (s *Store) SetCategory(sel view.Selector) error {
	if id, ok := sel.CategoryID(); ok && s.indexOfCategory(id) < 0 {
		return fmt.Errorf("%w: %s", view.ErrInvalidSelector, id)
	}
	s.selector = sel
	return nil
}

// Query is the current view state.
func (s *Store) Query() view.Query {
	return view.Query{
		Search:   s.search,
		Category: s.selector,
		Sort:     s.sort,
		Language: s.wishlist.Language,
	}
}

// Project recomputes the visible list from scratch.
func (s *Store) Project() view.Projection {
	return view.Project(s.items, s.categories, s.Query())
}

func (s *Store) Counts() item.CategoryCounts {
	return view.CountByCategory(s.items)
}

// ========================================
// ACCESSORS
// ========================================

func (s *Store) Wishlist() wishlist.Wishlist { return s.wishlist }

func (s *Store) Items() []item.Item { return slices.Clone(s.items) }

func (s *Store) Categories() []category.Category { return slices.Clone(s.categories) }

// Category looks up a category by id.
func (s *Store) Category(id uuid.UUID) (category.Category, bool) {
	if i := s.indexOfCategory(id); i >= 0 {
		return s.categories[i], true
	}
	return category.Category{}, false
}

func (s *Store) Item(id uuid.UUID) (item.Item, bool) {
	if i := s.indexOfItem(id); i >= 0 {
		return s.items[i], true
	}
	return item.Item{}, false
}

func (s *Store) indexOfItem(id uuid.UUID) int {
	return slices.IndexFunc(s.items, func(it item.Item) bool { return it.ID == id })
}

func (s *Store) indexOfCategory(id uuid.UUID) int {
	return slices.IndexFunc(s.categories, func(c category.Category) bool { return c.ID == id })
}

func (s *Store) dropStaleSelector() {
	if id, ok := s.selector.CategoryID(); ok && s.indexOfCategory(id) < 0 {
		s.selector = view.All
	}
}

func (s *Store) sortCategories() {
	tag, err := language.Parse(s.wishlist.Language)
	if err != nil {
		tag = language.Und
	}
	col := collate.New(tag, collate.IgnoreCase)
	slices.SortStableFunc(s.categories, func(a, b category.Category) int {
		return col.CompareString(a.Name, b.Name)
	})
}
