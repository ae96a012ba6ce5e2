package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wishlist-backend/internal/client/composer"
	"wishlist-backend/internal/client/session"
	"wishlist-backend/internal/domains/category"
	"wishlist-backend/internal/domains/item"
	"wishlist-backend/internal/domains/wishlist"
)

type fakeRemote struct {
	items      []item.Item
	categories []category.Category
}

func (f *fakeRemote) ListItems(context.Context, uuid.UUID, item.ListQuery) (*item.ListResponse, error) {
	return &item.ListResponse{Items: f.items, Total: len(f.items)}, nil
}

func (f *fakeRemote) ListCategories(context.Context, uuid.UUID) ([]category.Category, error) {
	return f.categories, nil
}

func (f *fakeRemote) DeleteCategory(_ context.Context, id uuid.UUID) (*category.DeleteCategoryResp, error) {
	return &category.DeleteCategoryResp{ID: id.String()}, nil
}

func newTestStore(t *testing.T, items []item.Item, cats []category.Category) *session.Store {
	t.Helper()
	store, err := session.Load(context.Background(), &fakeRemote{items: items, categories: cats}, wishlist.Wishlist{ID: uuid.New(), Language: "en"})
	require.NoError(t, err)
	return store
}

func TestRenderItems(t *testing.T) {
	kitchen := category.Category{ID: uuid.New(), Name: "Kitchen"}
	kettle := item.Item{ID: uuid.New(), Title: "Kettle", CategoryID: &kitchen.ID}
	lamp := item.Item{ID: uuid.New(), Title: "Lamp"}

	t.Run("EmptyStore", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, renderItems(&out, newTestStore(t, nil, nil)))
		assert.Contains(t, out.String(), "no items yet")
	})

	t.Run("NoMatches", func(t *testing.T) {
		store := newTestStore(t, []item.Item{kettle, lamp}, []category.Category{kitchen})
		store.SetSearch("sofa")

		var out bytes.Buffer
		require.NoError(t, renderItems(&out, store))
		assert.Contains(t, out.String(), "No items match")
		assert.Contains(t, out.String(), "2 hidden")
	})

	t.Run("ListsVisibleItems", func(t *testing.T) {
		store := newTestStore(t, []item.Item{kettle, lamp}, []category.Category{kitchen})
		require.NoError(t, applyView(store, item.ListQuery{Category: "kitchen"}))

		var out bytes.Buffer
		require.NoError(t, renderItems(&out, store))
		assert.Contains(t, out.String(), "Kettle")
		assert.NotContains(t, out.String(), "Lamp")
		assert.Contains(t, out.String(), "Showing 1 of 2 items")
	})
}

func TestSelectorFor(t *testing.T) {
	gifts := category.Category{ID: uuid.New(), Name: "Gifts"}
	cats := []category.Category{gifts}

	t.Run("Keywords", func(t *testing.T) {
		sel, err := selectorFor(cats, "")
		require.NoError(t, err)
		assert.True(t, sel.IsAll())

		sel, err = selectorFor(cats, "Uncategorized")
		require.NoError(t, err)
		assert.True(t, sel.IsUncategorized())
	})

	t.Run("ByNameOrID", func(t *testing.T) {
		sel, err := selectorFor(cats, "gifts")
		require.NoError(t, err)
		id, ok := sel.CategoryID()
		assert.True(t, ok)
		assert.Equal(t, gifts.ID, id)

		sel, err = selectorFor(cats, gifts.ID.String())
		require.NoError(t, err)
		id, _ = sel.CategoryID()
		assert.Equal(t, gifts.ID, id)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := selectorFor(cats, "Garden")
		assert.Error(t, err)

		_, err = selectorFor(cats, uuid.NewString())
		assert.Error(t, err)
	})
}

func TestDraftCategory(t *testing.T) {
	books := category.Category{ID: uuid.New(), Name: "Books"}
	store := newTestStore(t, nil, []category.Category{books})

	cases := map[string]string{
		"":      "",
		"none":  "",
		"new":   composer.NewCategoryOption,
		"BOOKS": books.ID.String(),
	}
	for in, want := range cases {
		got, err := draftCategory(store, in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := draftCategory(store, "Music")
	assert.Error(t, err)
}

func TestConfirm(t *testing.T) {
	var out bytes.Buffer
	assert.True(t, confirm(strings.NewReader("y\n"), &out, "Delete?"))
	assert.True(t, confirm(strings.NewReader("YES\n"), &out, "Delete?"))
	assert.False(t, confirm(strings.NewReader("\n"), &out, "Delete?"))
	assert.False(t, confirm(strings.NewReader(""), &out, "Delete?"))
	assert.Contains(t, out.String(), "Delete? (y/N)")
}
