package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wishlist-backend/internal/domains/category"
	"wishlist-backend/internal/domains/wishlist"
	"wishlist-backend/pkg/cache"
)

type fakeRepo struct {
	byID      map[uuid.UUID]*category.Category
	itemRefs  map[uuid.UUID]int // category id -> referencing items
	deleteErr error
}

func (r *fakeRepo) Create(_ context.Context, c *category.Category) error {
	r.byID[c.ID] = c
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*category.Category, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, category.ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeRepo) ListByWishlist(_ context.Context, wishlistID uuid.UUID) ([]category.Category, error) {
	var out []category.Category
	for _, c := range r.byID {
		if c.WishlistID == wishlistID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, c *category.Category) error {
	cp := *c
	r.byID[c.ID] = &cp
	return nil
}

func (r *fakeRepo) DeleteCascade(_ context.Context, wishlistID, id uuid.UUID) (int64, error) {
	if r.deleteErr != nil {
		return 0, r.deleteErr
	}
	c, ok := r.byID[id]
	if !ok || c.WishlistID != wishlistID {
		return 0, category.ErrCategoryNotFound
	}
	n := r.itemRefs[id]
	delete(r.itemRefs, id)
	delete(r.byID, id)
	return int64(n), nil
}

type fakeWishlists struct {
	wishlist.Repository
	w *wishlist.Wishlist
}

func (f *fakeWishlists) GetByID(_ context.Context, id uuid.UUID) (*wishlist.Wishlist, error) {
	if id != f.w.ID {
		return nil, wishlist.ErrWishlistNotFound
	}
	return f.w, nil
}

func setup() (category.CategoryService, *fakeRepo, *cache.MemoryCache, *wishlist.Wishlist) {
	w := &wishlist.Wishlist{ID: uuid.New(), UserID: uuid.New(), Slug: "home-1"}
	repo := &fakeRepo{byID: map[uuid.UUID]*category.Category{}, itemRefs: map[uuid.UUID]int{}}
	c := cache.NewMemoryCache()
	return NewCategoryService(repo, &fakeWishlists{w: w}, c), repo, c, w
}

func TestCreateCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("DefaultsColorAndSlug", func(t *testing.T) {
		svc, _, _, w := setup()
		c, err := svc.Create(ctx, w.UserID, w.ID, category.CreateCategoryReq{Name: " Ev Eşyası "})
		require.NoError(t, err)
		assert.Equal(t, "Ev Eşyası", c.Name)
		assert.Equal(t, "ev-esyasi", c.Slug)
		assert.Equal(t, category.DefaultColor, c.Color)
	})

	t.Run("EmptyNameRejectedLocally", func(t *testing.T) {
		svc, repo, _, w := setup()
		_, err := svc.Create(ctx, w.UserID, w.ID, category.CreateCategoryReq{Name: "   "})
		require.Error(t, err)
		assert.Empty(t, repo.byID)
	})

	t.Run("BadColor", func(t *testing.T) {
		svc, _, _, w := setup()
		bad := "red"
		_, err := svc.Create(ctx, w.UserID, w.ID, category.CreateCategoryReq{Name: "x", Color: &bad})
		assert.Error(t, err)
	})

	t.Run("NotOwner", func(t *testing.T) {
		svc, _, _, w := setup()
		_, err := svc.Create(ctx, uuid.New(), w.ID, category.CreateCategoryReq{Name: "x"})
		assert.ErrorIs(t, err, wishlist.ErrForbidden)
	})
}

func TestDeleteCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("ReportsUncategorizedItems", func(t *testing.T) {
		svc, repo, c, w := setup()
		created, err := svc.Create(ctx, w.UserID, w.ID, category.CreateCategoryReq{Name: "Furniture"})
		require.NoError(t, err)
		repo.itemRefs[created.ID] = 3
		require.NoError(t, c.Set(ctx, wishlist.PublicCacheKey(w.Slug), 1, time.Minute))

		resp, err := svc.Delete(ctx, w.UserID, created.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), resp.UncategorizedItems)
		assert.NotContains(t, repo.byID, created.ID)

		cached, _ := c.Exists(ctx, wishlist.PublicCacheKey(w.Slug))
		assert.False(t, cached)
	})

	t.Run("FailureIsReportedNotRetried", func(t *testing.T) {
		svc, repo, _, w := setup()
		created, err := svc.Create(ctx, w.UserID, w.ID, category.CreateCategoryReq{Name: "Books"})
		require.NoError(t, err)
		repo.deleteErr = assert.AnError

		_, err = svc.Delete(ctx, w.UserID, created.ID)
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("Missing", func(t *testing.T) {
		svc, _, _, w := setup()
		_, err := svc.Delete(ctx, w.UserID, uuid.New())
		assert.ErrorIs(t, err, category.ErrCategoryNotFound)
	})
}

func TestUpdateCategory(t *testing.T) {
	ctx := context.Background()
	svc, _, _, w := setup()
	created, err := svc.Create(ctx, w.UserID, w.ID, category.CreateCategoryReq{Name: "Books"})
	require.NoError(t, err)

	name, color := "Kitaplar", "#FFAA00"
	got, err := svc.Update(ctx, w.UserID, created.ID, category.UpdateCategoryReq{Name: &name, Color: &color})
	require.NoError(t, err)
	assert.Equal(t, "kitaplar", got.Slug)
	assert.Equal(t, "#ffaa00", got.Color)

	empty := " "
	_, err = svc.Update(ctx, w.UserID, created.ID, category.UpdateCategoryReq{Name: &empty})
	assert.Error(t, err)
}
