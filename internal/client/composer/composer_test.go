package composer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wishlist-backend/internal/client/session"
	"wishlist-backend/internal/domains/category"
	"wishlist-backend/internal/domains/item"
	"wishlist-backend/internal/domains/wishlist"
)

type fakeRemote struct {
	items      []item.Item
	categories []category.Category

	calls      []string
	failCreate error
	failCat    error
	lastCreate item.CreateItemRequest
	lastUpdate item.UpdateItemRequest
}

func (r *fakeRemote) ListItems(context.Context, uuid.UUID, item.ListQuery) (*item.ListResponse, error) {
	return &item.ListResponse{Items: r.items, Total: len(r.items)}, nil
}

func (r *fakeRemote) ListCategories(context.Context, uuid.UUID) ([]category.Category, error) {
	return r.categories, nil
}

func (r *fakeRemote) DeleteCategory(context.Context, uuid.UUID) (*category.DeleteCategoryResp, error) {
	return &category.DeleteCategoryResp{}, nil
}

func (r *fakeRemote) UploadItemImage(_ context.Context, wishlistID uuid.UUID, filename string, _ []byte) (*item.UploadResponse, error) {
	r.calls = append(r.calls, "upload")
	return &item.UploadResponse{URL: "https://cdn.example.com/" + wishlistID.String() + "/1-" + filename}, nil
}

func (r *fakeRemote) CreateItem(_ context.Context, wishlistID uuid.UUID, req item.CreateItemRequest) (*item.Item, error) {
	r.calls = append(r.calls, "create")
	r.lastCreate = req
	if r.failCreate != nil {
		return nil, r.failCreate
	}
	return &item.Item{
		ID:         uuid.New(),
		WishlistID: wishlistID,
		Title:      req.Title,
		ImageURL:   req.ImageURL,
		CategoryID: req.CategoryID,
		CreatedAt:  time.Now(),
	}, nil
}

func (r *fakeRemote) UpdateItem(_ context.Context, id uuid.UUID, req item.UpdateItemRequest) (*item.Item, error) {
	r.calls = append(r.calls, "update")
	r.lastUpdate = req
	it := item.Item{ID: id, Title: *req.Title, CategoryID: req.CategoryID}
	return &it, nil
}

func (r *fakeRemote) CreateCategory(_ context.Context, wishlistID uuid.UUID, req category.CreateCategoryReq) (*category.Category, error) {
	r.calls = append(r.calls, "create-category")
	if r.failCat != nil {
		return nil, r.failCat
	}
	return &category.Category{ID: uuid.New(), WishlistID: wishlistID, Name: req.Name}, nil
}

func newComposer(t *testing.T, remote *fakeRemote) (*Composer, *session.Store) {
	t.Helper()
	store, err := session.Load(context.Background(), remote, wishlist.Wishlist{ID: uuid.New(), Language: "en"})
	require.NoError(t, err)
	return New(store, remote), store
}

func TestAddFlow(t *testing.T) {
	ctx := context.Background()

	t.Run("UploadThenCreateThenPrepend", func(t *testing.T) {
		remote := &fakeRemote{items: []item.Item{{ID: uuid.New(), Title: "Old"}}}
		c, store := newComposer(t, remote)

		require.NoError(t, c.StartAdd())
		assert.Equal(t, StateComposing, c.State())
		require.NoError(t, c.Update(ItemDraft{Title: "  Lamp ", Price: "$45", Image: &ImageFile{Name: "lamp.png", Data: []byte("x")}}))

		saved, err := c.Submit(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"upload", "create"}, remote.calls)
		assert.Equal(t, "Lamp", remote.lastCreate.Title)
		require.NotNil(t, saved.ImageURL)
		assert.Contains(t, *saved.ImageURL, "lamp.png")

		assert.Equal(t, StateIdle, c.State())
		assert.Equal(t, ItemDraft{}, c.Draft())
		assert.Equal(t, "Lamp", store.Items()[0].Title)
	})

	t.Run("ValidationNeverCallsRemote", func(t *testing.T) {
		remote := &fakeRemote{}
		c, _ := newComposer(t, remote)

		require.NoError(t, c.StartAdd())
		require.NoError(t, c.Update(ItemDraft{Title: "   ", URL: "not a url"}))
		_, err := c.Submit(ctx)

		assert.Error(t, err)
		assert.Empty(t, remote.calls)
		assert.Equal(t, StateComposing, c.State())
		assert.Equal(t, "not a url", c.Draft().URL)
	})

	t.Run("RemoteFailureKeepsDraftAndError", func(t *testing.T) {
		boom := errors.New("store unavailable")
		remote := &fakeRemote{failCreate: boom}
		c, store := newComposer(t, remote)

		require.NoError(t, c.StartAdd())
		require.NoError(t, c.Update(ItemDraft{Title: "Lamp"}))
		_, err := c.Submit(ctx)

		assert.ErrorIs(t, err, boom)
		assert.ErrorIs(t, c.Err(), boom)
		assert.Equal(t, StateComposing, c.State())
		assert.Equal(t, "Lamp", c.Draft().Title)
		assert.Empty(t, store.Items())

		remote.failCreate = nil
		_, err = c.Submit(ctx)
		require.NoError(t, err)
		assert.Nil(t, c.Err())
	})

	t.Run("RetryReusesUploadedImage", func(t *testing.T) {
		remote := &fakeRemote{failCreate: errors.New("store unavailable")}
		c, _ := newComposer(t, remote)

		require.NoError(t, c.StartAdd())
		require.NoError(t, c.Update(ItemDraft{Title: "Lamp", Image: &ImageFile{Name: "lamp.png", Data: []byte("x")}}))
		_, err := c.Submit(ctx)
		require.Error(t, err)

		assert.Nil(t, c.Draft().Image)
		assert.Contains(t, c.Draft().ImageURL, "lamp.png")

		remote.failCreate = nil
		saved, err := c.Submit(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"upload", "create", "create"}, remote.calls)
		require.NotNil(t, saved.ImageURL)
		assert.Contains(t, *saved.ImageURL, "lamp.png")
	})
}

func TestCreateCategoryInterruptResume(t *testing.T) {
	ctx := context.Background()

	t.Run("SuccessSelectsNewCategory", func(t *testing.T) {
		remote := &fakeRemote{}
		c, store := newComposer(t, remote)

		require.NoError(t, c.StartAdd())
		require.NoError(t, c.Update(ItemDraft{Title: "Vase", Brand: "Alessi", Category: NewCategoryOption}))
		assert.Equal(t, StateCreatingCategory, c.State())

		_, err := c.Submit(ctx)
		assert.ErrorIs(t, err, ErrInvalidTransition)

		_, err = c.SubmitCategory(ctx, CategoryDraft{Name: ""})
		assert.Error(t, err)
		assert.Equal(t, StateCreatingCategory, c.State())

		created, err := c.SubmitCategory(ctx, CategoryDraft{Name: "Decor", Color: "#ff8800"})
		require.NoError(t, err)
		assert.Equal(t, StateComposing, c.State())
		assert.Equal(t, "Vase", c.Draft().Title)
		assert.Equal(t, "Alessi", c.Draft().Brand)
		assert.Equal(t, created.ID.String(), c.Draft().Category)
		_, ok := store.Category(created.ID)
		assert.True(t, ok)

		saved, err := c.Submit(ctx)
		require.NoError(t, err)
		assert.Equal(t, created.ID, *saved.CategoryID)
	})

	t.Run("CancelRestoresPreviousChoice", func(t *testing.T) {
		existing := category.Category{ID: uuid.New(), Name: "Books"}
		remote := &fakeRemote{categories: []category.Category{existing}}
		c, _ := newComposer(t, remote)

		require.NoError(t, c.StartAdd())
		require.NoError(t, c.Update(ItemDraft{Title: "Novel", Category: existing.ID.String()}))
		require.NoError(t, c.Update(ItemDraft{Title: "Novel", Category: NewCategoryOption}))
		require.NoError(t, c.CancelCategory())

		assert.Equal(t, StateComposing, c.State())
		assert.Equal(t, existing.ID.String(), c.Draft().Category)
		assert.Empty(t, remote.calls)
	})

	t.Run("FailedCategoryCreateStaysInterrupted", func(t *testing.T) {
		remote := &fakeRemote{failCat: errors.New("boom")}
		c, _ := newComposer(t, remote)

		require.NoError(t, c.StartAdd())
		require.NoError(t, c.Update(ItemDraft{Title: "Vase", Category: NewCategoryOption}))
		_, err := c.SubmitCategory(ctx, CategoryDraft{Name: "Decor"})
		assert.Error(t, err)
		assert.Equal(t, StateCreatingCategory, c.State())
		assert.Equal(t, "Vase", c.Draft().Title)
	})
}

func TestEditFlow(t *testing.T) {
	ctx := context.Background()
	books := category.Category{ID: uuid.New(), Name: "Books"}
	image := "http://cdn/old.png"
	novel := item.Item{ID: uuid.New(), Title: "Novel", CategoryID: &books.ID, ImageURL: &image}
	remote := &fakeRemote{items: []item.Item{novel}, categories: []category.Category{books}}
	c, store := newComposer(t, remote)

	require.NoError(t, c.StartEdit(novel))
	assert.Equal(t, ModeEdit, c.Mode())
	assert.Equal(t, books.ID.String(), c.Draft().Category)

	assert.ErrorIs(t, c.StartAdd(), ErrInvalidTransition)

	d := c.Draft()
	d.Title = "Poems"
	d.Category = ""
	d.ImageURL = ""
	require.NoError(t, c.Update(d))

	_, err := c.Submit(ctx)
	require.NoError(t, err)
	assert.True(t, remote.lastUpdate.ClearCategory)
	assert.True(t, remote.lastUpdate.ClearImage)
	assert.Nil(t, remote.lastUpdate.ImageURL)

	got, _ := store.Item(novel.ID)
	assert.Equal(t, "Poems", got.Title)
	assert.Len(t, store.Items(), 1)
}

func TestCancel(t *testing.T) {
	c, _ := newComposer(t, &fakeRemote{})
	assert.ErrorIs(t, c.Cancel(), ErrInvalidTransition)

	require.NoError(t, c.StartAdd())
	require.NoError(t, c.Update(ItemDraft{Title: "x"}))
	require.NoError(t, c.Cancel())
	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, ItemDraft{}, c.Draft())
}
