package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"wishlist-backend/internal/domains/category"
	"wishlist-backend/internal/domains/item"
	"wishlist-backend/internal/domains/wishlist"
	"wishlist-backend/internal/infrastructure/storage"
)

const baseURL = "http://minio.test"

type fakeItemRepo struct {
	items map[uuid.UUID]*item.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: map[uuid.UUID]*item.Item{}}
}

func (r *fakeItemRepo) Create(_ context.Context, it *item.Item) error {
	cp := *it
	r.items[it.ID] = &cp
	return nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, id uuid.UUID) (*item.Item, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, item.ErrItemNotFound
	}
	cp := *it
	return &cp, nil
}

func (r *fakeItemRepo) ListByWishlist(_ context.Context, wishlistID uuid.UUID) ([]item.Item, error) {
	var out []item.Item
	for _, it := range r.items {
		if it.WishlistID == wishlistID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) Update(_ context.Context, it *item.Item) error {
	if _, ok := r.items[it.ID]; !ok {
		return item.ErrItemNotFound
	}
	cp := *it
	r.items[it.ID] = &cp
	return nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return item.ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeItemRepo) SetThumbnail(_ context.Context, id uuid.UUID, imageURL, thumbnailURL string) (bool, error) {
	it, ok := r.items[id]
	if !ok || it.ImageURL == nil || *it.ImageURL != imageURL {
		return false, nil
	}
	it.ThumbnailURL = &thumbnailURL
	return true, nil
}

type fakeCategoryRepo struct {
	category.CategoryRepository
	byID map[uuid.UUID]category.Category
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id uuid.UUID) (*category.Category, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, category.ErrCategoryNotFound
	}
	return &c, nil
}

func (r *fakeCategoryRepo) ListByWishlist(_ context.Context, wishlistID uuid.UUID) ([]category.Category, error) {
	var out []category.Category
	for _, c := range r.byID {
		if c.WishlistID == wishlistID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeWishlistRepo struct {
	wishlist.Repository
	byID map[uuid.UUID]*wishlist.Wishlist
}

func (r *fakeWishlistRepo) GetByID(_ context.Context, id uuid.UUID) (*wishlist.Wishlist, error) {
	w, ok := r.byID[id]
	if !ok {
		return nil, wishlist.ErrWishlistNotFound
	}
	cp := *w
	return &cp, nil
}

type fakeStorage struct {
	objects map[string][]byte
}

func (s *fakeStorage) Upload(_ context.Context, bucket, key string, data []byte, _ string) (string, error) {
	s.objects[bucket+"/"+key] = data
	return s.PublicURL(bucket, key), nil
}

func (s *fakeStorage) Download(_ context.Context, bucket, key string) ([]byte, error) {
	return s.objects[bucket+"/"+key], nil
}

func (s *fakeStorage) RemoveObjects(context.Context, string, []string) error { return nil }
func (s *fakeStorage) RemoveFolder(context.Context, string, string) error    { return nil }

func (s *fakeStorage) PublicURL(bucket, key string) string {
	return storage.PublicURL(baseURL, bucket, key)
}

func (s *fakeStorage) KeyFromURL(bucket, rawURL string) (string, bool) {
	return storage.KeyFromURL(baseURL, bucket, rawURL)
}

type enqueued struct {
	taskType string
	payload  interface{}
}

type fakeQueue struct {
	mu    sync.Mutex
	tasks []enqueued
}

func (q *fakeQueue) Enqueue(_ context.Context, taskType string, payload interface{}, _ ...asynq.Option) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, enqueued{taskType, payload})
	return nil
}

func (q *fakeQueue) ofType(taskType string) []interface{} {
	var out []interface{}
	for _, t := range q.tasks {
		if t.taskType == taskType {
			out = append(out, t.payload)
		}
	}
	return out
}
