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

type fakeWishlistRepo struct {
	byID      map[uuid.UUID]*wishlist.Wishlist
	takenSlug map[string]bool
	bySlugHit int
}

func newFakeWishlistRepo() *fakeWishlistRepo {
	return &fakeWishlistRepo{byID: map[uuid.UUID]*wishlist.Wishlist{}, takenSlug: map[string]bool{}}
}

func (r *fakeWishlistRepo) Create(_ context.Context, w *wishlist.Wishlist) error {
	if r.takenSlug[w.Slug] {
		return wishlist.ErrSlugTaken
	}
	r.takenSlug[w.Slug] = true
	cp := *w
	r.byID[w.ID] = &cp
	return nil
}

func (r *fakeWishlistRepo) GetByID(_ context.Context, id uuid.UUID) (*wishlist.Wishlist, error) {
	w, ok := r.byID[id]
	if !ok {
		return nil, wishlist.ErrWishlistNotFound
	}
	cp := *w
	return &cp, nil
}

func (r *fakeWishlistRepo) GetBySlug(_ context.Context, slug string) (*wishlist.Wishlist, error) {
	r.bySlugHit++
	for _, w := range r.byID {
		if w.Slug == slug {
			cp := *w
			return &cp, nil
		}
	}
	return nil, wishlist.ErrWishlistNotFound
}

func (r *fakeWishlistRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]wishlist.Wishlist, error) {
	var out []wishlist.Wishlist
	for _, w := range r.byID {
		if w.UserID == userID {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (r *fakeWishlistRepo) Update(_ context.Context, w *wishlist.Wishlist) error {
	if _, ok := r.byID[w.ID]; !ok {
		return wishlist.ErrWishlistNotFound
	}
	cp := *w
	r.byID[w.ID] = &cp
	return nil
}

func (r *fakeWishlistRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.byID[id]; !ok {
		return wishlist.ErrWishlistNotFound
	}
	delete(r.byID, id)
	return nil
}

type fakeItemRepo struct {
	item.Repository
	items []item.Item
}

func (r *fakeItemRepo) ListByWishlist(_ context.Context, wishlistID uuid.UUID) ([]item.Item, error) {
	var out []item.Item
	for _, it := range r.items {
		if it.WishlistID == wishlistID {
			out = append(out, it)
		}
	}
	return out, nil
}

type fakeCategoryRepo struct {
	category.CategoryRepository
	categories []category.Category
}

func (r *fakeCategoryRepo) ListByWishlist(_ context.Context, wishlistID uuid.UUID) ([]category.Category, error) {
	var out []category.Category
	for _, c := range r.categories {
		if c.WishlistID == wishlistID {
			out = append(out, c)
		}
	}
	return out, nil
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
