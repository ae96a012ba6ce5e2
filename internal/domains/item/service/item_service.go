package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"wishlist-backend/internal/domains/category"
	"wishlist-backend/internal/domains/item"
	"wishlist-backend/internal/domains/item/view"
	"wishlist-backend/internal/domains/wishlist"
	"wishlist-backend/internal/infrastructure/queue"
	"wishlist-backend/internal/infrastructure/storage"
	"wishlist-backend/internal/shared"
	"wishlist-backend/internal/shared/utils"
	"wishlist-backend/pkg/cache"
)

type itemService struct {
	repo       item.Repository
	categories category.CategoryRepository
	wishlists  wishlist.Repository
	storage    storage.ObjectStorage
	images     *storage.ImageProcessor
	queue      queue.Enqueuer
	cache      cache.Cache
	bucket     string
	now        func() time.Time
}

func NewItemService(
	repo item.Repository,
	categories category.CategoryRepository,
	wishlists wishlist.Repository,
	objectStorage storage.ObjectStorage,
	images *storage.ImageProcessor,
	enqueuer queue.Enqueuer,
	c cache.Cache,
	bucket string,
) item.Service {
	return &itemService{
		repo:       repo,
		categories: categories,
		wishlists:  wishlists,
		storage:    objectStorage,
		images:     images,
		queue:      enqueuer,
		cache:      c,
		bucket:     bucket,
		now:        time.Now,
	}
}

// ========================================
// QUERIES
// ========================================

func (s *itemService) List(ctx context.Context, userID, wishlistID uuid.UUID, q item.ListQuery) (*item.ListResponse, error) {
	w, err := wishlist.Owned(ctx, s.wishlists, wishlistID, userID)
	if err != nil {
		return nil, err
	}

	query, err := view.ParseQuery(q.Search, q.Category, q.Sort, w.Language)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListByWishlist(ctx, w.ID)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.ListByWishlist(ctx, w.ID)
	if err != nil {
		return nil, err
	}

	p := view.Project(items, categories, query)
	return &item.ListResponse{
		Items:     p.Items,
		Total:     p.Total,
		IsEmpty:   p.IsEmpty(),
		NoMatches: p.NoMatches(),
		Counts:    view.CountByCategory(items),
	}, nil
}

// ========================================
// MUTATIONS
// ========================================

func (s *itemService) Create(ctx context.Context, userID, wishlistID uuid.UUID, req item.CreateItemRequest) (*item.Item, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	w, err := wishlist.Owned(ctx, s.wishlists, wishlistID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, w.ID, req.CategoryID); err != nil {
		return nil, err
	}

	it := &item.Item{
		ID:          uuid.New(),
		WishlistID:  w.ID,
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		Brand:       req.Brand,
		CategoryID:  req.CategoryID,
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}

	s.enqueueThumbnail(ctx, it)
	wishlist.InvalidatePublic(ctx, s.cache, w.Slug)
	return it, nil
}

func (s *itemService) Update(ctx context.Context, userID, itemID uuid.UUID, req item.UpdateItemRequest) (*item.Item, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	w, err := wishlist.Owned(ctx, s.wishlists, it.WishlistID, userID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		it.Title = *req.Title
	}
	applyText(&it.Description, req.Description)
	applyText(&it.URL, req.URL)
	applyText(&it.Price, req.Price)
	applyText(&it.Brand, req.Brand)

	switch {
	case req.ClearCategory:
		it.CategoryID = nil
	case req.CategoryID != nil:
		if err := s.checkCategory(ctx, w.ID, req.CategoryID); err != nil {
			return nil, err
		}
		it.CategoryID = req.CategoryID
	}

	// Ảnh cũ chỉ bị xóa sau khi update thành công.
	var released []string
	newImage := it.ImageURL
	if req.ClearImage {
		newImage = nil
	} else if req.ImageURL != nil {
		applyText(&newImage, req.ImageURL)
	}
	imageChanged := !sameString(newImage, it.ImageURL)
	if imageChanged {
		released = s.ownedKeys(it)
		it.ImageURL = newImage
		it.ThumbnailURL = nil
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}

	if imageChanged {
		s.enqueueThumbnail(ctx, it)
		s.enqueueDelete(ctx, released)
	}
	wishlist.InvalidatePublic(ctx, s.cache, w.Slug)
	return it, nil
}

func (s *itemService) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	w, err := wishlist.Owned(ctx, s.wishlists, it.WishlistID, userID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, it.ID); err != nil {
		return err
	}

	s.enqueueDelete(ctx, s.ownedKeys(it))
	wishlist.InvalidatePublic(ctx, s.cache, w.Slug)
	return nil
}

// ========================================
// IMAGES
// ========================================

// UploadImage stores an item image under <wishlist_id>/<unix-millis>-<name>.
func (s *itemService) UploadImage(ctx context.Context, userID, wishlistID uuid.UUID, filename string, data []byte) (*item.UploadResponse, error) {
	w, err := wishlist.Owned(ctx, s.wishlists, wishlistID, userID)
	if err != nil {
		return nil, err
	}

	if int64(len(data)) > s.images.MaxSize {
		return nil, item.ErrImageTooLarge
	}
	contentType, err := s.images.ValidateImage(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", item.ErrInvalidImage, err)
	}

	key := fmt.Sprintf("%s/%d-%s", w.ID, s.now().UnixMilli(), sanitizeFilename(filename))
	url, err := s.storage.Upload(ctx, s.bucket, key, data, contentType)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Item image upload failed")
		return nil, item.ErrImageUploadFailed
	}

	return &item.UploadResponse{Path: key, URL: url}, nil
}

// ProcessImage tạo thumbnail 300px cho ảnh của item.
// Payload cũ (ảnh đã bị thay) được bỏ qua.
func (s *itemService) ProcessImage(ctx context.Context, p shared.ProcessItemImagePayload) error {
	it, err := s.repo.GetByID(ctx, p.ItemID)
	if errors.Is(err, item.ErrItemNotFound) {
		log.Info().Str("item_id", p.ItemID.String()).Msg("Item gone, skipping thumbnail")
		return nil
	}
	if err != nil {
		return err
	}
	if it.ImageURL == nil {
		return nil
	}
	if key, ok := s.storage.KeyFromURL(s.bucket, *it.ImageURL); !ok || key != p.ObjectKey {
		log.Info().Str("item_id", it.ID.String()).Msg("Image replaced since enqueue, skipping thumbnail")
		return nil
	}

	original, err := s.storage.Download(ctx, s.bucket, p.ObjectKey)
	if err != nil {
		return fmt.Errorf("download original: %w", err)
	}
	thumb, err := s.images.Thumbnail(original, storage.ThumbnailSize)
	if err != nil {
		return fmt.Errorf("build thumbnail: %w", err)
	}

	thumbKey := storage.ThumbnailKey(p.ObjectKey)
	thumbURL, err := s.storage.Upload(ctx, s.bucket, thumbKey, thumb, "image/jpeg")
	if err != nil {
		return fmt.Errorf("upload thumbnail: %w", err)
	}

	updated, err := s.repo.SetThumbnail(ctx, it.ID, *it.ImageURL, thumbURL)
	if err != nil {
		return err
	}
	if !updated {
		s.enqueueDelete(ctx, []string{thumbKey})
		return nil
	}

	if w, err := s.wishlists.GetByID(ctx, it.WishlistID); err == nil {
		wishlist.InvalidatePublic(ctx, s.cache, w.Slug)
	}
	return nil
}

// ========================================
// HELPERS
// ========================================

func (s *itemService) checkCategory(ctx context.Context, wishlistID uuid.UUID, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}
	c, err := s.categories.GetByID(ctx, *categoryID)
	if errors.Is(err, category.ErrCategoryNotFound) {
		return item.ErrCategoryNotInList
	}
	if err != nil {
		return err
	}
	if c.WishlistID != wishlistID {
		return item.ErrCategoryNotInList
	}
	return nil
}

// ownedKeys lists the bucket keys of the item's image and thumbnail; external
// URLs are skipped.
func (s *itemService) ownedKeys(it *item.Item) []string {
	var keys []string
	for _, u := range []*string{it.ImageURL, it.ThumbnailURL} {
		if u == nil {
			continue
		}
		if key, ok := s.storage.KeyFromURL(s.bucket, *u); ok {
			keys = append(keys, key)
		}
	}
	return keys
}

func (s *itemService) enqueueThumbnail(ctx context.Context, it *item.Item) {
	if it.ImageURL == nil {
		return
	}
	key, ok := s.storage.KeyFromURL(s.bucket, *it.ImageURL)
	if !ok {
		return
	}
	queue.EnqueueBestEffort(ctx, s.queue, shared.TypeProcessItemImage, shared.ProcessItemImagePayload{
		ItemID:     it.ID,
		WishlistID: it.WishlistID,
		ObjectKey:  key,
	})
}

func (s *itemService) enqueueDelete(ctx context.Context, keys []string) {
	if len(keys) == 0 {
		return
	}
	queue.EnqueueBestEffort(ctx, s.queue, shared.TypeDeleteObjects, shared.DeleteObjectsPayload{
		Bucket: s.bucket,
		Keys:   keys,
	})
}

// applyText: nil = giữ nguyên, "" = xóa, còn lại = set.
func applyText(dst **string, v *string) {
	if v == nil {
		return
	}
	if *v == "" {
		*dst = nil
		return
	}
	val := *v
	*dst = &val
}

func sameString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// sanitizeFilename turns "My Photo.JPG" into "my-photo.jpg".
func sanitizeFilename(name string) string {
	ext := strings.ToLower(path.Ext(name))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		ext = ""
	}
	base := utils.GenerateSlug(strings.TrimSuffix(path.Base(name), path.Ext(name)))
	if base == "" {
		base = "image"
	}
	return base + ext
}
