package service

import (
	"context"
	"errors"
	"fmt"
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

// Buckets - bucket MinIO mà service ghi vào.
type Buckets struct {
	Items string
	Logos string
}

type wishlistService struct {
	repo       wishlist.Repository
	items      item.Repository
	categories category.CategoryRepository
	storage    storage.ObjectStorage
	images     *storage.ImageProcessor
	queue      queue.Enqueuer
	cache      cache.Cache
	buckets    Buckets
	publicTTL  time.Duration
	now        func() time.Time
}

func NewWishlistService(
	repo wishlist.Repository,
	items item.Repository,
	categories category.CategoryRepository,
	objectStorage storage.ObjectStorage,
	images *storage.ImageProcessor,
	enqueuer queue.Enqueuer,
	c cache.Cache,
	buckets Buckets,
	publicTTL time.Duration,
) wishlist.Service {
	return &wishlistService{
		repo:       repo,
		items:      items,
		categories: categories,
		storage:    objectStorage,
		images:     images,
		queue:      enqueuer,
		cache:      c,
		buckets:    buckets,
		publicTTL:  publicTTL,
		now:        time.Now,
	}
}

// ========================================
// OWNER CRUD
// ========================================

// Create sinh slug "<title-slug>-<unix-millis>". Trùng slug thì thử lại một lần.
func (s *wishlistService) Create(ctx context.Context, userID uuid.UUID, req wishlist.CreateWishlistRequest) (*wishlist.Wishlist, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	w := &wishlist.Wishlist{
		ID:              uuid.New(),
		UserID:          userID,
		Title:           req.Title,
		Description:     nonEmpty(req.Description),
		IsPublic:        true,
		BackgroundColor: nonEmpty(req.BackgroundColor),
		FontFamily:      nonEmpty(req.FontFamily),
		Language:        wishlist.DefaultLanguage,
	}
	if req.IsPublic != nil {
		w.IsPublic = *req.IsPublic
	}
	if req.Language != nil {
		w.Language = *req.Language
	}

	now := s.now()
	w.Slug = utils.UniqueSlug(w.Title, now)
	err := s.repo.Create(ctx, w)
	if errors.Is(err, wishlist.ErrSlugTaken) {
		w.Slug = utils.UniqueSlug(w.Title, now.Add(time.Millisecond))
		err = s.repo.Create(ctx, w)
	}
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("wishlist_id", w.ID.String()).
		Str("slug", w.Slug).
		Msg("Wishlist created")
	return w, nil
}

func (s *wishlistService) List(ctx context.Context, userID uuid.UUID) ([]wishlist.Wishlist, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *wishlistService) Get(ctx context.Context, userID, id uuid.UUID) (*wishlist.Wishlist, error) {
	return wishlist.Owned(ctx, s.repo, id, userID)
}

func (s *wishlistService) Update(ctx context.Context, userID, id uuid.UUID, req wishlist.UpdateWishlistRequest) (*wishlist.Wishlist, error) {
	if req.Title != nil {
		t := strings.TrimSpace(*req.Title)
		req.Title = &t
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	w, err := wishlist.Owned(ctx, s.repo, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		w.Title = *req.Title
	}
	if req.IsPublic != nil {
		w.IsPublic = *req.IsPublic
	}
	if req.Language != nil {
		w.Language = *req.Language
	}
	applyText(&w.Description, req.Description)
	applyText(&w.BackgroundColor, req.BackgroundColor)
	applyText(&w.FontFamily, req.FontFamily)

	if err := s.repo.Update(ctx, w); err != nil {
		return nil, err
	}

	wishlist.InvalidatePublic(ctx, s.cache, w.Slug)
	return w, nil
}

// Delete xóa wishlist; ảnh item và logo được dọn bởi worker.
func (s *wishlistService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	w, err := wishlist.Owned(ctx, s.repo, id, userID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, w.ID); err != nil {
		return err
	}

	queue.EnqueueBestEffort(ctx, s.queue, shared.TypeDeleteObjects, shared.DeleteObjectsPayload{
		Bucket: s.buckets.Items,
		Prefix: w.ID.String() + "/",
	})
	s.releaseLogo(ctx, w.LogoURL)
	wishlist.InvalidatePublic(ctx, s.cache, w.Slug)

	log.Info().Str("wishlist_id", w.ID.String()).Msg("Wishlist deleted")
	return nil
}

// UploadLogo lưu logo dưới <user_id>/<unix-millis>.<ext> và thay logo cũ.
func (s *wishlistService) UploadLogo(ctx context.Context, userID, id uuid.UUID, filename string, data []byte) (*wishlist.Wishlist, error) {
	w, err := wishlist.Owned(ctx, s.repo, id, userID)
	if err != nil {
		return nil, err
	}

	contentType, err := s.images.ValidateImage(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", wishlist.ErrInvalidLogo, err)
	}
	ext := "jpg"
	if contentType == "image/png" {
		ext = "png"
	}

	key := fmt.Sprintf("%s/%d.%s", userID, s.now().UnixMilli(), ext)
	url, err := s.storage.Upload(ctx, s.buckets.Logos, key, data, contentType)
	if err != nil {
		log.Error().Err(err).Str("key", key).Str("filename", filename).Msg("Logo upload failed")
		return nil, item.ErrImageUploadFailed
	}

	previous := w.LogoURL
	w.LogoURL = &url
	if err := s.repo.Update(ctx, w); err != nil {
		queue.EnqueueBestEffort(ctx, s.queue, shared.TypeDeleteObjects, shared.DeleteObjectsPayload{
			Bucket: s.buckets.Logos,
			Keys:   []string{key},
		})
		return nil, err
	}

	s.releaseLogo(ctx, previous)
	wishlist.InvalidatePublic(ctx, s.cache, w.Slug)
	return w, nil
}

// ========================================
// PUBLIC SHARE
// ========================================

// GetPublic phục vụ trang chia sẻ. Snapshot (wishlist + categories + items)
// được cache theo slug; projection tính lại mỗi request.
func (s *wishlistService) GetPublic(ctx context.Context, slug string, viewerID uuid.UUID, q item.ListQuery) (*wishlist.PublicWishlistResponse, error) {
	snap, err := s.snapshot(ctx, slug, viewerID)
	if err != nil {
		return nil, err
	}

	query, err := view.ParseQuery(q.Search, q.Category, q.Sort, snap.Wishlist.Language)
	if err != nil {
		return nil, err
	}

	p := view.Project(snap.Items, snap.Categories, query)
	return &wishlist.PublicWishlistResponse{
		Wishlist:   snap.Wishlist,
		Categories: snap.Categories,
		Items:      p.Items,
		Total:      p.Total,
		IsEmpty:    p.IsEmpty(),
		NoMatches:  p.NoMatches(),
		Counts:     view.CountByCategory(snap.Items),
	}, nil
}

func (s *wishlistService) snapshot(ctx context.Context, slug string, viewerID uuid.UUID) (*wishlist.PublicSnapshot, error) {
	key := wishlist.PublicCacheKey(slug)

	if s.cache != nil {
		var cached wishlist.PublicSnapshot
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Warn().Err(err).Str("slug", slug).Msg("Public cache read failed")
		}
		if found {
			return &cached, nil
		}
	}

	w, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	// Wishlist private chỉ hiện với chủ sở hữu, người khác nhận 404.
	if !w.IsPublic && !w.OwnedBy(viewerID) {
		return nil, wishlist.ErrWishlistNotFound
	}

	items, err := s.items.ListByWishlist(ctx, w.ID)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.ListByWishlist(ctx, w.ID)
	if err != nil {
		return nil, err
	}
	snap := &wishlist.PublicSnapshot{Wishlist: *w, Categories: categories, Items: items}

	if s.cache != nil && w.IsPublic {
		if err := s.cache.Set(ctx, key, snap, s.publicTTL); err != nil {
			log.Warn().Err(err).Str("slug", slug).Msg("Public cache write failed")
		}
	}
	return snap, nil
}

// ========================================
// HELPERS
// ========================================

func (s *wishlistService) releaseLogo(ctx context.Context, logoURL *string) {
	if logoURL == nil {
		return
	}
	key, ok := s.storage.KeyFromURL(s.buckets.Logos, *logoURL)
	if !ok {
		return
	}
	queue.EnqueueBestEffort(ctx, s.queue, shared.TypeDeleteObjects, shared.DeleteObjectsPayload{
		Bucket: s.buckets.Logos,
		Keys:   []string{key},
	})
}

func nonEmpty(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}

// applyText: nil = giữ nguyên, "" = xóa, còn lại = set.
func applyText(dst **string, v *string) {
	if v == nil {
		return
	}
	*dst = nonEmpty(v)
}
