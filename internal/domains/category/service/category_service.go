package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"wishlist-backend/internal/domains/category"
	"wishlist-backend/internal/domains/wishlist"
	"wishlist-backend/pkg/cache"
)

type categoryService struct {
	repo      category.CategoryRepository
	wishlists wishlist.Repository
	cache     cache.Cache
}

func NewCategoryService(repo category.CategoryRepository, wishlists wishlist.Repository, c cache.Cache) category.CategoryService {
	return &categoryService{repo: repo, wishlists: wishlists, cache: c}
}

func (s *categoryService) Create(ctx context.Context, userID, wishlistID uuid.UUID, req category.CreateCategoryReq) (*category.Category, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	w, err := wishlist.Owned(ctx, s.wishlists, wishlistID, userID)
	if err != nil {
		return nil, err
	}

	c := category.NewCategory(w.ID, req.Name, req.Color)
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	wishlist.InvalidatePublic(ctx, s.cache, w.Slug)
	return c, nil
}

func (s *categoryService) List(ctx context.Context, userID, wishlistID uuid.UUID) ([]category.Category, error) {
	w, err := wishlist.Owned(ctx, s.wishlists, wishlistID, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByWishlist(ctx, w.ID)
}

func (s *categoryService) Update(ctx context.Context, userID, categoryID uuid.UUID, req category.UpdateCategoryReq) (*category.Category, error) {
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, w, err := s.owned(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Rename(*req.Name)
	}
	if req.Color != nil {
		c.Color = strings.ToLower(*req.Color)
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	wishlist.InvalidatePublic(ctx, s.cache, w.Slug)
	return c, nil
}

// Delete áp dụng cascade-to-null: item của category chuyển về uncategorized,
// không bị xóa. Lỗi được trả thẳng cho caller, không retry.
func (s *categoryService) Delete(ctx context.Context, userID, categoryID uuid.UUID) (*category.DeleteCategoryResp, error) {
	c, w, err := s.owned(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	n, err := s.repo.DeleteCascade(ctx, w.ID, c.ID)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("category_id", c.ID.String()).
		Int64("uncategorized_items", n).
		Msg("Category deleted")

	wishlist.InvalidatePublic(ctx, s.cache, w.Slug)
	return &category.DeleteCategoryResp{ID: c.ID.String(), UncategorizedItems: n}, nil
}

func (s *categoryService) owned(ctx context.Context, userID, categoryID uuid.UUID) (*category.Category, *wishlist.Wishlist, error) {
	c, err := s.repo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, nil, err
	}
	w, err := wishlist.Owned(ctx, s.wishlists, c.WishlistID, userID)
	if err != nil {
		return nil, nil, err
	}
	return c, w, nil
}
