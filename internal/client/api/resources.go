package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"wishlist-backend/internal/domains/category"
	"wishlist-backend/internal/domains/item"
	"wishlist-backend/internal/domains/reaction"
	"wishlist-backend/internal/domains/wishlist"
)

func listQuery(q item.ListQuery) url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	return v
}

// ========================================
// WISHLISTS
// ========================================

func (c *Client) ListWishlists(ctx context.Context) ([]wishlist.Wishlist, error) {
	var out []wishlist.Wishlist
	err := c.do(ctx, http.MethodGet, "/wishlists", nil, nil, &out)
	return out, err
}

func (c *Client) CreateWishlist(ctx context.Context, req wishlist.CreateWishlistRequest) (*wishlist.Wishlist, error) {
	var out wishlist.Wishlist
	if err := c.do(ctx, http.MethodPost, "/wishlists", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetWishlist(ctx context.Context, id uuid.UUID) (*wishlist.Wishlist, error) {
	var out wishlist.Wishlist
	if err := c.do(ctx, http.MethodGet, "/wishlists/"+id.String(), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateWishlist(ctx context.Context, id uuid.UUID, req wishlist.UpdateWishlistRequest) (*wishlist.Wishlist, error) {
	var out wishlist.Wishlist
	if err := c.do(ctx, http.MethodPatch, "/wishlists/"+id.String(), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteWishlist(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/wishlists/"+id.String(), nil, nil, nil)
}

func (c *Client) UploadLogo(ctx context.Context, id uuid.UUID, filename string, data []byte) (*wishlist.Wishlist, error) {
	var out wishlist.Wishlist
	if err := c.upload(ctx, "/wishlists/"+id.String()+"/logo", filename, data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportWishlist returns the xlsx bytes of the filtered, sorted item list.
func (c *Client) ExportWishlist(ctx context.Context, id uuid.UUID, q item.ListQuery) ([]byte, error) {
	return c.download(ctx, "/wishlists/"+id.String()+"/export", listQuery(q))
}

// PublicWishlist reads the share page. An unknown or private slug is ErrNotFound.
func (c *Client) PublicWishlist(ctx context.Context, slug string, q item.ListQuery) (*wishlist.PublicWishlistResponse, error) {
	var out wishlist.PublicWishlistResponse
	if err := c.do(ctx, http.MethodGet, "/public/wishlists/"+url.PathEscape(slug), listQuery(q), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ========================================
// CATEGORIES
// ========================================

func (c *Client) ListCategories(ctx context.Context, wishlistID uuid.UUID) ([]category.Category, error) {
	var out []category.Category
	err := c.do(ctx, http.MethodGet, "/wishlists/"+wishlistID.String()+"/categories", nil, nil, &out)
	return out, err
}

func (c *Client) CreateCategory(ctx context.Context, wishlistID uuid.UUID, req category.CreateCategoryReq) (*category.Category, error) {
	var out category.Category
	if err := c.do(ctx, http.MethodPost, "/wishlists/"+wishlistID.String()+"/categories", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id uuid.UUID, req category.UpdateCategoryReq) (*category.Category, error) {
	var out category.Category
	if err := c.do(ctx, http.MethodPatch, "/categories/"+id.String(), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCategory runs the server-side cascade: items are uncategorized, then
// the category is removed.
func (c *Client) DeleteCategory(ctx context.Context, id uuid.UUID) (*category.DeleteCategoryResp, error) {
	var out category.DeleteCategoryResp
	if err := c.do(ctx, http.MethodDelete, "/categories/"+id.String(), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ========================================
// ITEMS
// ========================================

func (c *Client) ListItems(ctx context.Context, wishlistID uuid.UUID, q item.ListQuery) (*item.ListResponse, error) {
	var out item.ListResponse
	if err := c.do(ctx, http.MethodGet, "/wishlists/"+wishlistID.String()+"/items", listQuery(q), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateItem(ctx context.Context, wishlistID uuid.UUID, req item.CreateItemRequest) (*item.Item, error) {
	var out item.Item
	if err := c.do(ctx, http.MethodPost, "/wishlists/"+wishlistID.String()+"/items", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateItem(ctx context.Context, id uuid.UUID, req item.UpdateItemRequest) (*item.Item, error) {
	var out item.Item
	if err := c.do(ctx, http.MethodPatch, "/items/"+id.String(), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/items/"+id.String(), nil, nil, nil)
}

func (c *Client) UploadItemImage(ctx context.Context, wishlistID uuid.UUID, filename string, data []byte) (*item.UploadResponse, error) {
	var out item.UploadResponse
	if err := c.upload(ctx, "/wishlists/"+wishlistID.String()+"/uploads/item-image", filename, data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ========================================
// REACTIONS
// ========================================

// React is anonymous; a repeat from the same visitor returns Recorded=false.
func (c *Client) React(ctx context.Context, itemID uuid.UUID, kind reaction.Kind) (*reaction.ReactResponse, error) {
	var out reaction.ReactResponse
	if err := c.do(ctx, http.MethodPost, "/public/items/"+itemID.String()+"/reactions", nil, reaction.ReactRequest{Type: kind}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
