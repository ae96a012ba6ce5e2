package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"wishlist-backend/internal/domains/item"
	"wishlist-backend/internal/domains/item/view"
	"wishlist-backend/internal/domains/wishlist"
	"wishlist-backend/internal/shared/middleware"
	"wishlist-backend/internal/shared/response"
	"wishlist-backend/internal/shared/utils"
)

// maxUploadBytes matches storage.ImageProcessor's default limit.
const maxUploadBytes = 5 * 1024 * 1024

type ItemHandler struct {
	service item.Service
}

func NewItemHandler(svc item.Service) *ItemHandler {
	return &ItemHandler{service: svc}
}

// List xử lý GET /wishlists/:id/items?search=&category=&sort=
func (h *ItemHandler) List(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	wishlistID, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid wishlist ID", nil)
		return
	}

	var q item.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query", err)
		return
	}

	resp, err := h.service.List(c.Request.Context(), userID, wishlistID, q)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Items retrieved", resp)
}

// Create xử lý POST /wishlists/:id/items
func (h *ItemHandler) Create(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	wishlistID, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid wishlist ID", nil)
		return
	}

	var req item.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	it, err := h.service.Create(c.Request.Context(), userID, wishlistID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Item created", it)
}

// Update xử lý PATCH /items/:itemId
func (h *ItemHandler) Update(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	itemID, err := utils.ParseUUIDParam(c, "itemId")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid item ID", nil)
		return
	}

	var req item.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	it, err := h.service.Update(c.Request.Context(), userID, itemID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Item updated", it)
}

// Delete xử lý DELETE /items/:itemId
func (h *ItemHandler) Delete(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	itemID, err := utils.ParseUUIDParam(c, "itemId")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid item ID", nil)
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, itemID); err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Item deleted", gin.H{"id": itemID})
}

// UploadImage xử lý POST /wishlists/:id/uploads/item-image (multipart "file")
func (h *ItemHandler) UploadImage(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	wishlistID, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid wishlist ID", nil)
		return
	}

	header, data, err := utils.ReadFormFile(c, "file", maxUploadBytes)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "File is required", err)
		return
	}

	resp, err := h.service.UploadImage(c.Request.Context(), userID, wishlistID, header.Filename, data)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Image uploaded", resp)
}

// handleError map domain errors thành HTTP responses
func (h *ItemHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors

	switch {
	case errors.As(err, &verrs):
		response.Error(c, http.StatusBadRequest, "Validation failed", verrs)

	case errors.Is(err, view.ErrUnknownSortKey),
		errors.Is(err, view.ErrInvalidSelector),
		errors.Is(err, item.ErrCategoryNotInList),
		errors.Is(err, item.ErrInvalidImage):
		response.Error(c, http.StatusBadRequest, err.Error(), nil)

	case errors.Is(err, item.ErrImageTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, err.Error(), nil)

	case errors.Is(err, wishlist.ErrForbidden):
		response.Error(c, http.StatusForbidden, err.Error(), nil)

	case errors.Is(err, item.ErrItemNotFound),
		errors.Is(err, wishlist.ErrWishlistNotFound):
		response.Error(c, http.StatusNotFound, err.Error(), nil)

	case errors.Is(err, item.ErrImageUploadFailed):
		response.Error(c, http.StatusBadGateway, "Image storage is unavailable", nil)

	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("item request failed")
		response.Error(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}
