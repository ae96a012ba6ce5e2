package handler

import (
	"errors"
	"fmt"
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

const (
	maxLogoBytes = 5 * 1024 * 1024
	xlsxMIME     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type WishlistHandler struct {
	service wishlist.Service
}

func NewWishlistHandler(svc wishlist.Service) *WishlistHandler {
	return &WishlistHandler{service: svc}
}

// Create - POST /wishlists
func (h *WishlistHandler) Create(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req wishlist.CreateWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	w, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Wishlist created", w)
}

// List - GET /wishlists
func (h *WishlistHandler) List(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	lists, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Wishlists retrieved", lists)
}

// Get - GET /wishlists/:id
func (h *WishlistHandler) Get(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid wishlist ID", nil)
		return
	}

	w, err := h.service.Get(c.Request.Context(), userID, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Wishlist retrieved", w)
}

// Update - PATCH /wishlists/:id
func (h *WishlistHandler) Update(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid wishlist ID", nil)
		return
	}

	var req wishlist.UpdateWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	w, err := h.service.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Wishlist updated", w)
}

// Delete - DELETE /wishlists/:id
func (h *WishlistHandler) Delete(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid wishlist ID", nil)
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadLogo - POST /wishlists/:id/logo (multipart "file")
func (h *WishlistHandler) UploadLogo(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid wishlist ID", nil)
		return
	}

	header, data, err := utils.ReadFormFile(c, "file", maxLogoBytes)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "File is required", err)
		return
	}
	if len(data) > maxLogoBytes {
		response.Error(c, http.StatusRequestEntityTooLarge, "Logo exceeds 5MB", nil)
		return
	}

	w, err := h.service.UploadLogo(c.Request.Context(), userID, id, header.Filename, data)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Logo uploaded", w)
}

// Export - GET /wishlists/:id/export?search=&category=&sort=
func (h *WishlistHandler) Export(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid wishlist ID", nil)
		return
	}

	var q item.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query", err)
		return
	}

	export, err := h.service.Export(c.Request.Context(), userID, id, q)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.Filename))
	c.Data(http.StatusOK, xlsxMIME, export.Data)
}

// GetPublic - GET /public/wishlists/:slug, không cần đăng nhập.
// Chủ sở hữu đã đăng nhập xem được cả wishlist private.
func (h *WishlistHandler) GetPublic(c *gin.Context) {
	viewerID, _ := middleware.GetUserID(c)

	var q item.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query", err)
		return
	}

	resp, err := h.service.GetPublic(c.Request.Context(), c.Param("slug"), viewerID, q)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Wishlist retrieved", resp)
}

func (h *WishlistHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors

	switch {
	case errors.As(err, &verrs):
		response.Error(c, http.StatusBadRequest, "Validation failed", verrs)

	case errors.Is(err, view.ErrUnknownSortKey),
		errors.Is(err, view.ErrInvalidSelector),
		errors.Is(err, wishlist.ErrInvalidLogo):
		response.Error(c, http.StatusBadRequest, err.Error(), nil)

	case errors.Is(err, wishlist.ErrForbidden):
		response.Error(c, http.StatusForbidden, err.Error(), nil)

	case errors.Is(err, wishlist.ErrWishlistNotFound):
		response.Error(c, http.StatusNotFound, err.Error(), nil)

	case errors.Is(err, wishlist.ErrSlugTaken):
		response.Error(c, http.StatusConflict, err.Error(), nil)

	case errors.Is(err, item.ErrImageUploadFailed):
		response.Error(c, http.StatusBadGateway, err.Error(), nil)

	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("wishlist request failed")
		response.Error(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}
