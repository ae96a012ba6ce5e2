package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"wishlist-backend/internal/domains/category"
	"wishlist-backend/internal/domains/wishlist"
	"wishlist-backend/internal/shared/middleware"
	"wishlist-backend/internal/shared/response"
	"wishlist-backend/internal/shared/utils"
)

// ============================================================
// HANDLER STRUCT
// ============================================================
type CategoryHandler struct {
	service category.CategoryService
}

func NewCategoryHandler(svc category.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: svc}
}

// ========== CREATE: POST /v1/wishlists/:id/categories ==========
func (h *CategoryHandler) Create(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	wishlistID, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid wishlist ID", nil)
		return
	}

	var req category.CreateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), userID, wishlistID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Category created", resp)
}

// ========== LIST: GET /v1/wishlists/:id/categories ==========
func (h *CategoryHandler) List(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	wishlistID, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid wishlist ID", nil)
		return
	}

	resp, err := h.service.List(c.Request.Context(), userID, wishlistID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Categories retrieved", resp)
}

// ========== UPDATE: PATCH /v1/categories/:categoryId ==========
func (h *CategoryHandler) Update(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	id, err := utils.ParseUUIDParam(c, "categoryId")
	if err != nil {
		h.handleError(c, category.ErrInvalidCategoryID)
		return
	}

	var req category.UpdateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Category updated", resp)
}

// ========== DELETE: DELETE /v1/categories/:categoryId ==========
// Item của category không bị xóa, chỉ chuyển về uncategorized.
// Client phải xác nhận trước khi gọi.
func (h *CategoryHandler) Delete(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	id, err := utils.ParseUUIDParam(c, "categoryId")
	if err != nil {
		h.handleError(c, category.ErrInvalidCategoryID)
		return
	}

	resp, err := h.service.Delete(c.Request.Context(), userID, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Category deleted", resp)
}

func (h *CategoryHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors

	switch {
	case errors.As(err, &verrs):
		response.Error(c, http.StatusBadRequest, "Validation failed", verrs)
	case errors.Is(err, category.ErrInvalidCategoryID):
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, wishlist.ErrForbidden):
		response.Error(c, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, category.ErrCategoryNotFound),
		errors.Is(err, wishlist.ErrWishlistNotFound):
		response.Error(c, http.StatusNotFound, err.Error(), nil)
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("category request failed")
		response.Error(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}
