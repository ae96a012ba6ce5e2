package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"wishlist-backend/internal/domains/user"
	"wishlist-backend/internal/shared/middleware"
	"wishlist-backend/internal/shared/response"
)

// UserHandler xử lý HTTP requests cho identity
type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// ========================================
// AUTHENTICATION ENDPOINTS
// ========================================

// SignUp xử lý POST /auth/signup
func (h *UserHandler) SignUp(c *gin.Context) {
	var req user.SignUpRequest
	if err := h.bind(c, &req); err != nil {
		return
	}

	session, err := h.service.SignUp(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Location", "/api/v1/users/me")
	response.Success(c, http.StatusCreated, "Signed up", session)
}

// SignIn xử lý POST /auth/signin
func (h *UserHandler) SignIn(c *gin.Context) {
	var req user.SignInRequest
	if err := h.bind(c, &req); err != nil {
		return
	}

	session, err := h.service.SignIn(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Signed in", session)
}

// SignOut xử lý POST /auth/signout (cần auth)
func (h *UserHandler) SignOut(c *gin.Context) {
	if err := h.service.SignOut(c.Request.Context(), middleware.GetClaims(c)); err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Signed out", nil)
}

// ========================================
// PROFILE
// ========================================

// Me xử lý GET /users/me
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Profile retrieved", profile)
}

func (h *UserHandler) bind(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return err
	}
	return nil
}

// handleError map domain errors thành HTTP status codes
func (h *UserHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors

	switch {
	case errors.As(err, &verrs):
		response.Error(c, http.StatusBadRequest, "Validation failed", verrs)
	case errors.Is(err, user.ErrEmailAlreadyExists):
		response.Error(c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, user.ErrInvalidCredentials),
		errors.Is(err, user.ErrInvalidSession):
		response.Error(c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, user.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, err.Error(), nil)
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("auth request failed")
		response.Error(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}
