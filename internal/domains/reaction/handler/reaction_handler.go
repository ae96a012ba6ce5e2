package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"wishlist-backend/internal/domains/reaction"
	"wishlist-backend/internal/shared/middleware"
	"wishlist-backend/internal/shared/response"
	"wishlist-backend/internal/shared/utils"
)

type ReactionHandler struct {
	service reaction.Service
}

func NewReactionHandler(svc reaction.Service) *ReactionHandler {
	return &ReactionHandler{service: svc}
}

// React xử lý POST /public/items/:itemId/reactions, không cần đăng nhập.
func (h *ReactionHandler) React(c *gin.Context) {
	itemID, err := utils.ParseUUIDParam(c, "itemId")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid item ID", nil)
		return
	}

	var req reaction.ReactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	resp, err := h.service.React(c.Request.Context(), itemID, req, middleware.GetClientIP(c), c.Request.UserAgent())
	if err != nil {
		h.handleError(c, err)
		return
	}

	msg := "Reaction recorded"
	if !resp.Recorded {
		msg = "Reaction already recorded"
	}
	response.Success(c, http.StatusOK, msg, resp)
}

func (h *ReactionHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors

	switch {
	case errors.As(err, &verrs):
		response.Error(c, http.StatusBadRequest, "Validation failed", verrs)
	case errors.Is(err, reaction.ErrInvalidKind):
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, reaction.ErrItemNotFound):
		response.Error(c, http.StatusNotFound, err.Error(), nil)
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("reaction request failed")
		response.Error(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}
