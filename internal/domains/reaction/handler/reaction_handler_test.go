package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wishlist-backend/internal/domains/reaction"
	"wishlist-backend/internal/shared"
	"wishlist-backend/internal/shared/middleware"
)

type stubService struct {
	err       error
	recorded  bool
	ip        string
	userAgent string
}

func (s *stubService) React(_ context.Context, itemID uuid.UUID, req reaction.ReactRequest, ip, ua string) (*reaction.ReactResponse, error) {
	s.ip, s.userAgent = ip, ua
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	return &reaction.ReactResponse{ItemID: itemID, Type: req.Type, Recorded: s.recorded, Counts: reaction.Counts{HeartCount: 1}}, nil
}

func (s *stubService) Recount(context.Context, shared.RecountReactionsPayload) (int64, error) {
	return 0, nil
}

func send(svc reaction.Service, itemID, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ClientIPMiddleware())
	r.POST("/public/items/:itemId/reactions", NewReactionHandler(svc).React)

	req := httptest.NewRequest(http.MethodPost, "/public/items/"+itemID+"/reactions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Firefox")
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestReact(t *testing.T) {
	itemID := uuid.NewString()

	t.Run("Recorded", func(t *testing.T) {
		svc := &stubService{recorded: true}
		w := send(svc, itemID, `{"type":"heart"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "203.0.113.7", svc.ip)
		assert.Equal(t, "Firefox", svc.userAgent)

		var body struct {
			Message string                 `json:"message"`
			Data    reaction.ReactResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Reaction recorded", body.Message)
		assert.True(t, body.Data.Recorded)
		assert.Equal(t, 1, body.Data.HeartCount)
	})

	t.Run("DuplicateIsStillOK", func(t *testing.T) {
		w := send(&stubService{}, itemID, `{"type":"heart"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"recorded":false`)
	})

	cases := []struct {
		name   string
		svc    *stubService
		itemID string
		body   string
		want   int
	}{
		{"BadType", &stubService{}, itemID, `{"type":"clap"}`, http.StatusBadRequest},
		{"BadItemID", &stubService{}, "nope", `{"type":"heart"}`, http.StatusBadRequest},
		{"PrivateItem", &stubService{err: reaction.ErrItemNotFound}, itemID, `{"type":"heart"}`, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, send(tc.svc, tc.itemID, tc.body).Code)
		})
	}
}
