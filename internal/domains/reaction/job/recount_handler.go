package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"wishlist-backend/internal/domains/reaction"
	"wishlist-backend/internal/shared"
	"wishlist-backend/pkg/metrics"
)

// RecountHandler chạy theo lịch (mặc định 03:00 UTC) để sửa counter bị lệch.
type RecountHandler struct {
	service reaction.Service
	metrics *metrics.Metrics
}

func NewRecountHandler(service reaction.Service, m *metrics.Metrics) *RecountHandler {
	return &RecountHandler{service: service, metrics: m}
}

func (h *RecountHandler) ProcessTask(ctx context.Context, task *asynq.Task) (err error) {
	defer func() { h.metrics.ObserveTask(shared.TypeRecountReactions, err) }()

	var payload shared.RecountReactionsPayload
	if len(task.Payload()) > 0 {
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			log.Error().Err(err).Msg("Failed to unmarshal RecountReactions payload")
			return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
		}
	}

	n, err := h.service.Recount(ctx, payload)
	if err != nil {
		return fmt.Errorf("recount reactions: %w", err)
	}

	log.Info().
		Str("wishlist_id", payload.WishlistID.String()).
		Int64("corrected", n).
		Msg("Reaction recount finished")
	return nil
}
