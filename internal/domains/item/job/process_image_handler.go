package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"wishlist-backend/internal/domains/item"
	"wishlist-backend/internal/shared"
	"wishlist-backend/pkg/metrics"
)

// ProcessImageHandler tạo thumbnail cho ảnh item
type ProcessImageHandler struct {
	service item.Service
	metrics *metrics.Metrics
}

func NewProcessImageHandler(service item.Service, m *metrics.Metrics) *ProcessImageHandler {
	return &ProcessImageHandler{service: service, metrics: m}
}

// ProcessTask xử lý background job resize ảnh
func (h *ProcessImageHandler) ProcessTask(ctx context.Context, task *asynq.Task) (err error) {
	defer func() { h.metrics.ObserveTask(shared.TypeProcessItemImage, err) }()

	var payload shared.ProcessItemImagePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal ProcessItemImage payload")
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	log.Info().
		Str("item_id", payload.ItemID.String()).
		Str("object_key", payload.ObjectKey).
		Msg("Processing item image thumbnail")

	if err := h.service.ProcessImage(ctx, payload); err != nil {
		log.Error().
			Err(err).
			Str("item_id", payload.ItemID.String()).
			Msg("Failed to process item image")
		return fmt.Errorf("process image: %w", err)
	}

	return nil
}
