package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"wishlist-backend/internal/infrastructure/storage"
	"wishlist-backend/internal/shared"
	"wishlist-backend/pkg/metrics"
)

// DeleteObjectsHandler removes replaced or orphaned objects after the database
// change that released them has committed.
type DeleteObjectsHandler struct {
	storage storage.ObjectStorage
	metrics *metrics.Metrics
}

func NewDeleteObjectsHandler(s storage.ObjectStorage, m *metrics.Metrics) *DeleteObjectsHandler {
	return &DeleteObjectsHandler{storage: s, metrics: m}
}

func (h *DeleteObjectsHandler) ProcessTask(ctx context.Context, task *asynq.Task) (err error) {
	defer func() { h.metrics.ObserveTask(shared.TypeDeleteObjects, err) }()

	var payload shared.DeleteObjectsPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal DeleteObjects payload")
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}
	if payload.Bucket == "" {
		return fmt.Errorf("bucket is required: %w", asynq.SkipRetry)
	}

	if len(payload.Keys) > 0 {
		if err := h.storage.RemoveObjects(ctx, payload.Bucket, payload.Keys); err != nil {
			return fmt.Errorf("remove objects: %w", err)
		}
	}

	// empty prefix would wipe the whole bucket
	if payload.Prefix != "" {
		if err := h.storage.RemoveFolder(ctx, payload.Bucket, payload.Prefix); err != nil {
			return fmt.Errorf("remove folder: %w", err)
		}
	}

	log.Info().
		Str("bucket", payload.Bucket).
		Int("keys", len(payload.Keys)).
		Str("prefix", payload.Prefix).
		Msg("Storage objects deleted")
	return nil
}
