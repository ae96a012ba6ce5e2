package job

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wishlist-backend/internal/domains/reaction"
	"wishlist-backend/internal/shared"
	"wishlist-backend/pkg/metrics"
)

type stubService struct {
	reaction.Service
	got shared.RecountReactionsPayload
	err error
}

func (s *stubService) Recount(_ context.Context, p shared.RecountReactionsPayload) (int64, error) {
	s.got = p
	return 1, s.err
}

func TestRecountHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("EmptyPayloadMeansAll", func(t *testing.T) {
		svc := &stubService{}
		m := metrics.NewMetrics(prometheus.NewRegistry(), "worker")
		err := NewRecountHandler(svc, m).ProcessTask(ctx, asynq.NewTask(shared.TypeRecountReactions, nil))
		require.NoError(t, err)
		assert.Equal(t, uuid.Nil, svc.got.WishlistID)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.TasksProcessed.WithLabelValues(shared.TypeRecountReactions, "ok")))
	})

	t.Run("Scoped", func(t *testing.T) {
		svc := &stubService{}
		id := uuid.New()
		err := NewRecountHandler(svc, nil).ProcessTask(ctx,
			asynq.NewTask(shared.TypeRecountReactions, []byte(`{"wishlist_id":"`+id.String()+`"}`)))
		require.NoError(t, err)
		assert.Equal(t, id, svc.got.WishlistID)
	})

	t.Run("BadPayloadSkipsRetry", func(t *testing.T) {
		err := NewRecountHandler(&stubService{}, nil).ProcessTask(ctx, asynq.NewTask(shared.TypeRecountReactions, []byte("{")))
		assert.ErrorIs(t, err, asynq.SkipRetry)
	})

	t.Run("ServiceErrorRetries", func(t *testing.T) {
		err := NewRecountHandler(&stubService{err: errors.New("db down")}, nil).ProcessTask(ctx,
			asynq.NewTask(shared.TypeRecountReactions, nil))
		require.Error(t, err)
		assert.NotErrorIs(t, err, asynq.SkipRetry)
	})
}
