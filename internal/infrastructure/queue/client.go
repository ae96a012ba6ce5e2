package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"wishlist-backend/internal/shared"
)

// Enqueuer is what services use to hand work to cmd/worker.
type Enqueuer interface {
	Enqueue(ctx context.Context, taskType string, payload interface{}, opts ...asynq.Option) error
}

// Client wraps asynq.Client with JSON payload encoding.
type Client struct {
	client *asynq.Client
}

func NewClient(redisAddr, password string, db int) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr, Password: password, DB: db}),
	}
}

// defaultOptions per task type; callers may append overrides.
var defaultOptions = map[string][]asynq.Option{
	shared.TypeProcessItemImage: {asynq.Queue(shared.QueueDefault), asynq.MaxRetry(3), asynq.Timeout(2 * time.Minute)},
	shared.TypeDeleteObjects:    {asynq.Queue(shared.QueueLow), asynq.MaxRetry(5), asynq.Timeout(time.Minute)},
	shared.TypeRecountReactions: {asynq.Queue(shared.QueueLow), asynq.MaxRetry(1), asynq.Timeout(10 * time.Minute)},
}

func (c *Client) Enqueue(ctx context.Context, taskType string, payload interface{}, opts ...asynq.Option) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", taskType, err)
	}

	all := append(append([]asynq.Option{}, defaultOptions[taskType]...), opts...)
	info, err := c.client.EnqueueContext(ctx, asynq.NewTask(taskType, body), all...)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", taskType, err)
	}

	log.Debug().Str("task_id", info.ID).Str("type", taskType).Str("queue", info.Queue).Msg("Task enqueued")
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// EnqueueBestEffort logs instead of failing: the caller's write already committed
// and orphaned objects are only a storage cost.
func EnqueueBestEffort(ctx context.Context, q Enqueuer, taskType string, payload interface{}) {
	if q == nil {
		return
	}
	if err := q.Enqueue(ctx, taskType, payload); err != nil {
		log.Warn().Err(err).Str("type", taskType).Msg("Failed to enqueue background task")
	}
}
