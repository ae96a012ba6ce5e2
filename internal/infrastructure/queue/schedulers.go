package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"wishlist-backend/internal/config"
	"wishlist-backend/internal/shared"
	"wishlist-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	cfg       config.WorkerConfig
}

func NewScheduler(redis config.RedisConfig, cfg config.WorkerConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redis.Host, Password: redis.Password, DB: redis.DB},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		cfg:       cfg,
	}
}

func (s *Scheduler) RegisterJobs() error {
	return s.registerRecountReactionsJob()
}

// ================================================
// JOB: Recount reaction counters (daily, WORKER_RECOUNT_CRON)
// ================================================
func (s *Scheduler) registerRecountReactionsJob() error {
	payload, err := json.Marshal(shared.RecountReactionsPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeRecountReactions, payload)

	_, err = s.scheduler.Register(
		s.cfg.RecountCron,
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register RecountReactions job", err)
		return err
	}

	logger.Info("✓ Registered RecountReactions", map[string]interface{}{"cron": s.cfg.RecountCron})
	return nil
}

// Start is non-blocking; the caller owns signal handling and calls Shutdown.
func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
