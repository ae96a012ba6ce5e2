package main

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"wishlist-backend/internal/config"
	"wishlist-backend/internal/shared"
)

// asynqServer wraps asynq.Server with additional functionality
type asynqServer struct {
	*asynq.Server
}

// setupAsynqServer creates and configures the Asynq server
func setupAsynqServer(cfg *config.Config, handlers *HandlerRegistry) *asynqServer {
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.Redis.Host, Password: cfg.Redis.Password, DB: cfg.Redis.DB},
		asynq.Config{
			Queues:          shared.QueuePriorities,
			Concurrency:     cfg.Worker.Concurrency,
			ShutdownTimeout: cfg.Worker.ShutdownWait,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				retried, _ := asynq.GetRetryCount(ctx)
				log.Error().Err(err).
					Str("type", task.Type()).
					Int("retried", retried).
					Msg("[Asynq] Task failed")
			}),
		},
	)

	// Start không block; main.go tự xử lý signal rồi gọi Shutdown.
	log.Info().Int("concurrency", cfg.Worker.Concurrency).Msg("[Worker] Starting...")
	if err := srv.Start(mux); err != nil {
		log.Fatal().Err(err).Msg("[Worker] Failed")
	}

	return &asynqServer{Server: srv}
}

// Shutdown waits up to WORKER_SHUTDOWN_WAIT for in-flight tasks, then
// returns the rest to their queues.
func (s *asynqServer) Shutdown() {
	log.Info().Msg("[Worker] Shutting down...")
	s.Server.Shutdown()
	log.Info().Msg("[Worker] Gracefully stopped")
}
