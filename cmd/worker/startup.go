// cmd/worker/startup.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"wishlist-backend/pkg/container"
)

type healthCheck struct {
	name string
	fn   func(ctx context.Context) error
}

// startServices performs health checks and starts the health endpoint
func startServices(c *container.Container) error {
	log.Info().Msg("Wishlist worker starting")

	checks := []healthCheck{
		{"PostgreSQL", c.DB.HealthCheck},
		{"Redis", c.Cache.Ping},
	}
	if err := checkAll(context.Background(), checks); err != nil {
		return err
	}

	go startHealthCheckServer(c.Config.Worker.HealthPort, checks)
	return nil
}

// checkAll runs all health checks, stopping at the first failure
func checkAll(ctx context.Context, checks []healthCheck) error {
	for _, check := range checks {
		checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := check.fn(checkCtx)
		cancel()
		if err != nil {
			log.Error().Err(err).Str("check", check.name).Msg("Health check failed")
			return fmt.Errorf("%s failed: %w", check.name, err)
		}
		log.Info().Str("check", check.name).Msg("Health check OK")
	}
	return nil
}

func healthMux(checks []healthCheck) *http.ServeMux {
	mux := http.NewServeMux()

	// /health: process alive
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "UP", "service": "wishlist-worker"})
	})

	// /ready: dependencies reachable (Kubernetes readiness probe)
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := checkAll(r.Context(), checks); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "NOT_READY", "error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "READY"})
	})

	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func startHealthCheckServer(port string, checks []healthCheck) {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           healthMux(checks),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info().Str("addr", srv.Addr).Msg("[Health] Starting health check server")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("[Health] Failed to start")
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
