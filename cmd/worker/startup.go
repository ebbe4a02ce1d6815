package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/maintnotifications"

	"foodgram-backend/pkg/container"
)

const checkTimeout = 5 * time.Second

type dependencyCheck struct {
	name string
	fn   func(ctx context.Context) error
}

// HealthChecker checks everything the image jobs touch: the broker,
// Postgres (image references) and object storage
type HealthChecker struct {
	checks []dependencyCheck
}

func newHealthChecker(c *container.Container, redisClient *redis.Client) *HealthChecker {
	return &HealthChecker{
		checks: []dependencyCheck{
			{"redis", func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }},
			{"postgres", c.DB.HealthCheck},
			{"storage", c.Storage.Ping},
		},
	}
}

// startServices verifies dependencies once and starts the health endpoint
func startServices(c *container.Container, cfg *Config) error {
	log.Println("============================================")
	log.Println("🚀 Foodgram Worker Starting...")
	log.Println("============================================")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisOpt.Addr,
		Password: cfg.RedisOpt.Password,
		DB:       cfg.RedisOpt.DB,
		MaintNotificationsConfig: &maintnotifications.Config{
			Mode: maintnotifications.ModeDisabled,
		},
	})

	checker := newHealthChecker(c, redisClient)
	if failed := checker.run(context.Background(), true); len(failed) > 0 {
		redisClient.Close()
		return fmt.Errorf("unhealthy dependencies: %v", failed)
	}

	// redisClient stays open for /ready and dies with the process
	go startHealthCheckServer(cfg.Worker.HealthAddr, checker)

	return nil
}

// run executes every check and returns the names of the failing ones
func (h *HealthChecker) run(ctx context.Context, verbose bool) map[string]string {
	failed := make(map[string]string)
	for _, check := range h.checks {
		checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
		err := check.fn(checkCtx)
		cancel()

		if err != nil {
			failed[check.name] = err.Error()
			log.Printf("❌ %s: %v", check.name, err)
			continue
		}
		if verbose {
			log.Printf("✓ %s: OK", check.name)
		}
	}
	return failed
}

// startHealthCheckServer serves /health (liveness) and /ready (dependencies) for the orchestrator
func startHealthCheckServer(addr string, checker *HealthChecker) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]interface{}{"status": "UP", "service": "foodgram-worker"})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if failed := checker.run(r.Context(), false); len(failed) > 0 {
			writeStatus(w, http.StatusServiceUnavailable, map[string]interface{}{"status": "NOT_READY", "failed": failed})
			return
		}
		writeStatus(w, http.StatusOK, map[string]interface{}{"status": "READY"})
	})

	log.Printf("[Health] Starting health check server on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Printf("[Health] Failed to start: %v", err)
	}
}

func writeStatus(w http.ResponseWriter, status int, body map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
