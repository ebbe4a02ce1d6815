package main

import (
	"context"
	"log"

	"github.com/hibiken/asynq"

	"foodgram-backend/internal/shared"
)

// asynqServer wraps asynq.Server with additional functionality
type asynqServer struct {
	*asynq.Server
}

// setupAsynqServer creates and configures the Asynq server
func setupAsynqServer(cfg *Config, handlers *HandlerRegistry) *asynqServer {
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	srv := asynq.NewServer(
		cfg.RedisOpt,
		asynq.Config{
			Queues: map[string]int{
				shared.QueueImages:  10,
				shared.QueueDefault: 5,
			},
			Concurrency: cfg.Worker.Concurrency,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Printf("[Asynq] ❌ Task failed - Type: %s, Error: %v", task.Type(), err)
			}),
		},
	)

	// Start is non-blocking; signals are handled in waitForShutdown
	log.Println("[Worker] Starting...")
	if err := srv.Start(mux); err != nil {
		log.Fatalf("[Worker] Failed: %v", err)
	}

	return &asynqServer{Server: srv}
}

// Shutdown stops fetching new tasks and waits for active ones (asynq ShutdownTimeout, 8s by default)
func (s *asynqServer) Shutdown() {
	log.Println("[Worker] Shutting down...")
	s.Server.Shutdown()
	log.Println("[Worker] ✓ Gracefully stopped")
}
