package main

import (
	"log"

	"foodgram-backend/internal/infrastructure/queue"
)

type asynqScheduler struct {
	*queue.Scheduler
}

// setupScheduler registers the periodic maintenance jobs and starts enqueueing them
func setupScheduler(cfg *Config) *asynqScheduler {
	scheduler := queue.NewScheduler(cfg.RedisOpt, cfg.Worker)

	if err := scheduler.RegisterJobs(); err != nil {
		log.Fatalf("[Scheduler] Failed to register: %v", err)
	}

	// Start returns once the cron loop is running
	if err := scheduler.Start(); err != nil {
		log.Fatalf("[Scheduler] Failed to start: %v", err)
	}
	log.Printf("[Scheduler] Orphan image sweep scheduled at %q", cfg.Worker.OrphanSweepCron)

	return &asynqScheduler{Scheduler: scheduler}
}

func (s *asynqScheduler) Shutdown() {
	log.Println("[Scheduler] Shutting down...")
	s.Scheduler.Shutdown()
	log.Println("[Scheduler] ✓ Stopped")
}
