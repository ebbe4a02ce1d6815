package main

import (
	"log"

	"github.com/hibiken/asynq"

	"foodgram-backend/internal/config"
	"foodgram-backend/pkg/container"
)

// Config holds what the worker process needs beyond the container
type Config struct {
	RedisOpt asynq.RedisClientOpt
	Worker   config.WorkerConfig
}

// loadConfig derives the worker configuration from the application config
func loadConfig(c *container.Container) *Config {
	cfg := &Config{
		RedisOpt: asynq.RedisClientOpt{
			Addr:     c.Config.RedisAddr(),
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		},
		Worker: c.Config.Worker,
	}

	log.Printf("[Config] Redis: %s, concurrency: %d, orphan sweep: %q",
		cfg.RedisOpt.Addr, cfg.Worker.Concurrency, cfg.Worker.OrphanSweepCron)

	return cfg
}
