package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"foodgram-backend/internal/config"
	"foodgram-backend/internal/shared"
	"foodgram-backend/pkg/logger"
)

// Registrar is the part of *asynq.Scheduler used to register periodic tasks
type Registrar interface {
	Register(cronspec string, task *asynq.Task, opts ...asynq.Option) (string, error)
}

type Scheduler struct {
	scheduler *asynq.Scheduler
	workerCfg config.WorkerConfig
}

func NewScheduler(redisOpt asynq.RedisClientOpt, workerCfg config.WorkerConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		redisOpt,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		workerCfg: workerCfg,
	}
}

// RegisterJobs registers every periodic job
func (s *Scheduler) RegisterJobs() error {
	return RegisterOrphanSweep(s.scheduler, s.workerCfg)
}

// ================================================
// Orphan image sweep (daily by default)
// ================================================

// RegisterOrphanSweep registers the task that removes images no recipe points to
func RegisterOrphanSweep(r Registrar, workerCfg config.WorkerConfig) error {
	payload, err := json.Marshal(shared.SweepOrphanImagesPayload{
		Prefix:        shared.RecipeImagePrefix,
		MinAgeSeconds: int(workerCfg.OrphanMinAge.Seconds()),
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeSweepOrphanImages, payload)

	entryID, err := r.Register(
		workerCfg.OrphanSweepCron,
		task,
		asynq.Queue(shared.QueueDefault),
		asynq.MaxRetry(1),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register SweepOrphanImages job", err)
		return err
	}

	logger.Info("Registered SweepOrphanImages job", map[string]interface{}{
		"entry_id": entryID,
		"cron":     workerCfg.OrphanSweepCron,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
