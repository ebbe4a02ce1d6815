package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"foodgram-backend/internal/shared"
)

// Enqueuer is the part of *asynq.Client the API needs
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ImageCleanupQueue schedules deletion of recipe images that are no longer referenced
type ImageCleanupQueue struct {
	client Enqueuer
}

func NewImageCleanupQueue(client Enqueuer) *ImageCleanupQueue {
	return &ImageCleanupQueue{client: client}
}

// EnqueueImageDeletion queues removal of key from object storage
func (q *ImageCleanupQueue) EnqueueImageDeletion(ctx context.Context, key, trigger string) error {
	if key == "" {
		return nil
	}

	payload, err := json.Marshal(shared.DeleteRecipeImagePayload{ImageKey: key, Trigger: trigger})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	task := asynq.NewTask(shared.TypeDeleteRecipeImage, payload)
	if _, err := q.client.EnqueueContext(
		ctx,
		task,
		asynq.Queue(shared.QueueImages),
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
	); err != nil {
		return fmt.Errorf("enqueue %s: %w", shared.TypeDeleteRecipeImage, err)
	}
	return nil
}
