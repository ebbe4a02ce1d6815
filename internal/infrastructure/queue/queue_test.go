package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodgram-backend/internal/config"
	"foodgram-backend/internal/shared"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "1", Type: task.Type()}, nil
}

type fakeRegistrar struct {
	cron string
	task *asynq.Task
}

func (f *fakeRegistrar) Register(cronspec string, task *asynq.Task, _ ...asynq.Option) (string, error) {
	f.cron = cronspec
	f.task = task
	return "entry-1", nil
}

func TestEnqueueImageDeletion(t *testing.T) {
	fake := &fakeEnqueuer{}
	q := NewImageCleanupQueue(fake)

	require.NoError(t, q.EnqueueImageDeletion(context.Background(), "recipes/abc/temp.png", "recipe_deleted"))
	require.Len(t, fake.tasks, 1)
	assert.Equal(t, shared.TypeDeleteRecipeImage, fake.tasks[0].Type())

	var payload shared.DeleteRecipeImagePayload
	require.NoError(t, json.Unmarshal(fake.tasks[0].Payload(), &payload))
	assert.Equal(t, "recipes/abc/temp.png", payload.ImageKey)
	assert.Equal(t, "recipe_deleted", payload.Trigger)
}

func TestEnqueueImageDeletion_EmptyKeyIsNoop(t *testing.T) {
	fake := &fakeEnqueuer{}
	require.NoError(t, NewImageCleanupQueue(fake).EnqueueImageDeletion(context.Background(), "", "recipe_deleted"))
	assert.Empty(t, fake.tasks)
}

func TestEnqueueImageDeletion_Error(t *testing.T) {
	fake := &fakeEnqueuer{err: errors.New("redis down")}
	err := NewImageCleanupQueue(fake).EnqueueImageDeletion(context.Background(), "recipes/a/temp.png", "image_replaced")
	assert.ErrorContains(t, err, "redis down")
}

func TestRegisterOrphanSweep(t *testing.T) {
	reg := &fakeRegistrar{}
	err := RegisterOrphanSweep(reg, config.WorkerConfig{OrphanSweepCron: "0 3 * * *", OrphanMinAge: time.Hour})
	require.NoError(t, err)

	assert.Equal(t, "0 3 * * *", reg.cron)
	assert.Equal(t, shared.TypeSweepOrphanImages, reg.task.Type())

	var payload shared.SweepOrphanImagesPayload
	require.NoError(t, json.Unmarshal(reg.task.Payload(), &payload))
	assert.Equal(t, shared.RecipeImagePrefix, payload.Prefix)
	assert.Equal(t, 3600, payload.MinAgeSeconds)
}
