package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"foodgram-backend/internal/infrastructure/metrics"
	"foodgram-backend/internal/shared"
)

// ImageDeleter removes one stored object
type ImageDeleter interface {
	Delete(ctx context.Context, key string) error
}

// DeleteImageHandler removes a recipe image that is no longer referenced
type DeleteImageHandler struct {
	store ImageDeleter
}

func NewDeleteImageHandler(store ImageDeleter) *DeleteImageHandler {
	return &DeleteImageHandler{store: store}
}

// ProcessTask handles recipe:delete_image
func (h *DeleteImageHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.DeleteRecipeImagePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal DeleteRecipeImage payload")
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.ImageKey == "" {
		return fmt.Errorf("empty image key: %w", asynq.SkipRetry)
	}

	if err := h.store.Delete(ctx, payload.ImageKey); err != nil {
		log.Error().
			Err(err).
			Str("image_key", payload.ImageKey).
			Msg("Failed to delete recipe image")
		return fmt.Errorf("delete image: %w", err)
	}

	metrics.ImageCleanupTotal.WithLabelValues(payload.Trigger).Inc()
	log.Info().
		Str("image_key", payload.ImageKey).
		Str("trigger", payload.Trigger).
		Msg("Recipe image deleted")

	return nil
}
