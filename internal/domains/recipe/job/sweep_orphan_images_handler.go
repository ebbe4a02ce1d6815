package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"foodgram-backend/internal/domains/recipe"
	"foodgram-backend/internal/infrastructure/metrics"
	"foodgram-backend/internal/infrastructure/storage"
	"foodgram-backend/internal/shared"
)

const sweepBatchSize = 500

// ObjectStore lists and batch-removes stored objects
type ObjectStore interface {
	List(ctx context.Context, prefix string) ([]storage.StoredObject, error)
	RemoveObjects(ctx context.Context, keys []string) error
}

// ImageReferences tells which image keys a recipe still points to
type ImageReferences interface {
	ReferencedImages(ctx context.Context, keys []string) (map[string]bool, error)
}

// SweepOrphanImagesHandler removes stored images that no recipe references.
// Orphans appear when a write fails after upload and both inline and queued cleanup fail.
type SweepOrphanImagesHandler struct {
	store ObjectStore
	refs  ImageReferences
	now   func() time.Time
}

func NewSweepOrphanImagesHandler(store ObjectStore, refs ImageReferences) *SweepOrphanImagesHandler {
	return &SweepOrphanImagesHandler{
		store: store,
		refs:  refs,
		now:   time.Now,
	}
}

// ProcessTask handles recipe:sweep_orphan_images
func (h *SweepOrphanImagesHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.SweepOrphanImagesPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.Prefix == "" {
		payload.Prefix = shared.RecipeImagePrefix
	}

	objects, err := h.store.List(ctx, payload.Prefix)
	if err != nil {
		return fmt.Errorf("list images: %w", err)
	}

	// Young objects may belong to a write that has not committed yet
	cutoff := h.now().Add(-time.Duration(payload.MinAgeSeconds) * time.Second)
	candidates := make([]string, 0, len(objects))
	for _, obj := range objects {
		if obj.LastModified.Before(cutoff) {
			candidates = append(candidates, obj.Key)
		}
	}

	removed := 0
	for start := 0; start < len(candidates); start += sweepBatchSize {
		end := min(start+sweepBatchSize, len(candidates))
		batch := candidates[start:end]

		referenced, err := h.refs.ReferencedImages(ctx, batch)
		if err != nil {
			return fmt.Errorf("check references: %w", err)
		}

		orphans := make([]string, 0, len(batch))
		for _, key := range batch {
			if !referenced[key] {
				orphans = append(orphans, key)
			}
		}
		if len(orphans) == 0 {
			continue
		}

		if err := h.store.RemoveObjects(ctx, orphans); err != nil {
			return fmt.Errorf("remove orphans: %w", err)
		}
		removed += len(orphans)
	}

	metrics.ImageCleanupTotal.WithLabelValues(recipe.TriggerOrphanSweep).Add(float64(removed))
	log.Info().
		Int("scanned", len(objects)).
		Int("removed", removed).
		Msg("Orphan image sweep finished")

	return nil
}
