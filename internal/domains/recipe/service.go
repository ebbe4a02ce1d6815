package recipe

import (
	"context"

	"foodgram-backend/internal/infrastructure/storage"
)

type Service interface {
	List(ctx context.Context, filter ListFilter, viewerID int64, limit, offset int) ([]Response, int64, error)
	Get(ctx context.Context, id, viewerID int64) (*Response, error)
	Create(ctx context.Context, authorID int64, req WriteRequest) (*Response, error)
	Update(ctx context.Context, id int64, actor Actor, req WriteRequest) (*Response, error)
	Delete(ctx context.Context, id int64, actor Actor) error
}

// ImageStore keeps recipe images
type ImageStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

// ImageProcessor validates and downscales uploads
type ImageProcessor interface {
	Process(data []byte) (*storage.ProcessedImage, error)
}

// CleanupQueue hands image keys to the worker for deletion
type CleanupQueue interface {
	EnqueueImageDeletion(ctx context.Context, key, trigger string) error
}

// Image cleanup triggers
const (
	TriggerRecipeDeleted = "recipe_deleted"
	TriggerImageReplaced = "image_replaced"
	TriggerWriteFailed   = "write_failed"
	TriggerOrphanSweep   = "orphan_sweep"
)
