package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"foodgram-backend/internal/domains/recipe"
	"foodgram-backend/internal/domains/tag"
	"foodgram-backend/internal/infrastructure/metrics"
	"foodgram-backend/internal/infrastructure/storage"
	"foodgram-backend/internal/shared"
	"foodgram-backend/internal/shared/apperror"
	"foodgram-backend/pkg/logger"
)

// recipeService implements recipe.Service
type recipeService struct {
	repo   recipe.Repository
	store  recipe.ImageStore
	images recipe.ImageProcessor
	queue  recipe.CleanupQueue
}

func NewRecipeService(
	repo recipe.Repository,
	store recipe.ImageStore,
	images recipe.ImageProcessor,
	queue recipe.CleanupQueue,
) recipe.Service {
	return &recipeService{
		repo:   repo,
		store:  store,
		images: images,
		queue:  queue,
	}
}

// ========================================
// READ
// ========================================

func (s *recipeService) List(ctx context.Context, filter recipe.ListFilter, viewerID int64, limit, offset int) ([]recipe.Response, int64, error) {
	// Membership filters only make sense for a known caller
	if viewerID == 0 {
		filter.IsFavorited = nil
		filter.IsInShoppingCart = nil
	}

	rows, total, err := s.repo.List(ctx, filter, viewerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	items, err := s.assemble(ctx, rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *recipeService) Get(ctx context.Context, id, viewerID int64) (*recipe.Response, error) {
	row, err := s.repo.FindRow(ctx, id, viewerID)
	if err != nil {
		return nil, err
	}

	items, err := s.assemble(ctx, []recipe.Row{*row})
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

// assemble loads tags and ingredients for all rows in two queries
func (s *recipeService) assemble(ctx context.Context, rows []recipe.Row) ([]recipe.Response, error) {
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	tags, err := s.repo.TagsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	ingredients, err := s.repo.IngredientsFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]recipe.Response, 0, len(rows))
	for _, row := range rows {
		resp := recipe.Response{
			ID:               row.ID,
			Tags:             tags[row.ID],
			Author:           row.Author.ToResponse(),
			Ingredients:      ingredients[row.ID],
			IsFavorited:      row.IsFavorited,
			IsInShoppingCart: row.IsInShoppingCart,
			Name:             row.Name,
			Image:            s.store.PublicURL(row.Image),
			Text:             row.Text,
			CookingTime:      row.CookingTime,
		}
		if resp.Tags == nil {
			resp.Tags = []tag.Tag{}
		}
		if resp.Ingredients == nil {
			resp.Ingredients = []recipe.IngredientAmount{}
		}
		out = append(out, resp)
	}
	return out, nil
}

// ========================================
// WRITE
// ========================================

// Create stores the image, then the aggregate. A failed insert removes the stored image.
func (s *recipeService) Create(ctx context.Context, authorID int64, req recipe.WriteRequest) (*recipe.Response, error) {
	// 1. VALIDATE INPUT
	req.Normalize()
	if err := req.Validate(false); err != nil {
		return nil, err
	}

	// 2. BUSINESS RULE: (name, text) must be new
	exists, err := s.repo.ExistsByNameAndText(ctx, *req.Name, *req.Text)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, recipe.ErrDuplicateRecipe
	}

	// 3. REFERENCES MUST EXIST
	if err := s.checkReferences(ctx, req); err != nil {
		return nil, err
	}

	// 4. STORE IMAGE
	imageKey, err := s.storeImage(ctx, req.Image.Upload)
	if err != nil {
		return nil, err
	}

	// 5. PERSIST AGGREGATE
	rec := &recipe.Recipe{
		AuthorID:    authorID,
		Name:        *req.Name,
		Image:       imageKey,
		Text:        *req.Text,
		CookingTime: *req.CookingTime,
	}
	if err := s.repo.CreateAggregate(ctx, rec, req.Tags, req.Ingredients); err != nil {
		s.discardImage(ctx, imageKey, recipe.TriggerWriteFailed)
		return nil, err
	}

	metrics.RecipeWritesTotal.WithLabelValues("create").Inc()
	logger.Info("Recipe created", map[string]interface{}{
		"recipe_id": rec.ID,
		"author_id": authorID,
	})

	return s.Get(ctx, rec.ID, authorID)
}

// Update applies the fields present in req.
// A new image is stored before the transaction; the old one is removed only after commit.
func (s *recipeService) Update(ctx context.Context, id int64, actor recipe.Actor, req recipe.WriteRequest) (*recipe.Response, error) {
	// 1. LOAD + PERMISSION
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(existing) {
		return nil, apperror.ErrPermissionDenied
	}

	// 2. VALIDATE INPUT
	req.Normalize()
	if err := req.Validate(true); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, req); err != nil {
		return nil, err
	}

	// 3. MERGE
	updated := *existing
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.Text != nil {
		updated.Text = *req.Text
	}
	if req.CookingTime != nil {
		updated.CookingTime = *req.CookingTime
	}

	var newImageKey string
	if req.Image != nil {
		newImageKey, err = s.storeImage(ctx, req.Image.Upload)
		if err != nil {
			return nil, err
		}
		updated.Image = newImageKey
	}

	// 4. PERSIST
	if err := s.repo.UpdateAggregate(ctx, &updated, req.Tags, req.Ingredients); err != nil {
		if newImageKey != "" {
			s.discardImage(ctx, newImageKey, recipe.TriggerWriteFailed)
		}
		return nil, err
	}

	// 5. DROP REPLACED IMAGE
	if newImageKey != "" && existing.Image != "" && existing.Image != newImageKey {
		s.discardImage(ctx, existing.Image, recipe.TriggerImageReplaced)
	}

	metrics.RecipeWritesTotal.WithLabelValues("update").Inc()
	logger.Info("Recipe updated", map[string]interface{}{
		"recipe_id":     id,
		"actor_id":      actor.UserID,
		"image_changed": newImageKey != "",
		"tags_replaced": req.Tags != nil,
		"ingr_replaced": req.Ingredients != nil,
	})

	return s.Get(ctx, id, actor.UserID)
}

func (s *recipeService) Delete(ctx context.Context, id int64, actor recipe.Actor) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanModify(existing) {
		return apperror.ErrPermissionDenied
	}

	imageKey, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}

	// Cascades removed tags, ingredients, favorites and cart rows; the image goes to the worker
	if imageKey != "" {
		if err := s.queue.EnqueueImageDeletion(ctx, imageKey, recipe.TriggerRecipeDeleted); err != nil {
			logger.Warn("Failed to enqueue image deletion, deleting inline", map[string]interface{}{
				"image_key": imageKey,
				"error":     err.Error(),
			})
			s.discardImage(ctx, imageKey, recipe.TriggerRecipeDeleted)
		}
	}

	metrics.RecipeWritesTotal.WithLabelValues("delete").Inc()
	logger.Info("Recipe deleted", map[string]interface{}{
		"recipe_id": id,
		"actor_id":  actor.UserID,
	})
	return nil
}

// checkReferences rejects unknown tags (400) and unknown ingredients (404) before any write
func (s *recipeService) checkReferences(ctx context.Context, req recipe.WriteRequest) error {
	if len(req.Tags) > 0 {
		missing, err := s.repo.MissingTags(ctx, req.Tags)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return recipe.ErrUnknownTag(missing[0])
		}
	}

	if len(req.Ingredients) > 0 {
		missing, err := s.repo.MissingIngredients(ctx, req.IngredientIDs())
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return recipe.ErrIngredientNotFound
		}
	}
	return nil
}

// ========================================
// IMAGES
// ========================================

// storeImage validates, downscales and uploads to recipes/<uuid>/temp.<ext>
func (s *recipeService) storeImage(ctx context.Context, upload *storage.Upload) (string, error) {
	processed, err := s.images.Process(upload.Data)
	if err != nil {
		if errors.Is(err, storage.ErrNotAnImage) ||
			errors.Is(err, storage.ErrImageTooLarge) ||
			errors.Is(err, storage.ErrFormatNotAllowed) {
			return "", recipe.ErrInvalidImage(err)
		}
		return "", err
	}

	// The extension follows the decoded bytes, not the name the client sent
	key := fmt.Sprintf("%s%s/temp.%s", shared.RecipeImagePrefix, uuid.NewString(), processed.Format)

	if err := s.store.Upload(ctx, key, processed.Data, processed.ContentType); err != nil {
		return "", fmt.Errorf("store recipe image: %w", err)
	}
	return key, nil
}

// discardImage deletes inline and falls back to the worker queue
func (s *recipeService) discardImage(ctx context.Context, key, trigger string) {
	err := s.store.Delete(ctx, key)
	if err == nil {
		metrics.ImageCleanupTotal.WithLabelValues(trigger).Inc()
		return
	}
	logger.Warn("Inline image delete failed, queueing", map[string]interface{}{
		"image_key": key,
		"trigger":   trigger,
		"error":     err.Error(),
	})

	if err := s.queue.EnqueueImageDeletion(ctx, key, trigger); err != nil {
		logger.Error("Failed to enqueue image deletion", err)
	}
}
