package main

import (
	"github.com/hibiken/asynq"

	recipeJob "foodgram-backend/internal/domains/recipe/job"
	"foodgram-backend/internal/shared"
	"foodgram-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	deleteRecipeImage *recipeJob.DeleteImageHandler
	sweepOrphanImages *recipeJob.SweepOrphanImagesHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		deleteRecipeImage: recipeJob.NewDeleteImageHandler(c.Storage),
		sweepOrphanImages: recipeJob.NewSweepOrphanImagesHandler(c.Storage, c.RecipeRepo),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	// Image cleanup
	mux.HandleFunc(shared.TypeDeleteRecipeImage, h.deleteRecipeImage.ProcessTask)

	// Maintenance
	mux.HandleFunc(shared.TypeSweepOrphanImages, h.sweepOrphanImages.ProcessTask)
}
