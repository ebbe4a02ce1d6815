package service

import (
	"context"
	"strings"

	"foodgram-backend/internal/domains/collection"
	"foodgram-backend/internal/domains/recipe"
	"foodgram-backend/internal/infrastructure/metrics"
	"foodgram-backend/pkg/logger"
)

type collectionService struct {
	repo    collection.Repository
	recipes collection.RecipeLookup
	images  collection.ImageURLs
}

func NewCollectionService(repo collection.Repository, recipes collection.RecipeLookup, images collection.ImageURLs) collection.Service {
	return &collectionService{
		repo:    repo,
		recipes: recipes,
		images:  images,
	}
}

// Add puts the recipe in the list and returns its summary
func (s *collectionService) Add(ctx context.Context, kind collection.Kind, userID, recipeID int64) (*recipe.ShortResponse, error) {
	rec, err := s.recipes.FindByID(ctx, recipeID)
	if err != nil {
		metrics.RecordToggle(string(kind), "add", err)
		return nil, err
	}

	err = s.repo.Add(ctx, kind, userID, recipeID)
	metrics.RecordToggle(string(kind), "add", err)
	if err != nil {
		return nil, err
	}

	logger.Info("Recipe added to list", map[string]interface{}{
		"list":      string(kind),
		"user_id":   userID,
		"recipe_id": recipeID,
	})

	short := rec.ToShort(s.images.PublicURL)
	return &short, nil
}

func (s *collectionService) Remove(ctx context.Context, kind collection.Kind, userID, recipeID int64) error {
	if _, err := s.recipes.FindByID(ctx, recipeID); err != nil {
		metrics.RecordToggle(string(kind), "remove", err)
		return err
	}

	err := s.repo.Remove(ctx, kind, userID, recipeID)
	metrics.RecordToggle(string(kind), "remove", err)
	if err != nil {
		return err
	}

	logger.Info("Recipe removed from list", map[string]interface{}{
		"list":      string(kind),
		"user_id":   userID,
		"recipe_id": recipeID,
	})
	return nil
}

// DownloadShoppingList renders the aggregated cart. An empty format means plain text.
func (s *collectionService) DownloadShoppingList(ctx context.Context, userID int64, format string) (*collection.Document, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = collection.FormatText
	}
	if format != collection.FormatText && format != collection.FormatXLSX {
		return nil, collection.ErrUnknownFormat
	}

	items, err := s.repo.ShoppingList(ctx, userID)
	if err != nil {
		return nil, err
	}

	var doc *collection.Document
	if format == collection.FormatXLSX {
		if doc, err = collection.RenderXLSX(items); err != nil {
			return nil, err
		}
	} else {
		doc = collection.RenderText(items)
	}

	metrics.ShoppingListDownloadsTotal.WithLabelValues(format).Inc()
	logger.Debug("Shopping list rendered")
	return doc, nil
}
