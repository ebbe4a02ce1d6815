package collection

import (
	"context"

	"foodgram-backend/internal/domains/recipe"
)

type Service interface {
	Add(ctx context.Context, kind Kind, userID, recipeID int64) (*recipe.ShortResponse, error)
	Remove(ctx context.Context, kind Kind, userID, recipeID int64) error
	DownloadShoppingList(ctx context.Context, userID int64, format string) (*Document, error)
}

// RecipeLookup is the part of the recipe store the lists need
type RecipeLookup interface {
	FindByID(ctx context.Context, id int64) (*recipe.Recipe, error)
}

// ImageURLs resolves stored image keys
type ImageURLs interface {
	PublicURL(key string) string
}
