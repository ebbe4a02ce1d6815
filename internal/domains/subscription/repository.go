package subscription

import (
	"context"

	"foodgram-backend/internal/domains/recipe"
	"foodgram-backend/internal/domains/user"
)

type Repository interface {
	// Create maps the storage constraints to ErrAlreadySubscribed, ErrSelfSubscription and ErrAuthorNotFound
	Create(ctx context.Context, userID, authorID int64) error

	// Delete returns ErrSubscriptionNotFound when the pair does not exist
	Delete(ctx context.Context, userID, authorID int64) error

	// ListAuthors returns the authors userID follows, oldest subscription first
	ListAuthors(ctx context.Context, userID int64, limit, offset int) ([]user.Profile, int64, error)

	// RecipesByAuthors returns each author's recipes newest first, at most limit per author when limit is set
	RecipesByAuthors(ctx context.Context, authorIDs []int64, limit *int) (map[int64][]recipe.Recipe, error)

	CountRecipes(ctx context.Context, authorIDs []int64) (map[int64]int, error)
}
