package recipe

import (
	"context"

	"foodgram-backend/internal/domains/tag"
)

// Repository is the data access contract for the recipe aggregate.
// viewerID is 0 for anonymous callers.
type Repository interface {
	// List returns a page ordered by -pub_date and the total matching count
	List(ctx context.Context, filter ListFilter, viewerID int64, limit, offset int) ([]Row, int64, error)

	// FindRow returns ErrRecipeNotFound when absent
	FindRow(ctx context.Context, id, viewerID int64) (*Row, error)

	// FindByID returns ErrRecipeNotFound when absent
	FindByID(ctx context.Context, id int64) (*Recipe, error)

	// TagsFor and IngredientsFor batch-load associations keyed by recipe id
	TagsFor(ctx context.Context, recipeIDs []int64) (map[int64][]tag.Tag, error)
	IngredientsFor(ctx context.Context, recipeIDs []int64) (map[int64][]IngredientAmount, error)

	// MissingTags and MissingIngredients return the ids that do not exist
	MissingTags(ctx context.Context, ids []int64) ([]int64, error)
	MissingIngredients(ctx context.Context, ids []int64) ([]int64, error)

	ExistsByNameAndText(ctx context.Context, name, text string) (bool, error)

	// CreateAggregate inserts the recipe, its tags and ingredients in one transaction and fills ID and PubDate
	CreateAggregate(ctx context.Context, r *Recipe, tagIDs []int64, ingredients []IngredientInput) error

	// UpdateAggregate writes the recipe columns and, when non-nil, fully replaces tags and ingredients.
	// Everything happens in one transaction.
	UpdateAggregate(ctx context.Context, r *Recipe, tagIDs []int64, ingredients []IngredientInput) error

	// Delete removes the recipe and returns its image key
	Delete(ctx context.Context, id int64) (string, error)

	// ReferencedImages reports which of keys are still used by a recipe
	ReferencedImages(ctx context.Context, keys []string) (map[string]bool, error)
}
