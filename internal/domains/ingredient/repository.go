package ingredient

import "context"

type Repository interface {
	// Search returns ingredients whose name starts with prefix (case-insensitive), ordered by name.
	// An empty prefix returns the whole catalog.
	Search(ctx context.Context, prefix string) ([]Ingredient, error)

	// FindByID returns ErrIngredientNotFound when absent
	FindByID(ctx context.Context, id int64) (*Ingredient, error)
}
