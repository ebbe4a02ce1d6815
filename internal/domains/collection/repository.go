package collection

import "context"

type Repository interface {
	// Add returns kind.ErrAlreadyAdded() on a duplicate pair
	Add(ctx context.Context, kind Kind, userID, recipeID int64) error

	// Remove returns kind.ErrNotListed() when the pair does not exist
	Remove(ctx context.Context, kind Kind, userID, recipeID int64) error

	// ShoppingList sums ingredient amounts over the user's cart, grouped by name and unit, ordered by name then unit
	ShoppingList(ctx context.Context, userID int64) ([]ShoppingItem, error)
}
