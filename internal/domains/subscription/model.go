package subscription

import (
	"foodgram-backend/internal/domains/recipe"
	"foodgram-backend/internal/domains/user"
)

// AuthorResponse is a followed author with a preview of their recipes
type AuthorResponse struct {
	user.UserResponse
	Recipes      []recipe.ShortResponse `json:"recipes"`
	RecipesCount int                    `json:"recipes_count"`
}
