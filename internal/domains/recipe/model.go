package recipe

import (
	"time"

	"foodgram-backend/internal/domains/tag"
	"foodgram-backend/internal/domains/user"
)

// Recipe is a recipes row. Image holds the object storage key.
type Recipe struct {
	ID          int64
	AuthorID    int64
	Name        string
	Image       string
	Text        string
	CookingTime int
	PubDate     time.Time
}

// IngredientAmount is one RecipeIngredient joined with its catalog entry
type IngredientAmount struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// Row is a recipe read together with everything that depends on the viewer
type Row struct {
	Recipe
	Author           user.Profile
	IsFavorited      bool
	IsInShoppingCart bool
}

// Response is the full recipe representation, used for list, detail and write responses
type Response struct {
	ID               int64              `json:"id"`
	Tags             []tag.Tag          `json:"tags"`
	Author           user.UserResponse  `json:"author"`
	Ingredients      []IngredientAmount `json:"ingredients"`
	IsFavorited      bool               `json:"is_favorited"`
	IsInShoppingCart bool               `json:"is_in_shopping_cart"`
	Name             string             `json:"name"`
	Image            string             `json:"image"`
	Text             string             `json:"text"`
	CookingTime      int                `json:"cooking_time"`
}

// ShortResponse is the recipe summary embedded in favorites, cart and subscription responses
type ShortResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// ListFilter narrows the recipe list. Nil fields are not applied.
type ListFilter struct {
	AuthorID         *int64
	TagSlugs         []string
	IsFavorited      *bool
	IsInShoppingCart *bool
}

// Actor is the caller of a write operation
type Actor struct {
	UserID  int64
	IsAdmin bool
}

// CanModify reports whether the actor may update or delete r
func (a Actor) CanModify(r *Recipe) bool {
	return a.IsAdmin || (a.UserID != 0 && a.UserID == r.AuthorID)
}

// ToShort builds the summary with the image key resolved to a URL
func (r Recipe) ToShort(imageURL func(string) string) ShortResponse {
	return ShortResponse{
		ID:          r.ID,
		Name:        r.Name,
		Image:       imageURL(r.Image),
		CookingTime: r.CookingTime,
	}
}
