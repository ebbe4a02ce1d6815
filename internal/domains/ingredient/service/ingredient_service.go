package service

import (
	"context"
	"strings"

	"foodgram-backend/internal/domains/ingredient"
)

type ingredientService struct {
	repo ingredient.Repository
}

func NewIngredientService(repo ingredient.Repository) ingredient.Service {
	return &ingredientService{repo: repo}
}

// Search matches names starting with name, ignoring case
func (s *ingredientService) Search(ctx context.Context, name string) ([]ingredient.Ingredient, error) {
	return s.repo.Search(ctx, strings.TrimSpace(name))
}

func (s *ingredientService) Get(ctx context.Context, id int64) (*ingredient.Ingredient, error) {
	return s.repo.FindByID(ctx, id)
}
