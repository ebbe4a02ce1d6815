package service

import (
	"context"
	"errors"

	"foodgram-backend/internal/domains/recipe"
	"foodgram-backend/internal/domains/subscription"
	"foodgram-backend/internal/domains/user"
	"foodgram-backend/internal/infrastructure/metrics"
	"foodgram-backend/pkg/logger"
)

type subscriptionService struct {
	repo   subscription.Repository
	users  user.Repository
	images subscription.ImageURLs
}

func NewSubscriptionService(repo subscription.Repository, users user.Repository, images subscription.ImageURLs) subscription.Service {
	return &subscriptionService{
		repo:   repo,
		users:  users,
		images: images,
	}
}

func (s *subscriptionService) Subscribe(ctx context.Context, userID, authorID int64, recipesLimit *int) (*subscription.AuthorResponse, error) {
	resp, err := s.subscribe(ctx, userID, authorID, recipesLimit)
	metrics.RecordToggle("subscription", "add", err)
	return resp, err
}

func (s *subscriptionService) subscribe(ctx context.Context, userID, authorID int64, recipesLimit *int) (*subscription.AuthorResponse, error) {
	// 1. Self-subscription is rejected whatever the current state
	if userID == authorID {
		return nil, subscription.ErrSelfSubscription
	}

	// 2. Author must exist
	if _, err := s.users.FindByID(ctx, authorID); err != nil {
		return nil, authorLookupError(err)
	}

	// 3. Insert; the unique constraint reports duplicates
	if err := s.repo.Create(ctx, userID, authorID); err != nil {
		return nil, err
	}

	logger.Info("Subscribed to author", map[string]interface{}{
		"user_id":   userID,
		"author_id": authorID,
	})

	profile, err := s.users.GetProfile(ctx, authorID, userID)
	if err != nil {
		return nil, authorLookupError(err)
	}

	items, err := s.represent(ctx, []user.Profile{*profile}, recipesLimit)
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

func (s *subscriptionService) Unsubscribe(ctx context.Context, userID, authorID int64) error {
	err := s.unsubscribe(ctx, userID, authorID)
	metrics.RecordToggle("subscription", "remove", err)
	return err
}

func (s *subscriptionService) unsubscribe(ctx context.Context, userID, authorID int64) error {
	if _, err := s.users.FindByID(ctx, authorID); err != nil {
		return authorLookupError(err)
	}

	if err := s.repo.Delete(ctx, userID, authorID); err != nil {
		return err
	}

	logger.Info("Unsubscribed from author", map[string]interface{}{
		"user_id":   userID,
		"author_id": authorID,
	})
	return nil
}

func (s *subscriptionService) Subscriptions(ctx context.Context, userID int64, recipesLimit *int, limit, offset int) ([]subscription.AuthorResponse, int64, error) {
	authors, total, err := s.repo.ListAuthors(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	items, err := s.represent(ctx, authors, recipesLimit)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// represent attaches recipe previews and counts to each author in two queries
func (s *subscriptionService) represent(ctx context.Context, authors []user.Profile, recipesLimit *int) ([]subscription.AuthorResponse, error) {
	out := make([]subscription.AuthorResponse, 0, len(authors))
	if len(authors) == 0 {
		return out, nil
	}

	ids := make([]int64, 0, len(authors))
	for _, a := range authors {
		ids = append(ids, a.ID)
	}

	recipes, err := s.repo.RecipesByAuthors(ctx, ids, recipesLimit)
	if err != nil {
		return nil, err
	}
	counts, err := s.repo.CountRecipes(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, a := range authors {
		short := make([]recipe.ShortResponse, 0, len(recipes[a.ID]))
		for _, r := range recipes[a.ID] {
			short = append(short, r.ToShort(s.images.PublicURL))
		}
		out = append(out, subscription.AuthorResponse{
			UserResponse: a.ToResponse(),
			Recipes:      short,
			RecipesCount: counts[a.ID],
		})
	}
	return out, nil
}

func authorLookupError(err error) error {
	if errors.Is(err, user.ErrUserNotFound) {
		return subscription.ErrAuthorNotFound
	}
	return err
}
