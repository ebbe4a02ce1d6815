package subscription

import "context"

type Service interface {
	Subscribe(ctx context.Context, userID, authorID int64, recipesLimit *int) (*AuthorResponse, error)
	Unsubscribe(ctx context.Context, userID, authorID int64) error
	Subscriptions(ctx context.Context, userID int64, recipesLimit *int, limit, offset int) ([]AuthorResponse, int64, error)
}

// ImageURLs resolves stored image keys for recipe previews
type ImageURLs interface {
	PublicURL(key string) string
}
