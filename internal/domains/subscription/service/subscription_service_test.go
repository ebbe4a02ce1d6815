package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodgram-backend/internal/domains/recipe"
	"foodgram-backend/internal/domains/subscription"
	"foodgram-backend/internal/domains/user"
)

type userDirectory struct {
	users map[int64]user.User
	subs  *memoryRepository
}

func (d *userDirectory) Create(context.Context, *user.User) error { return nil }

func (d *userDirectory) FindByID(_ context.Context, id int64) (*user.User, error) {
	u, ok := d.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return &u, nil
}

func (d *userDirectory) GetProfile(ctx context.Context, id, viewerID int64) (*user.Profile, error) {
	u, err := d.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &user.Profile{User: *u, IsSubscribed: d.subs.pairs[[2]int64{viewerID, id}]}, nil
}

func (d *userDirectory) List(context.Context, int64, int, int) ([]user.Profile, int64, error) {
	return nil, 0, nil
}

func (d *userDirectory) UpdatePassword(context.Context, int64, string) error { return nil }

type memoryRepository struct {
	pairs   map[[2]int64]bool
	order   [][2]int64
	recipes map[int64][]recipe.Recipe
}

func (m *memoryRepository) Create(_ context.Context, userID, authorID int64) error {
	key := [2]int64{userID, authorID}
	if m.pairs[key] {
		return subscription.ErrAlreadySubscribed
	}
	m.pairs[key] = true
	m.order = append(m.order, key)
	return nil
}

func (m *memoryRepository) Delete(_ context.Context, userID, authorID int64) error {
	key := [2]int64{userID, authorID}
	if !m.pairs[key] {
		return subscription.ErrSubscriptionNotFound
	}
	delete(m.pairs, key)
	return nil
}

func (m *memoryRepository) ListAuthors(_ context.Context, userID int64, _, _ int) ([]user.Profile, int64, error) {
	var out []user.Profile
	for _, key := range m.order {
		if key[0] == userID && m.pairs[key] {
			out = append(out, user.Profile{User: user.User{ID: key[1]}, IsSubscribed: true})
		}
	}
	return out, int64(len(out)), nil
}

func (m *memoryRepository) RecipesByAuthors(_ context.Context, authorIDs []int64, limit *int) (map[int64][]recipe.Recipe, error) {
	out := map[int64][]recipe.Recipe{}
	for _, id := range authorIDs {
		list := m.recipes[id]
		if limit != nil && len(list) > *limit {
			list = list[:*limit]
		}
		out[id] = list
	}
	return out, nil
}

func (m *memoryRepository) CountRecipes(_ context.Context, authorIDs []int64) (map[int64]int, error) {
	out := map[int64]int{}
	for _, id := range authorIDs {
		out[id] = len(m.recipes[id])
	}
	return out, nil
}

type staticURLs struct{}

func (staticURLs) PublicURL(key string) string { return "http://media.test/" + key }

func newService() (subscription.Service, *memoryRepository) {
	now := time.Now()
	repo := &memoryRepository{
		pairs: map[[2]int64]bool{},
		recipes: map[int64][]recipe.Recipe{
			2: {
				{ID: 12, AuthorID: 2, Name: "Newest", Image: "recipes/b/temp.png", CookingTime: 5, PubDate: now},
				{ID: 11, AuthorID: 2, Name: "Older", Image: "recipes/a/temp.png", CookingTime: 9, PubDate: now.Add(-time.Hour)},
			},
		},
	}
	users := &userDirectory{
		users: map[int64]user.User{
			1: {ID: 1, Username: "reader"},
			2: {ID: 2, Username: "chef", Email: "chef@example.com"},
			3: {ID: 3, Username: "baker"},
		},
		subs: repo,
	}
	return NewSubscriptionService(repo, users, staticURLs{}), repo
}

func TestSubscribe(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.Subscribe(context.Background(), 1, 2, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(2), resp.ID)
	assert.Equal(t, "chef", resp.Username)
	assert.True(t, resp.IsSubscribed)
	assert.Equal(t, 2, resp.RecipesCount)
	require.Len(t, resp.Recipes, 2)
	assert.Equal(t, recipe.ShortResponse{ID: 12, Name: "Newest", Image: "http://media.test/recipes/b/temp.png", CookingTime: 5}, resp.Recipes[0])
}

func TestSubscribe_RecipesLimit(t *testing.T) {
	svc, _ := newService()
	one, zero := 1, 0

	resp, err := svc.Subscribe(context.Background(), 1, 2, &one)
	require.NoError(t, err)
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, int64(12), resp.Recipes[0].ID)
	assert.Equal(t, 2, resp.RecipesCount)

	items, _, err := svc.Subscriptions(context.Background(), 1, &zero, 6, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.NotNil(t, items[0].Recipes)
	assert.Empty(t, items[0].Recipes)
	assert.Equal(t, 2, items[0].RecipesCount)
}

func TestSubscribe_Rejects(t *testing.T) {
	svc, repo := newService()

	_, err := svc.Subscribe(context.Background(), 1, 1, nil)
	assert.ErrorIs(t, err, subscription.ErrSelfSubscription)

	_, err = svc.Subscribe(context.Background(), 1, 99, nil)
	assert.ErrorIs(t, err, subscription.ErrAuthorNotFound)

	_, err = svc.Subscribe(context.Background(), 1, 3, nil)
	require.NoError(t, err)
	_, err = svc.Subscribe(context.Background(), 1, 3, nil)
	assert.ErrorIs(t, err, subscription.ErrAlreadySubscribed)

	assert.Len(t, repo.order, 1)
}

func TestUnsubscribe(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Subscribe(context.Background(), 1, 2, nil)
	require.NoError(t, err)

	require.NoError(t, svc.Unsubscribe(context.Background(), 1, 2))
	assert.ErrorIs(t, svc.Unsubscribe(context.Background(), 1, 2), subscription.ErrSubscriptionNotFound)
	assert.ErrorIs(t, svc.Unsubscribe(context.Background(), 1, 99), subscription.ErrAuthorNotFound)
}

func TestSubscriptions_Empty(t *testing.T) {
	svc, _ := newService()

	items, total, err := svc.Subscriptions(context.Background(), 3, nil, 6, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
