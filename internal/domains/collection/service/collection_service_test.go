package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodgram-backend/internal/domains/collection"
	"foodgram-backend/internal/domains/recipe"
)

type pair struct {
	kind     collection.Kind
	userID   int64
	recipeID int64
}

type memoryRepository struct {
	pairs map[pair]bool
	items []collection.ShoppingItem
}

func (m *memoryRepository) Add(_ context.Context, kind collection.Kind, userID, recipeID int64) error {
	key := pair{kind, userID, recipeID}
	if m.pairs[key] {
		return kind.ErrAlreadyAdded()
	}
	m.pairs[key] = true
	return nil
}

func (m *memoryRepository) Remove(_ context.Context, kind collection.Kind, userID, recipeID int64) error {
	key := pair{kind, userID, recipeID}
	if !m.pairs[key] {
		return kind.ErrNotListed()
	}
	delete(m.pairs, key)
	return nil
}

func (m *memoryRepository) ShoppingList(context.Context, int64) ([]collection.ShoppingItem, error) {
	return m.items, nil
}

type recipeTable map[int64]recipe.Recipe

func (t recipeTable) FindByID(_ context.Context, id int64) (*recipe.Recipe, error) {
	r, ok := t[id]
	if !ok {
		return nil, recipe.ErrRecipeNotFound
	}
	return &r, nil
}

type staticURLs struct{}

func (staticURLs) PublicURL(key string) string { return "http://media.test/" + key }

func newService() (collection.Service, *memoryRepository) {
	repo := &memoryRepository{pairs: map[pair]bool{}}
	recipes := recipeTable{
		4: {ID: 4, AuthorID: 2, Name: "Porridge", Image: "recipes/x/temp.jpg", CookingTime: 10},
	}
	return NewCollectionService(repo, recipes, staticURLs{}), repo
}

func TestAdd(t *testing.T) {
	svc, _ := newService()

	short, err := svc.Add(context.Background(), collection.Favorites, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, &recipe.ShortResponse{ID: 4, Name: "Porridge", Image: "http://media.test/recipes/x/temp.jpg", CookingTime: 10}, short)
}

func TestToggleTwice(t *testing.T) {
	for _, kind := range []collection.Kind{collection.Favorites, collection.ShoppingCart} {
		t.Run(string(kind), func(t *testing.T) {
			svc, _ := newService()
			ctx := context.Background()

			_, err := svc.Add(ctx, kind, 1, 4)
			require.NoError(t, err)
			_, err = svc.Add(ctx, kind, 1, 4)
			assert.ErrorIs(t, err, kind.ErrAlreadyAdded())

			require.NoError(t, svc.Remove(ctx, kind, 1, 4))
			assert.ErrorIs(t, svc.Remove(ctx, kind, 1, 4), kind.ErrNotListed())
		})
	}
}

func TestListsAreIndependent(t *testing.T) {
	svc, repo := newService()

	_, err := svc.Add(context.Background(), collection.Favorites, 1, 4)
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), collection.ShoppingCart, 1, 4)
	require.NoError(t, err)
	assert.Len(t, repo.pairs, 2)
}

func TestAdd_UnknownRecipe(t *testing.T) {
	svc, repo := newService()

	_, err := svc.Add(context.Background(), collection.ShoppingCart, 1, 99)
	assert.ErrorIs(t, err, recipe.ErrRecipeNotFound)
	assert.ErrorIs(t, svc.Remove(context.Background(), collection.ShoppingCart, 1, 99), recipe.ErrRecipeNotFound)
	assert.Empty(t, repo.pairs)
}

func TestDownloadShoppingList(t *testing.T) {
	svc, repo := newService()
	repo.items = []collection.ShoppingItem{{Name: "flour", MeasurementUnit: "g", Amount: 150}}

	doc, err := svc.DownloadShoppingList(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Equal(t, "shoplist.txt", doc.Filename)
	assert.Equal(t, "flour - 150 g\n", string(doc.Data))

	doc, err = svc.DownloadShoppingList(context.Background(), 1, "XLSX")
	require.NoError(t, err)
	assert.Equal(t, "shoplist.xlsx", doc.Filename)
	assert.NotEmpty(t, doc.Data)

	_, err = svc.DownloadShoppingList(context.Background(), 1, "pdf")
	assert.ErrorIs(t, err, collection.ErrUnknownFormat)
}
