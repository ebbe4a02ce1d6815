package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodgram-backend/internal/domains/ingredient"
	"foodgram-backend/internal/domains/ingredient/service"
)

type memoryRepository struct {
	items   []ingredient.Ingredient
	lastArg string
}

func (m *memoryRepository) Search(_ context.Context, prefix string) ([]ingredient.Ingredient, error) {
	m.lastArg = prefix
	out := make([]ingredient.Ingredient, 0)
	for _, i := range m.items {
		if strings.HasPrefix(strings.ToLower(i.Name), strings.ToLower(prefix)) {
			out = append(out, i)
		}
	}
	return out, nil
}

func (m *memoryRepository) FindByID(_ context.Context, id int64) (*ingredient.Ingredient, error) {
	for _, i := range m.items {
		if i.ID == id {
			return &i, nil
		}
	}
	return nil, ingredient.ErrIngredientNotFound
}

func setupRouter() (*gin.Engine, *memoryRepository) {
	gin.SetMode(gin.TestMode)
	repo := &memoryRepository{items: []ingredient.Ingredient{
		{ID: 1, Name: "flour", MeasurementUnit: "g"},
		{ID: 2, Name: "Flour, rye", MeasurementUnit: "g"},
		{ID: 3, Name: "milk", MeasurementUnit: "ml"},
	}}
	h := NewIngredientHandler(service.NewIngredientService(repo))

	r := gin.New()
	r.GET("/ingredients/", h.List)
	r.GET("/ingredients/:id/", h.Get)
	return r, repo
}

func TestSearchIngredients(t *testing.T) {
	r, repo := setupRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ingredients/?name=%20FLO", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "FLO", repo.lastArg)
	assert.JSONEq(t, `[
		{"id":1,"name":"flour","measurement_unit":"g"},
		{"id":2,"name":"Flour, rye","measurement_unit":"g"}
	]`, w.Body.String())
}

func TestSearchIngredients_NoMatchIsEmptyList(t *testing.T) {
	r, _ := setupRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ingredients/?name=zzz", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGetIngredient(t *testing.T) {
	r, _ := setupRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ingredients/3/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"measurement_unit":"ml"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ingredients/42/", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
