package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodgram-backend/internal/domains/recipe"
	"foodgram-backend/internal/shared/apperror"
	"foodgram-backend/internal/shared/middleware"
)

// fakeService records what the handler passed down
type fakeService struct {
	total      int64
	lastFilter recipe.ListFilter
	lastViewer int64
	lastReq    recipe.WriteRequest
	lastActor  recipe.Actor
	err        error
}

func (f *fakeService) List(_ context.Context, filter recipe.ListFilter, viewerID int64, _, _ int) ([]recipe.Response, int64, error) {
	f.lastFilter = filter
	f.lastViewer = viewerID
	return []recipe.Response{}, f.total, f.err
}

func (f *fakeService) Get(_ context.Context, id, viewerID int64) (*recipe.Response, error) {
	f.lastViewer = viewerID
	if f.err != nil {
		return nil, f.err
	}
	return &recipe.Response{ID: id}, nil
}

func (f *fakeService) Create(_ context.Context, authorID int64, req recipe.WriteRequest) (*recipe.Response, error) {
	f.lastReq = req
	f.lastActor = recipe.Actor{UserID: authorID}
	if f.err != nil {
		return nil, f.err
	}
	return &recipe.Response{ID: 1}, nil
}

func (f *fakeService) Update(_ context.Context, id int64, actor recipe.Actor, req recipe.WriteRequest) (*recipe.Response, error) {
	f.lastReq = req
	f.lastActor = actor
	if f.err != nil {
		return nil, f.err
	}
	return &recipe.Response{ID: id}, nil
}

func (f *fakeService) Delete(_ context.Context, _ int64, actor recipe.Actor) error {
	f.lastActor = actor
	return f.err
}

func setupRouter(svc *fakeService, userID int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewRecipeHandler(svc, 6, 100)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != 0 {
			c.Set(middleware.ContextUserID, userID)
		}
		c.Next()
	})
	r.GET("/recipes/", h.List)
	r.GET("/recipes/:id/", h.Get)
	r.POST("/recipes/", h.Create)
	r.PATCH("/recipes/:id/", h.Update)
	r.DELETE("/recipes/:id/", h.Delete)
	return r
}

func doJSON(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// 1x1 transparent PNG
const pixelPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII="

func TestList_Filters(t *testing.T) {
	svc := &fakeService{total: 2}
	r := setupRouter(svc, 3)

	w := doJSON(r, http.MethodGet, "/recipes/?author=7&tags=breakfast&tags=lunch&is_favorited=1&is_in_shopping_cart=0", "")
	require.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, svc.lastFilter.AuthorID)
	assert.Equal(t, int64(7), *svc.lastFilter.AuthorID)
	assert.Equal(t, []string{"breakfast", "lunch"}, svc.lastFilter.TagSlugs)
	require.NotNil(t, svc.lastFilter.IsFavorited)
	assert.True(t, *svc.lastFilter.IsFavorited)
	require.NotNil(t, svc.lastFilter.IsInShoppingCart)
	assert.False(t, *svc.lastFilter.IsInShoppingCart)
	assert.Equal(t, int64(3), svc.lastViewer)

	var page map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.EqualValues(t, 2, page["count"])
	assert.Nil(t, page["next"])
}

func TestList_BadAuthor(t *testing.T) {
	r := setupRouter(&fakeService{}, 0)

	w := doJSON(r, http.MethodGet, "/recipes/?author=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"author"`)
}

func TestList_PagePastEnd(t *testing.T) {
	r := setupRouter(&fakeService{total: 3}, 0)

	w := doJSON(r, http.MethodGet, "/recipes/?page=2&limit=6", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Invalid page."}`, w.Body.String())
}

func TestCreate_JSON(t *testing.T) {
	svc := &fakeService{}
	r := setupRouter(svc, 5)

	body := `{
		"ingredients": [{"id": 1123, "amount": 10}],
		"tags": [1, 2],
		"image": "data:image/png;base64,` + pixelPNG + `",
		"name": "string",
		"text": "string",
		"cooking_time": 1
	}`
	w := doJSON(r, http.MethodPost, "/recipes/", body)
	require.Equal(t, http.StatusCreated, w.Code)

	req := svc.lastReq
	assert.Equal(t, int64(5), svc.lastActor.UserID)
	assert.Equal(t, []recipe.IngredientInput{{ID: 1123, Amount: 10}}, req.Ingredients)
	assert.Equal(t, []int64{1, 2}, req.Tags)
	require.NotNil(t, req.Image)
	require.NoError(t, req.Image.Validate())
	assert.Equal(t, "temp.png", req.Image.Upload.Name)
	assert.Equal(t, "string", *req.Name)
	assert.Equal(t, 1, *req.CookingTime)
}

func TestCreate_JSONBadImageIsFieldLevel(t *testing.T) {
	svc := &fakeService{}
	r := setupRouter(svc, 5)

	w := doJSON(r, http.MethodPost, "/recipes/", `{"image": "not a file"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.lastReq.Image)
	assert.Error(t, svc.lastReq.Image.Validate())
}

func TestCreate_MalformedJSON(t *testing.T) {
	r := setupRouter(&fakeService{}, 5)

	w := doJSON(r, http.MethodPost, "/recipes/", `{"name": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreate_Multipart(t *testing.T) {
	svc := &fakeService{}
	r := setupRouter(svc, 5)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "Soup"))
	require.NoError(t, mw.WriteField("text", "Boil."))
	require.NoError(t, mw.WriteField("cooking_time", "30"))
	require.NoError(t, mw.WriteField("tags", "1"))
	require.NoError(t, mw.WriteField("tags", "3"))
	require.NoError(t, mw.WriteField("ingredients", `[{"id": 4, "amount": 250}]`))
	part, err := mw.CreateFormFile("image", "photo.JPG")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/recipes/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	got := svc.lastReq
	assert.Equal(t, "Soup", *got.Name)
	assert.Equal(t, 30, *got.CookingTime)
	assert.Equal(t, []int64{1, 3}, got.Tags)
	assert.Equal(t, []recipe.IngredientInput{{ID: 4, Amount: 250}}, got.Ingredients)
	require.NotNil(t, got.Image)
	assert.Equal(t, "temp.jpg", got.Image.Upload.Name)
	assert.Equal(t, []byte("jpeg-bytes"), got.Image.Upload.Data)
}

func TestCreate_MultipartBadTag(t *testing.T) {
	r := setupRouter(&fakeService{}, 5)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("tags", "lunch"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/recipes/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"tags"`)
}

func TestUpdate_PartialBody(t *testing.T) {
	svc := &fakeService{}
	r := setupRouter(svc, 5)

	w := doJSON(r, http.MethodPatch, "/recipes/9/", `{"cooking_time": 15}`)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Nil(t, svc.lastReq.Name)
	assert.Nil(t, svc.lastReq.Tags)
	assert.Nil(t, svc.lastReq.Ingredients)
	assert.Nil(t, svc.lastReq.Image)
	assert.Equal(t, 15, *svc.lastReq.CookingTime)
	assert.Equal(t, recipe.Actor{UserID: 5}, svc.lastActor)
}

func TestDelete(t *testing.T) {
	svc := &fakeService{}
	r := setupRouter(svc, 5)

	w := doJSON(r, http.MethodDelete, "/recipes/9/", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	svc.err = apperror.ErrPermissionDenied
	w = doJSON(r, http.MethodDelete, "/recipes/9/", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"detail":"You do not have permission to perform this action."}`, w.Body.String())

	svc.err = recipe.ErrRecipeNotFound
	w = doJSON(r, http.MethodDelete, "/recipes/9/", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGet_BadID(t *testing.T) {
	r := setupRouter(&fakeService{}, 0)

	w := doJSON(r, http.MethodGet, "/recipes/abc/", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
