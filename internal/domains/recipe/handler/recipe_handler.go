package handler

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"foodgram-backend/internal/domains/recipe"
	"foodgram-backend/internal/infrastructure/storage"
	"foodgram-backend/internal/shared/apperror"
	"foodgram-backend/internal/shared/middleware"
	"foodgram-backend/internal/shared/request"
	"foodgram-backend/internal/shared/response"
)

// RecipeHandler serves /recipes
type RecipeHandler struct {
	service     recipe.Service
	pageSize    int
	maxPageSize int
}

func NewRecipeHandler(service recipe.Service, pageSize, maxPageSize int) *RecipeHandler {
	return &RecipeHandler{
		service:     service,
		pageSize:    pageSize,
		maxPageSize: maxPageSize,
	}
}

// ========================================
// READ ENDPOINTS
// ========================================

// List handles GET /recipes/?page&limit&author&tags&is_favorited&is_in_shopping_cart
func (h *RecipeHandler) List(c *gin.Context) {
	p, err := response.ParsePagination(c, h.pageSize, h.maxPageSize)
	if err != nil {
		response.FromError(c, err)
		return
	}

	filter, err := parseFilter(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	items, total, err := h.service.List(c.Request.Context(), filter, middleware.CurrentUserID(c), p.Limit, p.Offset())
	if err != nil {
		response.FromError(c, err)
		return
	}
	if err := p.Check(total); err != nil {
		response.FromError(c, err)
		return
	}

	response.Paginated(c, p, total, items)
}

// Get handles GET /recipes/:id/
func (h *RecipeHandler) Get(c *gin.Context) {
	id, err := request.PathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	resp, err := h.service.Get(c.Request.Context(), id, middleware.CurrentUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// ========================================
// WRITE ENDPOINTS
// ========================================

// Create handles POST /recipes/
func (h *RecipeHandler) Create(c *gin.Context) {
	// STEP 1: PARSE JSON OR MULTIPART BODY
	req, err := bindWriteRequest(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	// STEP 2: CALL SERVICE LAYER
	resp, err := h.service.Create(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	// STEP 3: SAME SHAPE AS DETAIL
	response.Created(c, resp)
}

// Update handles PATCH /recipes/:id/
func (h *RecipeHandler) Update(c *gin.Context) {
	id, err := request.PathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	req, err := bindWriteRequest(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, actor(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// Delete handles DELETE /recipes/:id/
func (h *RecipeHandler) Delete(c *gin.Context) {
	id, err := request.PathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, actor(c)); err != nil {
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}

// ========================================
// HELPERS
// ========================================

func actor(c *gin.Context) recipe.Actor {
	return recipe.Actor{
		UserID:  middleware.CurrentUserID(c),
		IsAdmin: middleware.IsAdmin(c),
	}
}

func parseFilter(c *gin.Context) (recipe.ListFilter, error) {
	var f recipe.ListFilter

	if raw := c.Query("author"); raw != "" {
		authorID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return f, apperror.FieldError("author", "Select a valid choice. That choice is not one of the available choices.")
		}
		f.AuthorID = &authorID
	}

	for _, slug := range c.QueryArray("tags") {
		if slug = strings.TrimSpace(slug); slug != "" {
			f.TagSlugs = append(f.TagSlugs, slug)
		}
	}

	var err error
	if f.IsFavorited, err = request.OptionalBool(c, "is_favorited"); err != nil {
		return f, err
	}
	if f.IsInShoppingCart, err = request.OptionalBool(c, "is_in_shopping_cart"); err != nil {
		return f, err
	}
	return f, nil
}

// bindWriteRequest accepts application/json (image as data URI) or multipart/form-data
func bindWriteRequest(c *gin.Context) (recipe.WriteRequest, error) {
	var req recipe.WriteRequest

	if c.ContentType() != gin.MIMEMultipartPOSTForm {
		err := request.BindJSON(c, &req)
		return req, err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return req, apperror.Validation("Multipart form parse error.")
	}

	if v, ok := form.Value["name"]; ok && len(v) > 0 {
		req.Name = &v[0]
	}
	if v, ok := form.Value["text"]; ok && len(v) > 0 {
		req.Text = &v[0]
	}
	if v, ok := form.Value["cooking_time"]; ok && len(v) > 0 {
		cookingTime, err := strconv.Atoi(strings.TrimSpace(v[0]))
		if err != nil {
			return req, apperror.FieldError("cooking_time", "A valid integer is required.")
		}
		req.CookingTime = &cookingTime
	}

	if v, ok := form.Value["tags"]; ok {
		req.Tags = make([]int64, 0, len(v))
		for _, raw := range v {
			id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
			if err != nil {
				return req, apperror.FieldError("tags", "Incorrect type. Expected pk value.")
			}
			req.Tags = append(req.Tags, id)
		}
	}

	// ingredients arrive as a JSON array in a single form field
	if v, ok := form.Value["ingredients"]; ok && len(v) > 0 {
		req.Ingredients = []recipe.IngredientInput{}
		if err := json.Unmarshal([]byte(v[0]), &req.Ingredients); err != nil {
			return req, apperror.FieldError("ingredients", "Expected a JSON list of {id, amount} objects.")
		}
	}

	if files, ok := form.File["image"]; ok && len(files) > 0 {
		upload, err := readUpload(files[0])
		if err != nil {
			return req, err
		}
		req.Image = recipe.NewImageField(upload)
	} else if v, ok := form.Value["image"]; ok && len(v) > 0 {
		req.Image = &recipe.ImageField{}
		_ = req.Image.UnmarshalJSON([]byte(strconv.Quote(v[0])))
	}

	return req, nil
}

func readUpload(fh *multipart.FileHeader) (*storage.Upload, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, apperror.FieldError("image", "The submitted file is empty.")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, apperror.FieldError("image", "The submitted file is empty.")
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fh.Filename)), ".")
	return &storage.Upload{Name: "temp." + ext, Data: data}, nil
}
