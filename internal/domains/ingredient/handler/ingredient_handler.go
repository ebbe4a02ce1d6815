package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodgram-backend/internal/domains/ingredient"
	"foodgram-backend/internal/shared/request"
	"foodgram-backend/internal/shared/response"
)

type IngredientHandler struct {
	service ingredient.Service
}

func NewIngredientHandler(service ingredient.Service) *IngredientHandler {
	return &IngredientHandler{service: service}
}

// List handles GET /ingredients/?name=
func (h *IngredientHandler) List(c *gin.Context) {
	items, err := h.service.Search(c.Request.Context(), c.Query("name"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// Get handles GET /ingredients/:id/
func (h *IngredientHandler) Get(c *gin.Context) {
	id, err := request.PathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	item, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, item)
}
