package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodgram-backend/internal/domains/tag"
	"foodgram-backend/internal/shared/request"
	"foodgram-backend/internal/shared/response"
)

type TagHandler struct {
	service tag.Service
}

func NewTagHandler(service tag.Service) *TagHandler {
	return &TagHandler{service: service}
}

// List handles GET /tags/ (not paginated)
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.service.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tags)
}

// Get handles GET /tags/:id/
func (h *TagHandler) Get(c *gin.Context) {
	id, err := request.PathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	t, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, t)
}

// Create handles POST /tags/ (staff only)
func (h *TagHandler) Create(c *gin.Context) {
	var req tag.CreateTagRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.FromError(c, err)
		return
	}

	t, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, t)
}
