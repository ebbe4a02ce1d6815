package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodgram-backend/internal/domains/user"
	"foodgram-backend/internal/shared/middleware"
	"foodgram-backend/internal/shared/request"
	"foodgram-backend/internal/shared/response"
)

// UserHandler serves the account endpoints under /users
type UserHandler struct {
	service     user.Service
	pageSize    int
	maxPageSize int
}

func NewUserHandler(service user.Service, pageSize, maxPageSize int) *UserHandler {
	return &UserHandler{
		service:     service,
		pageSize:    pageSize,
		maxPageSize: maxPageSize,
	}
}

// List handles GET /users/
func (h *UserHandler) List(c *gin.Context) {
	p, err := response.ParsePagination(c, h.pageSize, h.maxPageSize)
	if err != nil {
		response.FromError(c, err)
		return
	}

	items, total, err := h.service.List(c.Request.Context(), middleware.CurrentUserID(c), p.Limit, p.Offset())
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

// Register handles POST /users/
func (h *UserHandler) Register(c *gin.Context) {
	// STEP 1: PARSE REQUEST BODY
	var req user.RegisterRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.FromError(c, err)
		return
	}

	// STEP 2: CALL SERVICE LAYER
	registered, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, registered)
}

// Get handles GET /users/:id/
func (h *UserHandler) Get(c *gin.Context) {
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

// Me handles GET /users/me/
func (h *UserHandler) Me(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	resp, err := h.service.Get(c.Request.Context(), userID, userID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// SetPassword handles POST /users/set_password/
func (h *UserHandler) SetPassword(c *gin.Context) {
	var req user.SetPasswordRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.FromError(c, err)
		return
	}

	if err := h.service.SetPassword(c.Request.Context(), middleware.CurrentUserID(c), req); err != nil {
		response.FromError(c, err)
		return
	}

	response.NoContent(c)
}
