package handler

import (
	"github.com/gin-gonic/gin"

	"foodgram-backend/internal/domains/subscription"
	"foodgram-backend/internal/shared/middleware"
	"foodgram-backend/internal/shared/request"
	"foodgram-backend/internal/shared/response"
)

// SubscriptionHandler serves the follow endpoints under /users
type SubscriptionHandler struct {
	service     subscription.Service
	pageSize    int
	maxPageSize int
}

func NewSubscriptionHandler(service subscription.Service, pageSize, maxPageSize int) *SubscriptionHandler {
	return &SubscriptionHandler{
		service:     service,
		pageSize:    pageSize,
		maxPageSize: maxPageSize,
	}
}

// List handles GET /users/subscriptions/?page&limit&recipes_limit
func (h *SubscriptionHandler) List(c *gin.Context) {
	p, err := response.ParsePagination(c, h.pageSize, h.maxPageSize)
	if err != nil {
		response.FromError(c, err)
		return
	}

	recipesLimit, err := request.OptionalNonNegativeInt(c, "recipes_limit")
	if err != nil {
		response.FromError(c, err)
		return
	}

	items, total, err := h.service.Subscriptions(c.Request.Context(), middleware.CurrentUserID(c), recipesLimit, p.Limit, p.Offset())
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

// Subscribe handles POST /users/:id/subscribe/?recipes_limit
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	// STEP 1: PARSE PATH + QUERY
	authorID, err := request.PathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	recipesLimit, err := request.OptionalNonNegativeInt(c, "recipes_limit")
	if err != nil {
		response.FromError(c, err)
		return
	}

	// STEP 2: CALL SERVICE LAYER
	resp, err := h.service.Subscribe(c.Request.Context(), middleware.CurrentUserID(c), authorID, recipesLimit)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, resp)
}

// Unsubscribe handles DELETE /users/:id/subscribe/
func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	authorID, err := request.PathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	if err := h.service.Unsubscribe(c.Request.Context(), middleware.CurrentUserID(c), authorID); err != nil {
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}
