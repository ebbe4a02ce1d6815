package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"foodgram-backend/internal/domains/collection"
	"foodgram-backend/internal/shared/middleware"
	"foodgram-backend/internal/shared/request"
	"foodgram-backend/internal/shared/response"
)

// CollectionHandler serves the favorite and shopping cart toggles and the shopping list download
type CollectionHandler struct {
	service collection.Service
}

func NewCollectionHandler(service collection.Service) *CollectionHandler {
	return &CollectionHandler{service: service}
}

// AddFavorite handles POST /recipes/:id/favorite/
func (h *CollectionHandler) AddFavorite(c *gin.Context) { h.add(c, collection.Favorites) }

// RemoveFavorite handles DELETE /recipes/:id/favorite/
func (h *CollectionHandler) RemoveFavorite(c *gin.Context) { h.remove(c, collection.Favorites) }

// AddToCart handles POST /recipes/:id/shopping_cart/
func (h *CollectionHandler) AddToCart(c *gin.Context) { h.add(c, collection.ShoppingCart) }

// RemoveFromCart handles DELETE /recipes/:id/shopping_cart/
func (h *CollectionHandler) RemoveFromCart(c *gin.Context) { h.remove(c, collection.ShoppingCart) }

func (h *CollectionHandler) add(c *gin.Context, kind collection.Kind) {
	recipeID, err := request.PathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	short, err := h.service.Add(c.Request.Context(), kind, middleware.CurrentUserID(c), recipeID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, short)
}

func (h *CollectionHandler) remove(c *gin.Context, kind collection.Kind) {
	recipeID, err := request.PathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	if err := h.service.Remove(c.Request.Context(), kind, middleware.CurrentUserID(c), recipeID); err != nil {
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}

// DownloadShoppingCart handles GET /recipes/download_shopping_cart/?format=txt|xlsx
func (h *CollectionHandler) DownloadShoppingCart(c *gin.Context) {
	doc, err := h.service.DownloadShoppingList(c.Request.Context(), middleware.CurrentUserID(c), c.Query("format"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, doc.Filename))
	c.Data(http.StatusOK, doc.ContentType, doc.Data)
}
