package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"foodgram-backend/internal/shared/middleware"
	"foodgram-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.PrometheusMetrics(),
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/health", healthCheckHandler(c))

		setupUserRoutes(api, c)
		setupCatalogRoutes(api, c)
		setupRecipeRoutes(api, c)
	}

	return router
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(api *gin.RouterGroup, c *container.Container) {
	auth := middleware.AuthMiddleware(c.JWTManager)

	users := api.Group("/users")
	users.Use(middleware.OptionalAuth(c.JWTManager))
	{
		users.GET("/", c.UserHandler.List)
		users.POST("/", c.UserHandler.Register)
		users.GET("/me/", auth, c.UserHandler.Me)
		users.POST("/set_password/", auth, c.UserHandler.SetPassword)
		users.GET("/subscriptions/", auth, c.SubscriptionHandler.List)
		users.GET("/:id/", c.UserHandler.Get)
		users.POST("/:id/subscribe/", auth, c.SubscriptionHandler.Subscribe)
		users.DELETE("/:id/subscribe/", auth, c.SubscriptionHandler.Unsubscribe)
	}
}

// ========================================
// CATALOG ROUTES
// ========================================
func setupCatalogRoutes(api *gin.RouterGroup, c *container.Container) {
	tags := api.Group("/tags")
	{
		tags.GET("/", c.TagHandler.List)
		tags.GET("/:id/", c.TagHandler.Get)
		tags.POST("/",
			middleware.AuthMiddleware(c.JWTManager),
			middleware.AdminMiddleware(),
			c.TagHandler.Create,
		)
	}

	ingredients := api.Group("/ingredients")
	{
		ingredients.GET("/", c.IngredientHandler.List)
		ingredients.GET("/:id/", c.IngredientHandler.Get)
	}
}

// ========================================
// RECIPE ROUTES
// ========================================
func setupRecipeRoutes(api *gin.RouterGroup, c *container.Container) {
	auth := middleware.AuthMiddleware(c.JWTManager)

	recipes := api.Group("/recipes")
	recipes.Use(middleware.OptionalAuth(c.JWTManager))
	{
		// Public reads
		recipes.GET("/", c.RecipeHandler.List)
		recipes.GET("/:id/", c.RecipeHandler.Get)

		// Authenticated writes; author or admin is checked in the service
		recipes.POST("/", auth, c.RecipeHandler.Create)
		recipes.PATCH("/:id/", auth, c.RecipeHandler.Update)
		recipes.DELETE("/:id/", auth, c.RecipeHandler.Delete)

		recipes.GET("/download_shopping_cart/", auth, c.CollectionHandler.DownloadShoppingCart)
		recipes.POST("/:id/favorite/", auth, c.CollectionHandler.AddFavorite)
		recipes.DELETE("/:id/favorite/", auth, c.CollectionHandler.RemoveFavorite)
		recipes.POST("/:id/shopping_cart/", auth, c.CollectionHandler.AddToCart)
		recipes.DELETE("/:id/shopping_cart/", auth, c.CollectionHandler.RemoveFromCart)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		// Check database
		dbStatus := "ok"
		if err := appCtx.DB.HealthCheck(ctx); err != nil {
			dbStatus = fmt.Sprintf("error: %v", err)
			health["status"] = "degraded"
		}

		// Check redis
		redisStatus := "ok"
		if err := appCtx.Cache.Ping(ctx); err != nil {
			redisStatus = fmt.Sprintf("error: %v", err)
			health["status"] = "degraded"
		}

		// Check object storage
		storageStatus := "ok"
		if err := appCtx.Storage.Ping(ctx); err != nil {
			storageStatus = fmt.Sprintf("error: %v", err)
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
			"storage":  storageStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
