package middleware

import (
	"github.com/gin-gonic/gin"

	"foodgram-backend/internal/shared/apperror"
	"foodgram-backend/internal/shared/response"
)

// AdminMiddleware checks if user has admin role. Must run after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			response.Forbidden(c, apperror.ErrPermissionDenied.Message)
			return
		}
		c.Next()
	}
}
