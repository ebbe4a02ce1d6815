package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"foodgram-backend/internal/shared/apperror"
	"foodgram-backend/internal/shared/response"
	"foodgram-backend/pkg/jwt"
)

const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

// AuthMiddleware rejects requests without a valid bearer token
func AuthMiddleware(manager *jwt.Manager) gin.HandlerFunc {
	return authenticate(manager, true)
}

// OptionalAuth identifies the caller when a token is sent and lets anonymous requests through.
// A token that is present but invalid is still rejected.
func OptionalAuth(manager *jwt.Manager) gin.HandlerFunc {
	return authenticate(manager, false)
}

func authenticate(manager *jwt.Manager, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Read the Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			if required {
				response.Unauthorized(c, apperror.ErrNotAuthenticated.Message)
				return
			}
			c.Next()
			return
		}

		// 2. Extract token from "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(c, "Invalid authorization header format.")
			return
		}

		// 3. Verify the token
		claims, err := manager.ValidateAccessToken(parts[1])
		if err != nil {
			log.Debug().Err(err).Str("request_id", c.GetString("request_id")).Msg("Rejected bearer token")
			response.Unauthorized(c, "Invalid token.")
			return
		}

		// 4. Expose the caller to handlers
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}

// CurrentUserID returns the authenticated caller, 0 when anonymous
func CurrentUserID(c *gin.Context) int64 {
	if v, ok := c.Get(ContextUserID); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

// IsAdmin reports whether the caller's token carries the admin role
func IsAdmin(c *gin.Context) bool {
	return c.GetString(ContextRole) == jwt.RoleAdmin
}
