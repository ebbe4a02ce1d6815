package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodgram-backend/internal/infrastructure/metrics"
	"foodgram-backend/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.GET("/whoami/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  CurrentUserID(c),
			"is_admin": IsAdmin(c),
		})
	})
	r.GET("/boom", func(c *gin.Context) { panic("boom") })
	return r
}

func doRequest(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	manager := jwt.NewManager("secret", time.Hour)
	token, err := manager.GenerateAccessToken(5, jwt.RoleAdmin)
	require.NoError(t, err)

	r := newRouter(AuthMiddleware(manager))

	t.Run("missing token", func(t *testing.T) {
		w := doRequest(r, "/whoami/1", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"detail":"Authentication credentials were not provided."}`, w.Body.String())
	})

	t.Run("garbage token", func(t *testing.T) {
		w := doRequest(r, "/whoami/1", "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		w := doRequest(r, "/whoami/1", token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id":5,"is_admin":true}`, w.Body.String())
	})
}

func TestOptionalAuth(t *testing.T) {
	manager := jwt.NewManager("secret", time.Hour)
	r := newRouter(OptionalAuth(manager))

	w := doRequest(r, "/whoami/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":0,"is_admin":false}`, w.Body.String())

	w = doRequest(r, "/whoami/1", "broken")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestID(t *testing.T) {
	r := newRouter(RequestID())

	w := doRequest(r, "/whoami/1", "")
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/whoami/1", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
}

func TestRecovery(t *testing.T) {
	r := newRouter(Recovery())

	w := doRequest(r, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"detail":"Internal server error"}`, w.Body.String())
}

func TestPrometheusMetrics_UsesRouteTemplate(t *testing.T) {
	r := newRouter(PrometheusMetrics())
	counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, "/whoami/:id", "200")
	before := testutil.ToFloat64(counter)

	doRequest(r, "/whoami/1", "")
	doRequest(r, "/whoami/2", "")

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestAdminMiddleware(t *testing.T) {
	manager := jwt.NewManager("secret", time.Hour)
	admin, err := manager.GenerateAccessToken(1, jwt.RoleAdmin)
	require.NoError(t, err)
	regular, err := manager.GenerateAccessToken(2, "user")
	require.NoError(t, err)

	r := newRouter(AuthMiddleware(manager), AdminMiddleware())

	assert.Equal(t, http.StatusOK, doRequest(r, "/whoami/1", admin).Code)

	w := doRequest(r, "/whoami/1", regular)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"detail":"You do not have permission to perform this action."}`, w.Body.String())
}
