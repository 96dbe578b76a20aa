package adminserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/laundromart/admin-api/internal/auth"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Header("X-Request-Tagged", "1")
		c.Next()
	})
	issuer := auth.NewIssuer("test-secret", 0)
	return NewRouterWithGinEngine(engine, ApiHandleFunctions{}, auth.NewMiddleware(issuer))
}

func TestRouterEngineMiddlewareWrapsRoutes(t *testing.T) {
	router := newTestRouter(t)

	// Public route: pre-registered engine middleware runs before the handler.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-Request-Tagged"))
	assert.JSONEq(t, `{"error":"Email and password are required"}`, rec.Body.String())

	// Admin route: same middleware applies ahead of the auth guard.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-Request-Tagged"))
}

func TestRouterStaticRouteBeatsWildcard(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/laundries/performance", nil)
	router.ServeHTTP(rec, req)

	// Resolves to the leaderboard, not GetLaundry with id "performance",
	// and still passes through the auth guard first.
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
