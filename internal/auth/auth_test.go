package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)

	token, err := issuer.Issue("user-1", "admin@example.com", "Admin", "SUPER_ADMIN")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "SUPER_ADMIN", claims.Role)
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := NewIssuer("secret-a", time.Hour).Issue("user-1", "", "", "ADMIN")
	require.NoError(t, err)

	_, err = NewIssuer("secret-b", time.Hour).Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }
	token, err := issuer.Issue("user-1", "", "", "ADMIN")
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "hunter22"))
	assert.False(t, CheckPassword(hash, "hunter23"))
}

func newAuthTestRouter(t *testing.T, issuer *Issuer) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware := NewMiddleware(issuer)
	router := gin.New()
	router.GET("/admin/ping",
		middleware.Authenticate(),
		middleware.RequireRole("SUPER_ADMIN"),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)
	return router
}

func TestMiddleware_MissingToken(t *testing.T) {
	router := newAuthTestRouter(t, NewIssuer("s", time.Hour))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/ping", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthorized - Please login"}`, rec.Body.String())
}

func TestMiddleware_WrongRole(t *testing.T) {
	issuer := NewIssuer("s", time.Hour)
	router := newAuthTestRouter(t, issuer)
	token, err := issuer.Issue("user-1", "", "", "CUSTOMER")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMiddleware_Allows(t *testing.T) {
	issuer := NewIssuer("s", time.Hour)
	router := newAuthTestRouter(t, issuer)
	token, err := issuer.Issue("user-1", "", "", "SUPER_ADMIN")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
