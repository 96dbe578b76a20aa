package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/laundromart/admin-api/internal/shared/apierrors"
)

const claimsContextKey = "auth.claims"

// Middleware verifies the bearer credential on incoming requests and makes
// the claims available to handlers.
type Middleware struct {
	issuer *Issuer
}

// NewMiddleware builds the authentication gate around an issuer.
func NewMiddleware(issuer *Issuer) *Middleware {
	return &Middleware{issuer: issuer}
}

// Authenticate rejects requests without a valid bearer token (401).
func (m *Middleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apierrors.Respond(c, apierrors.ErrUnauthorized)
			c.Abort()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			apierrors.Respond(c, apierrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims, err := m.issuer.Verify(parts[1])
		if err != nil {
			apierrors.Respond(c, apierrors.ErrUnauthorized)
			c.Abort()
			return
		}
		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// RequireRole rejects authenticated requests whose role is not listed (403).
// It must run after Authenticate.
func (m *Middleware) RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	return func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		if claims == nil {
			apierrors.Respond(c, apierrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if !allowed[claims.Role] {
			apierrors.Respond(c, apierrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// ClaimsFromContext returns the verified claims, or nil outside an
// authenticated request.
func ClaimsFromContext(c *gin.Context) *Claims {
	value, ok := c.Get(claimsContextKey)
	if !ok {
		return nil
	}
	claims, ok := value.(*Claims)
	if !ok {
		return nil
	}
	return claims
}
