package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/gatekeeper/internal/entities"
)

// ContextKeyUser is the gin context key holding the authenticated *entities.User.
const ContextKeyUser = "auth_current_user"

// Middleware gates requests behind an Authenticator.
type Middleware struct {
	authenticator Authenticator
	excludedPaths []string
}

// NewMiddleware creates a middleware exempting excludedPaths from authentication.
func NewMiddleware(authenticator Authenticator, excludedPaths []string) *Middleware {
	return &Middleware{
		authenticator: authenticator,
		excludedPaths: excludedPaths,
	}
}

// Handler returns a gin handler that rejects unauthenticated requests to
// protected paths: 401 without any credentials, 403 when the credentials
// do not resolve to a user.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.authenticator.RequireAuth(c.Request.URL.Path, m.excludedPaths) {
			c.Next()
			return
		}

		req := GinRequest(c)
		if !m.authenticator.HasCredentials(req) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		user := m.authenticator.CurrentUser(c.Request.Context(), req)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}

		c.Set(ContextKeyUser, user)
		c.Next()
	}
}

// GetUser returns the user stored by Handler, or nil on exempt paths.
func GetUser(c *gin.Context) *entities.User {
	if v, exists := c.Get(ContextKeyUser); exists {
		if user, ok := v.(*entities.User); ok {
			return user
		}
	}
	return nil
}
