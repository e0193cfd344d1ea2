package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/devrajsawant/dev-scrum/internal/identity"
)

// Gin context keys set by SessionAuth.
const (
	CallerKey  = "caller"
	ProfileKey = "profile"
)

// SessionAuth verifies the bearer session token against the identity
// provider and stores the caller identity in the request context. Requests
// without a valid session never reach a handler.
func SessionAuth(provider identity.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing session token"})
			return
		}

		sess, err := provider.VerifySession(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			return
		}

		c.Set(CallerKey, sess.Caller)
		c.Set(ProfileKey, sess.Profile)
		c.Next()
	}
}

// CallerFrom pulls the verified caller out of the gin context.
func CallerFrom(c *gin.Context) (identity.Caller, bool) {
	v, ok := c.Get(CallerKey)
	if !ok {
		return identity.Caller{}, false
	}
	caller, ok := v.(identity.Caller)
	return caller, ok
}

// ProfileFrom pulls the provider profile out of the gin context.
func ProfileFrom(c *gin.Context) (identity.Profile, bool) {
	v, ok := c.Get(ProfileKey)
	if !ok {
		return identity.Profile{}, false
	}
	profile, ok := v.(identity.Profile)
	return profile, ok
}
