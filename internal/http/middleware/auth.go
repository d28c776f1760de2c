// README: Firebase ID-token auth middleware; exposes the caller uid and role to handlers.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"skybook/internal/infra"
)

const (
	uidKey  = "caller_uid"
	roleKey = "caller_role"
)

// Auth rejects requests without a verifiable "Bearer <Firebase ID token>" header.
func Auth(verifier infra.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		caller, err := verifier.VerifyIDToken(c.Request.Context(), strings.TrimSpace(raw))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(uidKey, caller.UID)
		if caller.Role != "" {
			c.Set(roleKey, caller.Role)
		}
		c.Next()
	}
}

// CallerUID is "" for anonymous requests.
func CallerUID(c *gin.Context) string {
	return c.GetString(uidKey)
}

func CallerRole(c *gin.Context) string {
	return c.GetString(roleKey)
}
