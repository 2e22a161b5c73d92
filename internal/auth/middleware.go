package auth

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vacansy/vacansy-api/internal/models"
)

const callerKey = "caller"

// bearerToken extracts the credential from "Authorization: Bearer <token>".
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// RequireAuth rejects the request before the handler runs unless it carries
// a valid token.
func RequireAuth(issuer *TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token provided"})
			return
		}
		caller, err := issuer.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}
		c.Set(callerKey, caller)
		c.Next()
	}
}

// OptionalAuth attaches whatever caller the credential resolves to. A
// missing or invalid token means the anonymous caller; it never aborts.
func OptionalAuth(issuer *TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(callerKey, issuer.ResolveCaller(bearerToken(c)))
		c.Next()
	}
}

// RequireRoles runs after RequireAuth and rejects callers outside the
// permitted set.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := CallerFrom(c)
		if caller.IsAnonymous() || !slices.Contains(roles, caller.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Denied"})
			return
		}
		c.Next()
	}
}

// CallerFrom reads the caller attached by the middlewares; anonymous when
// no auth middleware ran.
func CallerFrom(c *gin.Context) Caller {
	v, ok := c.Get(callerKey)
	if !ok {
		return Anonymous
	}
	caller, ok := v.(Caller)
	if !ok {
		return Anonymous
	}
	return caller
}
