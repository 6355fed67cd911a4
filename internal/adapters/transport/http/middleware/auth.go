package middleware

import (
	"context"
	"net/http"
	"strings"

	customErrors "github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/auth/errors"
	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/auth/model"
	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// Resolver authenticates a bearer access token.
type Resolver interface {
	Resolve(ctx context.Context, rawToken string) (model.Principal, error)
}

// RequireAuth extracts the bearer token, resolves it and stores the
// Principal in the gin context. Requests without a valid token are aborted.
func RequireAuth(resolver Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := BearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "not authenticated"})
			return
		}

		principal, err := resolver.Resolve(c.Request.Context(), raw)
		if err != nil {
			status := http.StatusUnauthorized
			if customErrors.IsServiceUnavailable(err) {
				status = http.StatusServiceUnavailable
			}
			c.AbortWithStatusJSON(status, gin.H{"detail": "could not validate credentials"})
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// BearerToken pulls the token out of the Authorization header.
func BearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return header[len(prefix):], true
}

// PrincipalFrom returns the Principal stored by RequireAuth.
func PrincipalFrom(c *gin.Context) (model.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return model.Principal{}, false
	}
	p, ok := v.(model.Principal)
	return p, ok
}
