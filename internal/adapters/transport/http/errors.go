package http

import (
	"net/http"

	customErrors "github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/auth/errors"
	"github.com/gin-gonic/gin"
)

// abortWithError maps a service error onto an HTTP status with a generic
// body. Credential failures never echo which part was wrong.
func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)

	switch {
	case customErrors.IsInvalidArgument(err):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
	case customErrors.IsInvalidCredentials(err):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "invalid email or password"})
	case customErrors.IsNotConfirmed(err):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "email not confirmed"})
	case customErrors.IsTokenError(err),
		customErrors.IsRevoked(err),
		customErrors.IsUnknownSubject(err),
		customErrors.IsStaleRefreshToken(err):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "could not validate credentials"})
	case customErrors.IsAlreadyExists(err):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"detail": "already exists"})
	case customErrors.IsNotFound(err):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"detail": "not found"})
	case customErrors.IsServiceUnavailable(err):
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"detail": "service temporarily unavailable"})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
	}
}
