package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library

	"tube_places/internal/domain" // Domain errors
)

// respondError maps domain errors onto HTTP responses; anything else is logged and reported as msg
func respondError(c *gin.Context, err error, msg string) {
	var ve *domain.ValidationError
	var ue *domain.UniquenessError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": ve.Fields}) // Bad input
	case errors.As(err, &ue):
		c.JSON(http.StatusConflict, gin.H{"error": ue.Field + " already exists"}) // Unique constraint
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"}) // Missing record
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"}) // Not owner or admin
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"}) // Login failure
	default:
		// Log the error with context
		logrus.WithFields(logrus.Fields{
			"path":  c.FullPath(), // Route
			"error": err.Error(),  // Error message
		}).Error(msg)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg}) // Return internal server error
	}
}
