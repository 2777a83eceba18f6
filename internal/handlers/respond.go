package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pushp314/ecotrack-backend/pkg/errors"
	"github.com/pushp314/ecotrack-backend/pkg/logger"
)

// handleServiceError maps a service-layer error onto the response. AppErrors
// carry their own status code and kind; anything else is an opaque 500.
func handleServiceError(c *gin.Context, err error) {
	if appErr, ok := err.(*errors.AppError); ok {
		c.JSON(appErr.Code, gin.H{
			"error": appErr.Message,
			"kind":  appErr.Kind,
		})
		return
	}

	logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled service error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// authedUserID pulls the authenticated user's id out of the context.
func authedUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID.(string), true
}
