package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pushp314/ecotrack-backend/internal/database"
	"github.com/pushp314/ecotrack-backend/internal/models"
	"github.com/pushp314/ecotrack-backend/internal/services"
)

type AwardBadgeRequest struct {
	UserID  string `json:"userId" binding:"required"`
	BadgeID string `json:"badgeId" binding:"required"`
}

// GetBadges lists badge definitions, or a user's earned badges when userId
// is given.
func GetBadges(c *gin.Context) {
	if userID := c.Query("userId"); userID != "" {
		userBadges, err := services.GetUserBadges(userID)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"userBadges": userBadges})
		return
	}

	query := database.DB.Model(&models.Badge{})
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", strings.ToUpper(category))
	}

	var badges []models.Badge
	if err := query.Order("created_at asc").Find(&badges).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch badges"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"badges": badges})
}

// AwardBadge grants a badge directly. Admin-only; rule-based grants go
// through evaluation on activity verification.
func AwardBadge(c *gin.Context) {
	var req AwardBadgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	userBadge, err := services.AwardBadge(req.UserID, req.BadgeID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Badge awarded successfully",
		"userBadge": userBadge,
	})
}

// EvaluateBadges re-runs the rule predicates for a user and returns any newly
// granted badges.
func EvaluateBadges(c *gin.Context) {
	granted, err := services.EvaluateBadges(c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"newBadges": granted})
}
