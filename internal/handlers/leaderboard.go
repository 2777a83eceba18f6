package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pushp314/ecotrack-backend/internal/models"
	"github.com/pushp314/ecotrack-backend/internal/services"
)

type RecomputeRequest struct {
	UserID string `json:"userId" binding:"required"`
	Period string `json:"period"`
}

// GetLeaderboard returns the ranked entries for a period (default ALL_TIME).
func GetLeaderboard(c *gin.Context) {
	period := models.LeaderboardPeriod(strings.ToUpper(c.DefaultQuery("period", string(models.PeriodAllTime))))

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}

	entries, svcErr := services.GetLeaderboard(period, limit)
	if svcErr != nil {
		handleServiceError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}

// RecomputeLeaderboard rebuilds one user's entry from their activity history.
func RecomputeLeaderboard(c *gin.Context) {
	var req RecomputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	period := models.PeriodAllTime
	if req.Period != "" {
		period = models.LeaderboardPeriod(strings.ToUpper(req.Period))
	}

	entry, err := services.RecomputeLeaderboard(req.UserID, period)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Leaderboard updated successfully",
		"leaderboard": entry,
	})
}
