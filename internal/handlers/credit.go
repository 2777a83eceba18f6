package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pushp314/ecotrack-backend/internal/database"
	"github.com/pushp314/ecotrack-backend/internal/models"
	"github.com/pushp314/ecotrack-backend/internal/services"
)

type IssueCreditRequest struct {
	UserID     string  `json:"userId"`
	ActivityID *string `json:"activityId"`
	Amount     float64 `json:"amount" binding:"required"`
	TokenID    *string `json:"tokenId"`
}

// GetCarbonCredits lists credits, optionally filtered by owner and status.
func GetCarbonCredits(c *gin.Context) {
	credits, err := services.GetCredits(c.Query("userId"), models.CreditStatus(c.Query("status")))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"carbonCredits": credits})
}

// CreateCarbonCredit issues a new credit. A user issues to themselves;
// issuing on behalf of another user requires the admin role.
func CreateCarbonCredit(c *gin.Context) {
	callerID, ok := authedUserID(c)
	if !ok {
		return
	}

	var req IssueCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	targetID := callerID
	if req.UserID != "" && req.UserID != callerID {
		var caller models.User
		if err := database.DB.Select("role").First(&caller, "id = ?", callerID).Error; err != nil || caller.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Cannot issue credits for another user"})
			return
		}
		targetID = req.UserID
	}

	credit, err := services.IssueCredit(targetID, req.Amount, req.ActivityID, req.TokenID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Carbon credit created successfully",
		"carbonCredit": credit,
	})
}

// RetireCarbonCredit permanently takes the caller's credit out of circulation.
func RetireCarbonCredit(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	credit, err := services.RetireCredit(c.Param("id"), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Carbon credit retired",
		"carbonCredit": credit,
	})
}
