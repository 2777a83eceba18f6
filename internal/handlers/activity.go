package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pushp314/ecotrack-backend/internal/database"
	"github.com/pushp314/ecotrack-backend/internal/models"
	"github.com/pushp314/ecotrack-backend/internal/services"
)

type CreateActivityRequest struct {
	Type         models.ActivityType `json:"type" binding:"required"`
	CarbonOffset float64             `json:"carbonOffset" binding:"required"`
	Location     json.RawMessage     `json:"location"`
	Metadata     json.RawMessage     `json:"metadata"`
}

// GetActivities lists activities, optionally scoped to one user.
func GetActivities(c *gin.Context) {
	query := database.DB.Model(&models.Activity{}).Preload("User")

	if userID := c.Query("userId"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("verification_status = ?", status)
	}

	var activities []models.Activity
	if err := query.Order("created_at desc").Find(&activities).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activities"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"activities": activities})
}

// CreateActivity records a new eco-action for the authenticated user. The
// activity starts PENDING; verification is a separate, reviewed step.
func CreateActivity(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	var req CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	activity, err := services.RecordActivity(userID, req.Type, req.CarbonOffset, rawToString(req.Location), rawToString(req.Metadata))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Activity created successfully",
		"activity": activity,
	})
}

// VerifyActivity marks a pending activity VERIFIED. Reviewer-only.
func VerifyActivity(c *gin.Context) {
	activity, err := services.VerifyActivity(c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"activity": activity})
}

// RejectActivity marks a pending activity REJECTED. Reviewer-only.
func RejectActivity(c *gin.Context) {
	activity, err := services.RejectActivity(c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"activity": activity})
}

func rawToString(raw json.RawMessage) *string {
	if len(raw) == 0 {
		return nil
	}
	s := string(raw)
	return &s
}
