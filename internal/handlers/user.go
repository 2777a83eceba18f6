package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pushp314/ecotrack-backend/internal/database"
	"github.com/pushp314/ecotrack-backend/internal/models"
	"github.com/pushp314/ecotrack-backend/internal/services"
)

// ListUsers returns all registered users (public fields only).
func ListUsers(c *gin.Context) {
	var users []models.User
	if err := database.DB.
		Select("id", "email", "username", "role", "wallet_address", "created_at").
		Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GetUser returns one user by id.
func GetUser(c *gin.Context) {
	var user models.User
	if err := database.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// GetUserBadges returns the badges a user has earned, newest first.
func GetUserBadges(c *gin.Context) {
	userBadges, err := services.GetUserBadges(c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"userBadges": userBadges})
}
