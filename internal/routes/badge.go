package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pushp314/ecotrack-backend/internal/handlers"
	"github.com/pushp314/ecotrack-backend/internal/middleware"
)

func RegisterBadgeRoutes(r gin.IRouter) {
	badges := r.Group("/badges")
	{
		badges.GET("", handlers.GetBadges)
		badges.POST("", middleware.AuthMiddleware(), middleware.AdminMiddleware(), handlers.AwardBadge)
		badges.POST("/evaluate/:id", middleware.AuthMiddleware(), handlers.EvaluateBadges)
	}
}
