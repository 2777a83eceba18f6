package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pushp314/ecotrack-backend/internal/handlers"
	"github.com/pushp314/ecotrack-backend/internal/middleware"
)

func RegisterLeaderboardRoutes(r gin.IRouter) {
	leaderboard := r.Group("/leaderboard")
	{
		leaderboard.GET("", handlers.GetLeaderboard)
		leaderboard.POST("", middleware.AuthMiddleware(), handlers.RecomputeLeaderboard)
	}
}
