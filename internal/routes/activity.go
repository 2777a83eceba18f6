package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pushp314/ecotrack-backend/internal/handlers"
	"github.com/pushp314/ecotrack-backend/internal/middleware"
)

func RegisterActivityRoutes(r gin.IRouter) {
	activities := r.Group("/activities")
	{
		activities.GET("", handlers.GetActivities)
		activities.POST("", middleware.AuthMiddleware(), handlers.CreateActivity)

		// Verification is a reviewed, admin-only step
		activities.PATCH("/:id/verify", middleware.AuthMiddleware(), middleware.AdminMiddleware(), handlers.VerifyActivity)
		activities.PATCH("/:id/reject", middleware.AuthMiddleware(), middleware.AdminMiddleware(), handlers.RejectActivity)
	}
}
