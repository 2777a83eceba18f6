package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pushp314/ecotrack-backend/internal/handlers"
	"github.com/pushp314/ecotrack-backend/internal/middleware"
)

func RegisterCreditRoutes(r gin.IRouter) {
	credits := r.Group("/carbon-credits")
	{
		credits.GET("", handlers.GetCarbonCredits)
		credits.POST("", middleware.AuthMiddleware(), handlers.CreateCarbonCredit)
		credits.POST("/:id/retire", middleware.AuthMiddleware(), handlers.RetireCarbonCredit)
	}
}
