package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pushp314/ecotrack-backend/internal/handlers"
	"github.com/pushp314/ecotrack-backend/internal/middleware"
)

func RegisterMarketplaceRoutes(r gin.IRouter) {
	marketplace := r.Group("/marketplace")
	{
		marketplace.GET("", handlers.GetOrders)
		marketplace.POST("", middleware.AuthMiddleware(), handlers.CreateOrder)
		marketplace.POST("/:id/cancel", middleware.AuthMiddleware(), handlers.CancelOrder)
		marketplace.POST("/:id/fill", middleware.AuthMiddleware(), handlers.FillOrder)
	}
}
