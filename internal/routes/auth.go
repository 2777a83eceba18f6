package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pushp314/ecotrack-backend/internal/handlers"
)

func RegisterAuthRoutes(r gin.IRouter) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
	}
}
