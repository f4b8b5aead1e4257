package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/quickserve/quickserve_backend/controllers"
	"github.com/quickserve/quickserve_backend/middleware"
)

// RegisterAuthRoutes registers registration, login and current-user routes
func RegisterAuthRoutes(e *echo.Echo, db *mongo.Client) {
	authController := controllers.NewAuthController(db)

	auth := e.Group("/api/auth")
	auth.POST("/register", authController.Register)
	auth.POST("/login", authController.Login)

	protected := e.Group("/api/auth")
	protected.Use(middleware.JWTMiddleware())
	protected.GET("/me", authController.Me)
}
