package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/quickserve/quickserve_backend/controllers"
	"github.com/quickserve/quickserve_backend/middleware"
)

// RegisterUserRoutes registers profile and account management routes
func RegisterUserRoutes(e *echo.Echo, db *mongo.Client) {
	userController := controllers.NewUserController(db)

	user := e.Group("/api/user")
	user.Use(middleware.JWTMiddleware())

	user.GET("/profile", userController.GetProfile)
	user.PUT("/profile", userController.UpdateProfile)
	user.PUT("/change-password", userController.ChangePassword)
	user.PUT("/deactivate", userController.DeactivateAccount)
	user.PUT("/activate", userController.ActivateAccount)
}
