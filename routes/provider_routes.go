package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/quickserve/quickserve_backend/controllers"
	"github.com/quickserve/quickserve_backend/middleware"
)

// RegisterProviderRoutes registers provider profile routes
func RegisterProviderRoutes(e *echo.Echo, db *mongo.Client) {
	providerController := controllers.NewProviderController(db)

	// Public browse endpoint
	e.GET("/api/provider/all", providerController.GetAllProviders)

	provider := e.Group("/api/provider")
	provider.Use(middleware.JWTMiddleware())

	provider.POST("/create", providerController.CreateProfile)
	provider.GET("/me", providerController.GetMyProfile)
	provider.PUT("/update", providerController.UpdateProfile)
}
