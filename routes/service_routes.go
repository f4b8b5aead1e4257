package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/quickserve/quickserve_backend/controllers"
	"github.com/quickserve/quickserve_backend/middleware"
)

// RegisterServiceRoutes registers the service catalog routes
func RegisterServiceRoutes(e *echo.Echo, db *mongo.Client) {
	serviceController := controllers.NewServiceController(db)

	// Public catalog
	service := e.Group("/api/service")
	service.GET("", serviceController.GetServices)
	service.GET("/:id", serviceController.GetService)

	// Admin management
	admin := e.Group("/api/service")
	admin.Use(middleware.JWTMiddleware())
	admin.Use(middleware.RequireRole("admin"))
	admin.POST("/create", serviceController.CreateService)
	admin.GET("/admin/all", serviceController.GetAllServices)
	admin.PUT("/update/:id", serviceController.UpdateService)
	admin.PUT("/toggle/:id", serviceController.ToggleService)
	admin.DELETE("/delete/:id", serviceController.DeleteService)
}
