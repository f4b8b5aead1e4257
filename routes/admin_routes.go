package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/quickserve/quickserve_backend/controllers"
	"github.com/quickserve/quickserve_backend/middleware"
)

// RegisterAdminRoutes registers the admin-only routes
func RegisterAdminRoutes(e *echo.Echo, db *mongo.Client) {
	adminController := controllers.NewAdminController(db)

	admin := e.Group("/api/admin")
	admin.Use(middleware.JWTMiddleware())
	admin.Use(middleware.RequireRole("admin"))

	admin.GET("/providers", adminController.GetAllProviders)
	admin.GET("/providers/pending", adminController.GetPendingProviders)
	admin.GET("/providers/approved", adminController.GetApprovedProviders)
	admin.PUT("/providers/approve/:id", adminController.ApproveProvider)
	admin.PUT("/providers/reject/:id", adminController.RejectProvider)
	admin.GET("/users", adminController.GetAllUsers)
	admin.GET("/bookings", adminController.GetAllBookings)
	admin.GET("/dashboard", adminController.GetDashboard)
}
