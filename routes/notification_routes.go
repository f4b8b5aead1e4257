package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/quickserve/quickserve_backend/controllers"
	"github.com/quickserve/quickserve_backend/middleware"
)

// RegisterNotificationRoutes registers notification routes
func RegisterNotificationRoutes(e *echo.Echo, db *mongo.Client) {
	notificationController := controllers.NewNotificationController(db)

	notification := e.Group("/api/notification")
	notification.Use(middleware.JWTMiddleware())

	notification.POST("/create", notificationController.CreateNotification)
	notification.GET("/my-notifications", notificationController.GetMyNotifications)
	notification.GET("/unread", notificationController.GetUnread)
	notification.GET("/unread-count", notificationController.GetUnreadCount)
	notification.PUT("/mark-read/:id", notificationController.MarkRead)
	notification.PUT("/mark-all-read", notificationController.MarkAllRead)
	notification.DELETE("/delete/:id", notificationController.DeleteNotification)
	notification.DELETE("/delete-all-read", notificationController.DeleteAllRead)
}
