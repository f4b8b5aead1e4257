package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/quickserve/quickserve_backend/controllers"
	"github.com/quickserve/quickserve_backend/middleware"
)

// RegisterBookingRoutes registers booking lifecycle routes
func RegisterBookingRoutes(e *echo.Echo, db *mongo.Client) {
	bookingController := controllers.NewBookingController(db)

	booking := e.Group("/api/booking")
	booking.Use(middleware.JWTMiddleware())

	booking.POST("/create", bookingController.CreateBooking)
	booking.GET("/my-bookings", bookingController.GetMyBookings)
	booking.GET("/provider-bookings", bookingController.GetProviderBookings)
	booking.PUT("/update-status/:id", bookingController.UpdateStatus)
	booking.PUT("/cancel/:id", bookingController.CancelBooking)
}
