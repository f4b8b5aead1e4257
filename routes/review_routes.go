package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/quickserve/quickserve_backend/controllers"
	"github.com/quickserve/quickserve_backend/middleware"
)

// RegisterReviewRoutes registers review routes
func RegisterReviewRoutes(e *echo.Echo, db *mongo.Client) {
	reviewController := controllers.NewReviewController(db)

	// Public per-provider listing
	e.GET("/api/review/provider/:providerId", reviewController.GetProviderReviews)

	review := e.Group("/api/review")
	review.Use(middleware.JWTMiddleware())

	review.POST("/add", reviewController.AddReview)
	review.GET("/my-reviews", reviewController.GetMyReviews)
	review.GET("/received", reviewController.GetReceivedReviews)
	review.PUT("/update/:id", reviewController.UpdateReview)
	review.DELETE("/delete/:id", reviewController.DeleteReview)
}
