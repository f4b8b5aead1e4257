package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/quickserve/quickserve_backend/controllers"
)

// RegisterSearchRoutes registers the public provider search routes
func RegisterSearchRoutes(e *echo.Echo, db *mongo.Client) {
	searchController := controllers.NewSearchController(db)

	search := e.Group("/api/search")
	search.GET("/providers", searchController.SearchProviders)
	search.GET("/service/:serviceType", searchController.GetByServiceType)
	search.GET("/location/:city", searchController.GetByCity)
	search.GET("/top-rated", searchController.GetTopRated)
	search.GET("/nearby/:state", searchController.GetNearby)
}
