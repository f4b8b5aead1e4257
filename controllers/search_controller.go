package controllers

import (
	"context"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/quickserve/quickserve_backend/config"
	"github.com/quickserve/quickserve_backend/models"
)

// SearchController handles provider search endpoints
type SearchController struct {
	db *mongo.Client
}

// NewSearchController creates a new search controller
func NewSearchController(db *mongo.Client) *SearchController {
	return &SearchController{db: db}
}

// searchParams are the recognized provider search filters
type searchParams struct {
	ServiceType string
	City        string
	State       string
	MinPrice    *float64
	MaxPrice    *float64
	MinRating   *float64
}

// buildSearchFilter translates search params into a Mongo filter.
// Only approved providers are ever returned. City and state are not
// part of the filter; they live on the joined user document and are
// applied in memory after the join.
func buildSearchFilter(p searchParams) bson.M {
	filter := bson.M{"approved": true}

	if p.ServiceType != "" {
		filter["serviceType"] = bson.M{
			"$regex":   regexp.QuoteMeta(p.ServiceType),
			"$options": "i",
		}
	}

	price := bson.M{}
	if p.MinPrice != nil {
		price["$gte"] = *p.MinPrice
	}
	if p.MaxPrice != nil {
		price["$lte"] = *p.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	if p.MinRating != nil {
		filter["rating"] = bson.M{"$gte": *p.MinRating}
	}

	return filter
}

// filterByLocation keeps providers whose owning user's location matches
// the requested city/state (case-insensitive exact match). Empty
// criteria match everything; providers without a user location are
// dropped when a criterion is set.
func filterByLocation(providers []models.ProviderWithUser, city, state string) []models.ProviderWithUser {
	if city == "" && state == "" {
		return providers
	}

	filtered := make([]models.ProviderWithUser, 0, len(providers))
	for _, p := range providers {
		if p.User == nil || p.User.Location == nil {
			continue
		}
		if city != "" && !strings.EqualFold(p.User.Location.City, city) {
			continue
		}
		if state != "" && !strings.EqualFold(p.User.Location.State, state) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func parseFloatParam(c echo.Context, name string) (*float64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// findProviders runs a search filter and joins owner summaries,
// sorted by rating descending.
func (sc *SearchController) findProviders(ctx context.Context, filter bson.M, limit int64) ([]models.ProviderWithUser, error) {
	opts := options.Find().SetSort(bson.D{{Key: "rating", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := config.GetCollection(sc.db, "providers").Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var providers []models.Provider
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, err
	}

	return attachOwners(ctx, sc.db, providers)
}

// SearchProviders searches approved providers by service type, price
// range, minimum rating and location
func (sc *SearchController) SearchProviders(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	params := searchParams{
		ServiceType: c.QueryParam("serviceType"),
		City:        c.QueryParam("city"),
		State:       c.QueryParam("state"),
	}

	var err error
	if params.MinPrice, err = parseFloatParam(c, "minPrice"); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid minPrice",
		})
	}
	if params.MaxPrice, err = parseFloatParam(c, "maxPrice"); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid maxPrice",
		})
	}
	if params.MinRating, err = parseFloatParam(c, "minRating"); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid minRating",
		})
	}

	providers, err := sc.findProviders(ctx, buildSearchFilter(params), 0)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to search providers",
		})
	}

	providers = filterByLocation(providers, params.City, params.State)

	return c.JSON(http.StatusOK, models.ProvidersResponse{
		Success:   true,
		Count:     len(providers),
		Providers: providers,
	})
}

// GetByServiceType lists approved providers for one service type
func (sc *SearchController) GetByServiceType(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	providers, err := sc.findProviders(ctx, buildSearchFilter(searchParams{
		ServiceType: c.Param("serviceType"),
	}), 0)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to search providers",
		})
	}

	return c.JSON(http.StatusOK, models.ProvidersResponse{
		Success:   true,
		Count:     len(providers),
		Providers: providers,
	})
}

// GetByCity lists approved providers located in a city
func (sc *SearchController) GetByCity(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	providers, err := sc.findProviders(ctx, bson.M{"approved": true}, 0)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to search providers",
		})
	}

	providers = filterByLocation(providers, c.Param("city"), "")

	return c.JSON(http.StatusOK, models.ProvidersResponse{
		Success:   true,
		Count:     len(providers),
		Providers: providers,
	})
}

// GetTopRated lists the highest rated approved providers
func (sc *SearchController) GetTopRated(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	limit := int64(10)
	if raw := c.QueryParam("limit"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v <= 0 {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Message: "Invalid limit",
			})
		}
		limit = v
	}

	providers, err := sc.findProviders(ctx, bson.M{"approved": true}, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to retrieve top rated providers",
		})
	}

	return c.JSON(http.StatusOK, models.ProvidersResponse{
		Success:   true,
		Count:     len(providers),
		Providers: providers,
	})
}

// GetNearby lists approved providers in the same state
func (sc *SearchController) GetNearby(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	providers, err := sc.findProviders(ctx, bson.M{"approved": true}, 0)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to search providers",
		})
	}

	providers = filterByLocation(providers, "", c.Param("state"))

	return c.JSON(http.StatusOK, models.ProvidersResponse{
		Success:   true,
		Count:     len(providers),
		Providers: providers,
	})
}
