package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/quickserve/quickserve_backend/config"
	"github.com/quickserve/quickserve_backend/middleware"
	"github.com/quickserve/quickserve_backend/models"
	"github.com/quickserve/quickserve_backend/utils"
)

// ProviderController handles provider profile endpoints
type ProviderController struct {
	db *mongo.Client
}

// NewProviderController creates a new provider controller
func NewProviderController(db *mongo.Client) *ProviderController {
	return &ProviderController{db: db}
}

// CreateProfile creates a provider profile for the authenticated provider
// account. Approval defaults to false until an admin approves it.
func (pc *ProviderController) CreateProfile(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	claims := middleware.GetUserFromToken(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "Unauthorized",
		})
	}
	if claims.Role != "provider" {
		return c.JSON(http.StatusForbidden, models.ErrorResponse{
			Message: "Only users with provider role can create profile",
		})
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid user ID",
		})
	}

	var req models.ProviderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Service type, experience and price are required",
		})
	}

	collection := config.GetCollection(pc.db, "providers")

	// One profile per user
	count, err := collection.CountDocuments(ctx, bson.M{"userId": userID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to check existing profile",
		})
	}
	if count > 0 {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Provider profile already exists",
		})
	}

	now := time.Now()
	provider := models.Provider{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		ServiceType: req.ServiceType,
		Experience:  req.Experience,
		Price:       req.Price,
		Rating:      0,
		Approved:    false,
		Bio:         req.Bio,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err = collection.InsertOne(ctx, provider)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Message: "Provider profile already exists",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to create provider profile",
		})
	}

	return c.JSON(http.StatusCreated, models.ProviderResponse{
		Success:  true,
		Message:  "Provider profile created successfully",
		Provider: &provider,
	})
}

// GetMyProfile returns the authenticated provider's profile with its owner
func (pc *ProviderController) GetMyProfile(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "Unauthorized",
		})
	}

	collection := config.GetCollection(pc.db, "providers")

	var provider models.Provider
	err = collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&provider)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{
				Message: "Provider profile not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to find provider profile",
		})
	}

	joined, err := attachOwners(ctx, pc.db, []models.Provider{provider})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to load provider owner",
		})
	}

	return c.JSON(http.StatusOK, models.ProviderWithUserResponse{
		Success:  true,
		Provider: &joined[0],
	})
}

// UpdateProfile applies a partial update to the authenticated provider's
// profile. Absent fields retain their previous values.
func (pc *ProviderController) UpdateProfile(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "Unauthorized",
		})
	}

	var req models.UpdateProviderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid request body",
		})
	}

	update := bson.M{"updatedAt": time.Now()}
	if req.ServiceType != "" {
		update["serviceType"] = req.ServiceType
	}
	if req.Experience != 0 {
		update["experience"] = req.Experience
	}
	if req.Price != 0 {
		update["price"] = req.Price
	}
	if req.Bio != "" {
		update["bio"] = req.Bio
	}

	collection := config.GetCollection(pc.db, "providers")

	var provider models.Provider
	err = collection.FindOneAndUpdate(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": update},
		mongoReturnUpdated(),
	).Decode(&provider)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{
				Message: "Provider profile not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to update provider profile",
		})
	}

	return c.JSON(http.StatusOK, models.ProviderResponse{
		Success:  true,
		Message:  "Provider profile updated successfully",
		Provider: &provider,
	})
}

// GetAllProviders returns all approved providers (public)
func (pc *ProviderController) GetAllProviders(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(pc.db, "providers")

	cursor, err := collection.Find(ctx, bson.M{"approved": true},
		options.Find().SetSort(bson.D{{Key: "rating", Value: -1}}))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to retrieve providers",
		})
	}
	defer cursor.Close(ctx)

	var providers []models.Provider
	if err := cursor.All(ctx, &providers); err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to decode providers",
		})
	}

	joined, err := attachOwners(ctx, pc.db, providers)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to load provider owners",
		})
	}

	return c.JSON(http.StatusOK, models.ProvidersResponse{
		Success:   true,
		Count:     len(joined),
		Providers: joined,
	})
}
