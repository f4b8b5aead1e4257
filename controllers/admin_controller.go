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
	"github.com/quickserve/quickserve_backend/models"
	"github.com/quickserve/quickserve_backend/utils"
)

// AdminController handles admin-only API endpoints. Route registration
// wraps the whole group in the admin role gate.
type AdminController struct {
	db *mongo.Client
}

// NewAdminController creates a new admin controller
func NewAdminController(db *mongo.Client) *AdminController {
	return &AdminController{db: db}
}

// DashboardCounts are the aggregate numbers shown on the admin dashboard
type DashboardCounts struct {
	Users            int64 `json:"users"`
	Providers        int64 `json:"providers"`
	PendingProviders int64 `json:"pendingProviders"`
	Bookings         int64 `json:"bookings"`
	Reviews          int64 `json:"reviews"`
}

// DashboardResponse model
type DashboardResponse struct {
	Success bool            `json:"success"`
	Counts  DashboardCounts `json:"counts"`
}

func (ac *AdminController) listProviders(c echo.Context, filter bson.M) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := config.GetCollection(ac.db, "providers").Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
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

	joined, err := attachOwners(ctx, ac.db, providers)
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

// GetAllProviders lists every provider profile
func (ac *AdminController) GetAllProviders(c echo.Context) error {
	return ac.listProviders(c, bson.M{})
}

// GetPendingProviders lists providers awaiting approval
func (ac *AdminController) GetPendingProviders(c echo.Context) error {
	return ac.listProviders(c, bson.M{"approved": false})
}

// GetApprovedProviders lists approved providers
func (ac *AdminController) GetApprovedProviders(c echo.Context) error {
	return ac.listProviders(c, bson.M{"approved": true})
}

// setApproval flips a provider's approved flag and notifies its owner
func (ac *AdminController) setApproval(c echo.Context, approved bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	providerID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid provider ID",
		})
	}

	var provider models.Provider
	err = config.GetCollection(ac.db, "providers").FindOneAndUpdate(ctx,
		bson.M{"_id": providerID},
		bson.M{"$set": bson.M{"approved": approved, "updatedAt": time.Now()}},
		mongoReturnUpdated(),
	).Decode(&provider)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{
				Message: "Provider not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to update provider",
		})
	}

	var owner models.User
	err = config.GetCollection(ac.db, "users").FindOne(ctx, bson.M{"_id": provider.UserID}).Decode(&owner)
	if err == nil {
		utils.NotifyProviderDecision(ac.db, &provider, &owner, approved)
	} else {
		c.Logger().Errorf("failed to load provider owner %s: %v", provider.UserID.Hex(), err)
	}

	message := "Provider approved successfully"
	if !approved {
		message = "Provider rejected"
	}

	return c.JSON(http.StatusOK, models.ProviderResponse{
		Success:  true,
		Message:  message,
		Provider: &provider,
	})
}

// ApproveProvider approves a provider profile
func (ac *AdminController) ApproveProvider(c echo.Context) error {
	return ac.setApproval(c, true)
}

// RejectProvider rejects a provider profile
func (ac *AdminController) RejectProvider(c echo.Context) error {
	return ac.setApproval(c, false)
}

// GetAllUsers lists every user account, passwords stripped
func (ac *AdminController) GetAllUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := config.GetCollection(ac.db, "users").Find(ctx, bson.M{},
		options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetProjection(bson.M{"password": 0}))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to retrieve users",
		})
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to decode users",
		})
	}

	return c.JSON(http.StatusOK, models.UsersResponse{
		Success: true,
		Count:   len(users),
		Users:   users,
	})
}

// GetAllBookings lists every booking
func (ac *AdminController) GetAllBookings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := config.GetCollection(ac.db, "bookings").Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to retrieve bookings",
		})
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to decode bookings",
		})
	}

	return c.JSON(http.StatusOK, models.BookingsResponse{
		Success:  true,
		Count:    len(bookings),
		Bookings: bookings,
	})
}

// GetDashboard returns aggregate counts for the admin dashboard
func (ac *AdminController) GetDashboard(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var counts DashboardCounts
	var err error

	if counts.Users, err = config.GetCollection(ac.db, "users").CountDocuments(ctx, bson.M{}); err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to compute dashboard counts",
		})
	}
	if counts.Providers, err = config.GetCollection(ac.db, "providers").CountDocuments(ctx, bson.M{}); err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to compute dashboard counts",
		})
	}
	if counts.PendingProviders, err = config.GetCollection(ac.db, "providers").CountDocuments(ctx, bson.M{"approved": false}); err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to compute dashboard counts",
		})
	}
	if counts.Bookings, err = config.GetCollection(ac.db, "bookings").CountDocuments(ctx, bson.M{}); err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to compute dashboard counts",
		})
	}
	if counts.Reviews, err = config.GetCollection(ac.db, "reviews").CountDocuments(ctx, bson.M{}); err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to compute dashboard counts",
		})
	}

	return c.JSON(http.StatusOK, DashboardResponse{
		Success: true,
		Counts:  counts,
	})
}
