package controllers

import (
	"context"
	"fmt"
	"log"
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

// BookingController handles booking-related API endpoints
type BookingController struct {
	db *mongo.Client
}

// NewBookingController creates a new booking controller
func NewBookingController(db *mongo.Client) *BookingController {
	return &BookingController{db: db}
}

// bookingTransitions is the allowed status transition table.
// completed and cancelled are terminal.
var bookingTransitions = map[string][]string{
	models.BookingStatusPending:   {models.BookingStatusConfirmed, models.BookingStatusCancelled},
	models.BookingStatusConfirmed: {models.BookingStatusCompleted, models.BookingStatusCancelled},
}

func canTransition(from, to string) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CreateBooking handles the creation of a new booking
func (bc *BookingController) CreateBooking(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	claims := middleware.GetUserFromToken(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "Unauthorized",
		})
	}
	if claims.Role != "user" {
		return c.JSON(http.StatusForbidden, models.ErrorResponse{
			Message: "Only users can create bookings",
		})
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid user ID",
		})
	}

	var req models.BookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Provider, date and time are required",
		})
	}

	providerID, err := primitive.ObjectIDFromHex(req.ProviderID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid provider ID",
		})
	}

	// Check if provider exists
	providersCollection := config.GetCollection(bc.db, "providers")
	var provider models.Provider
	err = providersCollection.FindOne(ctx, bson.M{"_id": providerID}).Decode(&provider)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{
				Message: "Provider not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to find provider",
		})
	}

	// Reject a second booking for the same (user, provider, date, time) tuple
	bookingsCollection := config.GetCollection(bc.db, "bookings")
	count, err := bookingsCollection.CountDocuments(ctx, bson.M{
		"userId":     userID,
		"providerId": providerID,
		"date":       req.Date,
		"time":       req.Time,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to check booking availability",
		})
	}
	if count > 0 {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "You already have a booking with this provider at this time",
		})
	}

	serviceType := req.ServiceType
	if serviceType == "" {
		serviceType = provider.ServiceType
	}

	now := time.Now()
	booking := models.Booking{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		ProviderID:  providerID,
		Date:        req.Date,
		Time:        req.Time,
		ServiceType: serviceType,
		Address:     req.Address,
		Price:       req.Price,
		Status:      models.BookingStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err = bookingsCollection.InsertOne(ctx, booking)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to create booking",
		})
	}

	// Notify the provider's owning user; booking creation succeeds regardless
	refID := booking.ID
	if err := utils.SaveNotification(bc.db, provider.UserID, "booking_request",
		"New booking request",
		fmt.Sprintf("You have a new %s booking request for %s at %s", serviceType, req.Date, req.Time),
		&refID, models.ReferenceBooking); err != nil {
		log.Printf("Failed to save booking notification: %v", err)
	}

	return c.JSON(http.StatusCreated, models.BookingResponse{
		Success: true,
		Message: "Booking created successfully",
		Booking: &booking,
	})
}

// GetMyBookings retrieves all bookings for the authenticated user
func (bc *BookingController) GetMyBookings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "Unauthorized",
		})
	}

	collection := config.GetCollection(bc.db, "bookings")
	cursor, err := collection.Find(ctx, bson.M{"userId": userID},
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

// GetProviderBookings retrieves all bookings assigned to the caller's
// provider profile
func (bc *BookingController) GetProviderBookings(c echo.Context) error {
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
			Message: "Only providers can access this",
		})
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid user ID",
		})
	}

	// Find provider profile
	var provider models.Provider
	err = config.GetCollection(bc.db, "providers").FindOne(ctx, bson.M{"userId": userID}).Decode(&provider)
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

	collection := config.GetCollection(bc.db, "bookings")
	cursor, err := collection.Find(ctx, bson.M{"providerId": provider.ID},
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

// UpdateStatus changes a booking's status. Only the assigned provider may
// do this, and only along the allowed transition table.
func (bc *BookingController) UpdateStatus(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "Unauthorized",
		})
	}

	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid booking ID",
		})
	}

	var req models.BookingStatusUpdateRequest
	if err := c.Bind(&req); err != nil || req.Status == "" {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Status is required",
		})
	}

	collection := config.GetCollection(bc.db, "bookings")

	var booking models.Booking
	err = collection.FindOne(ctx, bson.M{"_id": bookingID}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{
				Message: "Booking not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to find booking",
		})
	}

	// Only the booking's provider may change its status
	var provider models.Provider
	err = config.GetCollection(bc.db, "providers").FindOne(ctx, bson.M{"_id": booking.ProviderID}).Decode(&provider)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to find provider",
		})
	}
	if provider.UserID != userID {
		return c.JSON(http.StatusForbidden, models.ErrorResponse{
			Message: "Only the assigned provider can update this booking",
		})
	}

	if !canTransition(booking.Status, req.Status) {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: fmt.Sprintf("Cannot change booking status from %s to %s", booking.Status, req.Status),
		})
	}

	err = collection.FindOneAndUpdate(ctx,
		bson.M{"_id": bookingID},
		bson.M{"$set": bson.M{"status": req.Status, "updatedAt": time.Now()}},
		mongoReturnUpdated(),
	).Decode(&booking)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to update booking status",
		})
	}

	refID := booking.ID
	if err := utils.SaveNotification(bc.db, booking.UserID, "booking_update",
		"Booking "+req.Status,
		fmt.Sprintf("Your booking for %s at %s is now %s", booking.Date, booking.Time, req.Status),
		&refID, models.ReferenceBooking); err != nil {
		log.Printf("Failed to save booking status notification: %v", err)
	}

	return c.JSON(http.StatusOK, models.BookingResponse{
		Success: true,
		Message: "Booking status updated",
		Booking: &booking,
	})
}

// CancelBooking lets a user cancel their own booking
func (bc *BookingController) CancelBooking(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "Unauthorized",
		})
	}

	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid booking ID",
		})
	}

	collection := config.GetCollection(bc.db, "bookings")

	var booking models.Booking
	err = collection.FindOne(ctx, bson.M{"_id": bookingID}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{
				Message: "Booking not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to find booking",
		})
	}

	if booking.UserID != userID {
		return c.JSON(http.StatusForbidden, models.ErrorResponse{
			Message: "You can only cancel your own bookings",
		})
	}

	err = collection.FindOneAndUpdate(ctx,
		bson.M{"_id": bookingID},
		bson.M{"$set": bson.M{"status": models.BookingStatusCancelled, "updatedAt": time.Now()}},
		mongoReturnUpdated(),
	).Decode(&booking)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to cancel booking",
		})
	}

	return c.JSON(http.StatusOK, models.BookingResponse{
		Success: true,
		Message: "Booking cancelled successfully",
		Booking: &booking,
	})
}
