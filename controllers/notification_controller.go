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

// NotificationController handles notification API endpoints
type NotificationController struct {
	db *mongo.Client
}

// NewNotificationController creates a new notification controller
func NewNotificationController(db *mongo.Client) *NotificationController {
	return &NotificationController{db: db}
}

// CreateNotification creates a notification for a user
func (nc *NotificationController) CreateNotification(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.NotificationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "userId, type, title and message are required",
		})
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid user ID",
		})
	}

	refModel := models.ReferenceModel(req.ReferenceModel)
	if refModel != "" && !refModel.Valid() {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid reference model",
		})
	}

	var refID *primitive.ObjectID
	if req.ReferenceID != "" {
		id, err := primitive.ObjectIDFromHex(req.ReferenceID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Message: "Invalid reference ID",
			})
		}
		refID = &id
	}

	notification := models.Notification{
		ID:             primitive.NewObjectID(),
		UserID:         userID,
		Type:           req.Type,
		Title:          utils.SanitizeInput(req.Title),
		Message:        utils.SanitizeInput(req.Message),
		ReferenceID:    refID,
		ReferenceModel: refModel,
		IsRead:         false,
		CreatedAt:      time.Now(),
	}

	_, err = config.GetCollection(nc.db, "notifications").InsertOne(ctx, notification)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to create notification",
		})
	}

	return c.JSON(http.StatusCreated, models.NotificationResponse{
		Success:      true,
		Message:      "Notification created",
		Notification: &notification,
	})
}

func (nc *NotificationController) listNotifications(c echo.Context, extra bson.M) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "Unauthorized",
		})
	}

	filter := bson.M{"userId": userID}
	for k, v := range extra {
		filter[k] = v
	}

	cursor, err := config.GetCollection(nc.db, "notifications").Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to retrieve notifications",
		})
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to decode notifications",
		})
	}

	return c.JSON(http.StatusOK, models.NotificationsResponse{
		Success:       true,
		Count:         len(notifications),
		Notifications: notifications,
	})
}

// GetMyNotifications lists the caller's notifications, newest first
func (nc *NotificationController) GetMyNotifications(c echo.Context) error {
	return nc.listNotifications(c, nil)
}

// GetUnread lists the caller's unread notifications
func (nc *NotificationController) GetUnread(c echo.Context) error {
	return nc.listNotifications(c, bson.M{"isRead": false})
}

// GetUnreadCount returns the number of unread notifications
func (nc *NotificationController) GetUnreadCount(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "Unauthorized",
		})
	}

	count, err := config.GetCollection(nc.db, "notifications").CountDocuments(ctx,
		bson.M{"userId": userID, "isRead": false})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to count notifications",
		})
	}

	return c.JSON(http.StatusOK, models.UnreadCountResponse{
		Success:     true,
		UnreadCount: count,
	})
}

// MarkRead marks one of the caller's notifications as read
func (nc *NotificationController) MarkRead(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "Unauthorized",
		})
	}

	notificationID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid notification ID",
		})
	}

	now := time.Now()
	var notification models.Notification
	err = config.GetCollection(nc.db, "notifications").FindOneAndUpdate(ctx,
		bson.M{"_id": notificationID, "userId": userID},
		bson.M{"$set": bson.M{"isRead": true, "readAt": now}},
		mongoReturnUpdated(),
	).Decode(&notification)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{
				Message: "Notification not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to update notification",
		})
	}

	return c.JSON(http.StatusOK, models.NotificationResponse{
		Success:      true,
		Message:      "Notification marked as read",
		Notification: &notification,
	})
}

// MarkAllRead marks every unread notification of the caller as read
func (nc *NotificationController) MarkAllRead(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "Unauthorized",
		})
	}

	_, err = config.GetCollection(nc.db, "notifications").UpdateMany(ctx,
		bson.M{"userId": userID, "isRead": false},
		bson.M{"$set": bson.M{"isRead": true, "readAt": time.Now()}})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to update notifications",
		})
	}

	return c.JSON(http.StatusOK, models.MessageResponse{
		Success: true,
		Message: "All notifications marked as read",
	})
}

// DeleteNotification removes one of the caller's notifications
func (nc *NotificationController) DeleteNotification(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "Unauthorized",
		})
	}

	notificationID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid notification ID",
		})
	}

	result, err := config.GetCollection(nc.db, "notifications").DeleteOne(ctx,
		bson.M{"_id": notificationID, "userId": userID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to delete notification",
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.ErrorResponse{
			Message: "Notification not found",
		})
	}

	return c.JSON(http.StatusOK, models.MessageResponse{
		Success: true,
		Message: "Notification deleted",
	})
}

// DeleteAllRead removes every read notification of the caller
func (nc *NotificationController) DeleteAllRead(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "Unauthorized",
		})
	}

	_, err = config.GetCollection(nc.db, "notifications").DeleteMany(ctx,
		bson.M{"userId": userID, "isRead": true})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to delete notifications",
		})
	}

	return c.JSON(http.StatusOK, models.MessageResponse{
		Success: true,
		Message: "Read notifications deleted",
	})
}
