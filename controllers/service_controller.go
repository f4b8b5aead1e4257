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

// ServiceController handles the service catalog endpoints
type ServiceController struct {
	db *mongo.Client
}

// NewServiceController creates a new service controller
func NewServiceController(db *mongo.Client) *ServiceController {
	return &ServiceController{db: db}
}

// GetServices lists active catalog entries, name ascending (public)
func (sc *ServiceController) GetServices(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(sc.db, "services")
	cursor, err := collection.Find(ctx, bson.M{"isActive": true},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to retrieve services",
		})
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to decode services",
		})
	}

	return c.JSON(http.StatusOK, models.ServicesResponse{
		Success:  true,
		Count:    len(services),
		Services: services,
	})
}

// GetService returns one catalog entry (public)
func (sc *ServiceController) GetService(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	serviceID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid service ID",
		})
	}

	var service models.Service
	err = config.GetCollection(sc.db, "services").FindOne(ctx, bson.M{"_id": serviceID}).Decode(&service)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{
				Message: "Service not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to find service",
		})
	}

	return c.JSON(http.StatusOK, models.ServiceResponse{
		Success: true,
		Service: &service,
	})
}

// GetAllServices lists every catalog entry including inactive ones (admin)
func (sc *ServiceController) GetAllServices(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(sc.db, "services")
	cursor, err := collection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to retrieve services",
		})
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to decode services",
		})
	}

	return c.JSON(http.StatusOK, models.ServicesResponse{
		Success:  true,
		Count:    len(services),
		Services: services,
	})
}

// CreateService adds a catalog entry (admin)
func (sc *ServiceController) CreateService(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.ServiceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Service name is required",
		})
	}

	collection := config.GetCollection(sc.db, "services")

	count, err := collection.CountDocuments(ctx, bson.M{"name": req.Name})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to check existing services",
		})
	}
	if count > 0 {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "A service with this name already exists",
		})
	}

	now := time.Now()
	service := models.Service{
		ID:          primitive.NewObjectID(),
		Name:        utils.SanitizeInput(req.Name),
		Description: utils.SanitizeInput(req.Description),
		Icon:        req.Icon,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err = collection.InsertOne(ctx, service)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Message: "A service with this name already exists",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to create service",
		})
	}

	return c.JSON(http.StatusCreated, models.ServiceResponse{
		Success: true,
		Message: "Service created successfully",
		Service: &service,
	})
}

// UpdateService partially updates a catalog entry (admin)
func (sc *ServiceController) UpdateService(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	serviceID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid service ID",
		})
	}

	var req models.UpdateServiceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid request body",
		})
	}

	update := bson.M{"updatedAt": time.Now()}
	if req.Name != "" {
		update["name"] = utils.SanitizeInput(req.Name)
	}
	if req.Description != "" {
		update["description"] = utils.SanitizeInput(req.Description)
	}
	if req.Icon != "" {
		update["icon"] = req.Icon
	}
	if req.IsActive != nil {
		update["isActive"] = *req.IsActive
	}

	var service models.Service
	err = config.GetCollection(sc.db, "services").FindOneAndUpdate(ctx,
		bson.M{"_id": serviceID},
		bson.M{"$set": update},
		mongoReturnUpdated(),
	).Decode(&service)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{
				Message: "Service not found",
			})
		}
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Message: "A service with this name already exists",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to update service",
		})
	}

	return c.JSON(http.StatusOK, models.ServiceResponse{
		Success: true,
		Message: "Service updated successfully",
		Service: &service,
	})
}

// ToggleService flips a catalog entry's active flag (admin)
func (sc *ServiceController) ToggleService(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	serviceID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid service ID",
		})
	}

	collection := config.GetCollection(sc.db, "services")

	var service models.Service
	err = collection.FindOne(ctx, bson.M{"_id": serviceID}).Decode(&service)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{
				Message: "Service not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to find service",
		})
	}

	err = collection.FindOneAndUpdate(ctx,
		bson.M{"_id": serviceID},
		bson.M{"$set": bson.M{"isActive": !service.IsActive, "updatedAt": time.Now()}},
		mongoReturnUpdated(),
	).Decode(&service)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to update service",
		})
	}

	return c.JSON(http.StatusOK, models.ServiceResponse{
		Success: true,
		Message: "Service status updated",
		Service: &service,
	})
}

// DeleteService removes a catalog entry (admin)
func (sc *ServiceController) DeleteService(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	serviceID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid service ID",
		})
	}

	result, err := config.GetCollection(sc.db, "services").DeleteOne(ctx, bson.M{"_id": serviceID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to delete service",
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.ErrorResponse{
			Message: "Service not found",
		})
	}

	return c.JSON(http.StatusOK, models.MessageResponse{
		Success: true,
		Message: "Service deleted successfully",
	})
}
