package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/quickserve/quickserve_backend/config"
	"github.com/quickserve/quickserve_backend/models"
	"github.com/quickserve/quickserve_backend/utils"
)

// UserController handles user profile endpoints
type UserController struct {
	db *mongo.Client
}

// NewUserController creates a new user controller
func NewUserController(db *mongo.Client) *UserController {
	return &UserController{db: db}
}

// GetProfile returns the authenticated user's profile
func (uc *UserController) GetProfile(c echo.Context) error {
	user, err := utils.GetUserFromToken(c, uc.db)
	if err != nil {
		return c.JSON(http.StatusNotFound, models.ErrorResponse{
			Message: "User not found",
		})
	}

	return c.JSON(http.StatusOK, models.UserResponse{
		Success: true,
		User:    user,
	})
}

// UpdateProfile applies a partial update to the authenticated user's profile.
// Absent fields retain their previous values.
func (uc *UserController) UpdateProfile(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "Unauthorized",
		})
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid request body",
		})
	}

	update := bson.M{"updatedAt": time.Now()}
	if req.Name != "" {
		update["name"] = utils.SanitizeInput(req.Name)
	}
	if req.Phone != "" {
		phone, err := utils.SanitizePhone(req.Phone)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Message: "Invalid phone number format",
			})
		}
		update["phone"] = phone
	}
	if req.Location != nil {
		update["location"] = req.Location
	}

	collection := config.GetCollection(uc.db, "users")
	var user models.User
	err = collection.FindOneAndUpdate(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": update},
		mongoReturnUpdated(),
	).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{
				Message: "User not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to update profile",
		})
	}

	user.Password = ""

	return c.JSON(http.StatusOK, models.UserResponse{
		Success: true,
		Message: "Profile updated successfully",
		User:    &user,
	})
}

// ChangePassword verifies the old password and stores a hash of the new one
func (uc *UserController) ChangePassword(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "Unauthorized",
		})
	}

	var req models.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Old and new passwords are required",
		})
	}

	collection := config.GetCollection(uc.db, "users")

	var user models.User
	err = collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		return c.JSON(http.StatusNotFound, models.ErrorResponse{
			Message: "User not found",
		})
	}

	if err := utils.CheckPassword(req.OldPassword, user.Password); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Old password is incorrect",
		})
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to hash password",
		})
	}

	_, err = collection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"password": hashedPassword, "updatedAt": time.Now()}},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to change password",
		})
	}

	return c.JSON(http.StatusOK, models.MessageResponse{
		Success: true,
		Message: "Password changed successfully",
	})
}

// DeactivateAccount marks the authenticated user's account inactive
func (uc *UserController) DeactivateAccount(c echo.Context) error {
	return uc.setActive(c, false, "Account deactivated successfully")
}

// ActivateAccount marks the authenticated user's account active again
func (uc *UserController) ActivateAccount(c echo.Context) error {
	return uc.setActive(c, true, "Account activated successfully")
}

func (uc *UserController) setActive(c echo.Context, active bool, message string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "Unauthorized",
		})
	}

	collection := config.GetCollection(uc.db, "users")
	result, err := collection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"isActive": active, "updatedAt": time.Now()}},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to update account",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.ErrorResponse{
			Message: "User not found",
		})
	}

	return c.JSON(http.StatusOK, models.MessageResponse{
		Success: true,
		Message: message,
	})
}
