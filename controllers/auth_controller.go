package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/quickserve/quickserve_backend/config"
	"github.com/quickserve/quickserve_backend/middleware"
	"github.com/quickserve/quickserve_backend/models"
	"github.com/quickserve/quickserve_backend/utils"
)

// AuthController handles registration, login and session introspection
type AuthController struct {
	db *mongo.Client
}

// NewAuthController creates a new auth controller
func NewAuthController(db *mongo.Client) *AuthController {
	return &AuthController{db: db}
}

// Register creates a new user account
func (ac *AuthController) Register(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid request body",
		})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "All fields are required",
		})
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid email format",
		})
	}
	req.Email = email

	phone, err := utils.SanitizePhone(req.Phone)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid phone number format",
		})
	}
	req.Phone = phone

	role := req.Role
	switch role {
	case "":
		role = "user"
	case "user", "provider":
	default:
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid role",
		})
	}

	collection := config.GetCollection(ac.db, "users")

	// Check if user exists
	count, err := collection.CountDocuments(ctx, bson.M{"email": req.Email})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to check existing user",
		})
	}
	if count > 0 {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "User already exists",
		})
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to hash password",
		})
	}

	now := time.Now()
	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      utils.SanitizeInput(req.Name),
		Email:     req.Email,
		Password:  hashedPassword,
		Phone:     req.Phone,
		Role:      role,
		Location:  req.Location,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = collection.InsertOne(ctx, user)
	if err != nil {
		// The unique email index rejects concurrent duplicates
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Message: "User already exists",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to create user",
		})
	}

	user.Password = ""

	return c.JSON(http.StatusCreated, models.UserResponse{
		Success: true,
		Message: "Registration successful",
		User:    &user,
	})
}

// Login authenticates a user and returns a JWT token
func (ac *AuthController) Login(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid request body",
		})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Email and password are required",
		})
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid email format",
		})
	}

	collection := config.GetCollection(ac.db, "users")

	var user models.User
	err = collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Message: "Invalid credentials",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to find user",
		})
	}

	if err := utils.CheckPassword(req.Password, user.Password); err != nil {
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "Invalid credentials",
		})
	}

	if !user.IsActive {
		return c.JSON(http.StatusForbidden, models.ErrorResponse{
			Message: "Account is deactivated",
		})
	}

	token, err := middleware.GenerateJWT(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to generate token",
		})
	}

	user.Password = ""

	return c.JSON(http.StatusOK, models.AuthResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
		User:    &user,
	})
}

// Me returns the authenticated user's account
func (ac *AuthController) Me(c echo.Context) error {
	user, err := utils.GetUserFromToken(c, ac.db)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "Unauthorized",
		})
	}

	return c.JSON(http.StatusOK, models.UserResponse{
		Success: true,
		User:    user,
	})
}
