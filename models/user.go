// models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User model
type User struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"password,omitempty" bson:"password"`
	Phone     string             `json:"phone" bson:"phone"`
	Role      string             `json:"role" bson:"role"` // "user", "provider" or "admin"
	Location  *Location          `json:"location,omitempty" bson:"location,omitempty"`
	IsActive  bool               `json:"isActive" bson:"isActive"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Location model
type Location struct {
	City  string `json:"city" bson:"city"`
	State string `json:"state" bson:"state"`
}

// UserSummary is the slice of a user embedded in joined responses
type UserSummary struct {
	ID       primitive.ObjectID `json:"id" bson:"_id"`
	Name     string             `json:"name" bson:"name"`
	Email    string             `json:"email" bson:"email"`
	Phone    string             `json:"phone" bson:"phone"`
	Location *Location          `json:"location,omitempty" bson:"location,omitempty"`
}

// RegisterRequest model
type RegisterRequest struct {
	Name     string    `json:"name" validate:"required"`
	Email    string    `json:"email" validate:"required,email"`
	Password string    `json:"password" validate:"required,min=6"`
	Phone    string    `json:"phone" validate:"required"`
	Role     string    `json:"role,omitempty"`
	Location *Location `json:"location,omitempty"`
}

// LoginRequest model
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest model; absent fields keep their stored values
type UpdateProfileRequest struct {
	Name     string    `json:"name,omitempty"`
	Phone    string    `json:"phone,omitempty"`
	Location *Location `json:"location,omitempty"`
}

// ChangePasswordRequest model
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// ErrorResponse is the error envelope: { "message": "..." }
type ErrorResponse struct {
	Message string `json:"message"`
}

// MessageResponse is the success envelope with no resource payload
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// UserResponse model
type UserResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	User    *User  `json:"user,omitempty"`
}

// UsersResponse model for multiple users
type UsersResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Count   int    `json:"count"`
	Users   []User `json:"users"`
}

// AuthResponse model returned on successful login
type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Token   string `json:"token"`
	User    *User  `json:"user,omitempty"`
}
