package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service is a catalog entry for a service category
type Service struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Icon        string             `json:"icon,omitempty" bson:"icon,omitempty"`
	IsActive    bool               `json:"isActive" bson:"isActive"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ServiceRequest model for creating a service category
type ServiceRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// UpdateServiceRequest model; absent fields keep their stored values
type UpdateServiceRequest struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	IsActive    *bool  `json:"isActive,omitempty"`
}

// ServiceResponse model
type ServiceResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Service *Service `json:"service,omitempty"`
}

// ServicesResponse model for multiple services
type ServicesResponse struct {
	Success  bool      `json:"success"`
	Message  string    `json:"message,omitempty"`
	Count    int       `json:"count"`
	Services []Service `json:"services"`
}
