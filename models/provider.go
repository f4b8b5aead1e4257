package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Provider model. Rating is derived from reviews and recomputed on
// every review create/update/delete; it defaults to 0 with no reviews.
type Provider struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID      primitive.ObjectID `json:"userId" bson:"userId"`
	ServiceType string             `json:"serviceType" bson:"serviceType"`
	Experience  int                `json:"experience" bson:"experience"`
	Price       float64            `json:"price" bson:"price"`
	Rating      float64            `json:"rating" bson:"rating"`
	Approved    bool               `json:"approved" bson:"approved"`
	Bio         string             `json:"bio,omitempty" bson:"bio,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ProviderWithUser joins a provider with its owning user account
type ProviderWithUser struct {
	Provider `bson:",inline"`
	User     *UserSummary `json:"user,omitempty" bson:"-"`
}

// ProviderRequest model for creating a provider profile
type ProviderRequest struct {
	ServiceType string  `json:"serviceType" validate:"required"`
	Experience  int     `json:"experience" validate:"required"`
	Price       float64 `json:"price" validate:"required"`
	Bio         string  `json:"bio,omitempty"`
}

// UpdateProviderRequest model; absent fields keep their stored values
type UpdateProviderRequest struct {
	ServiceType string  `json:"serviceType,omitempty"`
	Experience  int     `json:"experience,omitempty"`
	Price       float64 `json:"price,omitempty"`
	Bio         string  `json:"bio,omitempty"`
}

// ProviderResponse model
type ProviderResponse struct {
	Success  bool      `json:"success"`
	Message  string    `json:"message,omitempty"`
	Provider *Provider `json:"provider,omitempty"`
}

// ProviderWithUserResponse model
type ProviderWithUserResponse struct {
	Success  bool              `json:"success"`
	Message  string            `json:"message,omitempty"`
	Provider *ProviderWithUser `json:"provider,omitempty"`
}

// ProvidersResponse model for multiple providers
type ProvidersResponse struct {
	Success   bool               `json:"success"`
	Message   string             `json:"message,omitempty"`
	Count     int                `json:"count"`
	Providers []ProviderWithUser `json:"providers"`
}
