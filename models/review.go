package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review model. One review per (user, provider) pair.
type Review struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID     primitive.ObjectID `json:"userId" bson:"userId"`
	ProviderID primitive.ObjectID `json:"providerId" bson:"providerId"`
	Rating     int                `json:"rating" bson:"rating"`
	Comment    string             `json:"comment,omitempty" bson:"comment,omitempty"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ReviewRequest model for creating a review
type ReviewRequest struct {
	ProviderID string `json:"providerId" validate:"required"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Comment    string `json:"comment,omitempty"`
}

// UpdateReviewRequest model; absent fields keep their stored values
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating,omitempty"`
	Comment *string `json:"comment,omitempty"`
}

// ReviewResponse model
type ReviewResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message,omitempty"`
	Review  *Review `json:"review,omitempty"`
}

// ReviewsResponse model for multiple reviews
type ReviewsResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Count   int      `json:"count"`
	Reviews []Review `json:"reviews"`
}

// ReceivedReviewsResponse is returned to providers listing their own reviews
type ReceivedReviewsResponse struct {
	Success       bool     `json:"success"`
	Message       string   `json:"message,omitempty"`
	Count         int      `json:"count"`
	AverageRating float64  `json:"averageRating"`
	Reviews       []Review `json:"reviews"`
}
