package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReferenceModel tags the kind of entity a notification points at.
// The set is closed; anything else is rejected on create.
type ReferenceModel string

const (
	ReferenceBooking  ReferenceModel = "booking"
	ReferenceReview   ReferenceModel = "review"
	ReferenceChat     ReferenceModel = "chat"
	ReferenceProvider ReferenceModel = "provider"
)

// Valid reports whether the reference model is one of the known entity kinds
func (m ReferenceModel) Valid() bool {
	switch m {
	case ReferenceBooking, ReferenceReview, ReferenceChat, ReferenceProvider:
		return true
	}
	return false
}

// Notification model
type Notification struct {
	ID             primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	UserID         primitive.ObjectID  `json:"userId" bson:"userId"`
	Type           string              `json:"type" bson:"type"` // e.g. "booking_update"
	Title          string              `json:"title" bson:"title"`
	Message        string              `json:"message" bson:"message"`
	ReferenceID    *primitive.ObjectID `json:"referenceId,omitempty" bson:"referenceId,omitempty"`
	ReferenceModel ReferenceModel      `json:"referenceModel,omitempty" bson:"referenceModel,omitempty"`
	IsRead         bool                `json:"isRead" bson:"isRead"`
	ReadAt         *time.Time          `json:"readAt,omitempty" bson:"readAt,omitempty"`
	CreatedAt      time.Time           `json:"createdAt" bson:"createdAt"`
}

// NotificationRequest model for creating a notification directly
type NotificationRequest struct {
	UserID         string `json:"userId" validate:"required"`
	Type           string `json:"type" validate:"required"`
	Title          string `json:"title" validate:"required"`
	Message        string `json:"message" validate:"required"`
	ReferenceID    string `json:"referenceId,omitempty"`
	ReferenceModel string `json:"referenceModel,omitempty"`
}

// NotificationResponse model
type NotificationResponse struct {
	Success      bool          `json:"success"`
	Message      string        `json:"message,omitempty"`
	Notification *Notification `json:"notification,omitempty"`
}

// NotificationsResponse model for multiple notifications
type NotificationsResponse struct {
	Success       bool           `json:"success"`
	Message       string         `json:"message,omitempty"`
	Count         int            `json:"count"`
	Notifications []Notification `json:"notifications"`
}

// UnreadCountResponse model
type UnreadCountResponse struct {
	Success     bool  `json:"success"`
	UnreadCount int64 `json:"unreadCount"`
}
