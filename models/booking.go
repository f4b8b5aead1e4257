package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking status values. Transitions are enforced in the booking
// controller: pending -> confirmed|cancelled, confirmed -> completed|cancelled.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// Address model for the service location of a booking
type Address struct {
	Street string `json:"street" bson:"street"`
	City   string `json:"city" bson:"city"`
	State  string `json:"state" bson:"state"`
}

// Booking model
type Booking struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID      primitive.ObjectID `json:"userId" bson:"userId"`
	ProviderID  primitive.ObjectID `json:"providerId" bson:"providerId"`
	Date        string             `json:"date" bson:"date"` // "2006-01-02"
	Time        string             `json:"time" bson:"time"` // e.g. "14:00"
	ServiceType string             `json:"serviceType" bson:"serviceType"`
	Address     *Address           `json:"address,omitempty" bson:"address,omitempty"`
	Price       float64            `json:"price" bson:"price"`
	Status      string             `json:"status" bson:"status"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// BookingRequest model
type BookingRequest struct {
	ProviderID  string   `json:"providerId" validate:"required"`
	Date        string   `json:"date" validate:"required"`
	Time        string   `json:"time" validate:"required"`
	ServiceType string   `json:"serviceType,omitempty"`
	Address     *Address `json:"address,omitempty"`
	Price       float64  `json:"price,omitempty"`
}

// BookingStatusUpdateRequest model for updating booking status
type BookingStatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

// BookingResponse model
type BookingResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Booking *Booking `json:"booking,omitempty"`
}

// BookingsResponse model for multiple bookings
type BookingsResponse struct {
	Success  bool      `json:"success"`
	Message  string    `json:"message,omitempty"`
	Count    int       `json:"count"`
	Bookings []Booking `json:"bookings"`
}
