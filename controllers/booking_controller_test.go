package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quickserve/quickserve_backend/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{"pending to confirmed", models.BookingStatusPending, models.BookingStatusConfirmed, true},
		{"pending to cancelled", models.BookingStatusPending, models.BookingStatusCancelled, true},
		{"pending to completed skips confirmation", models.BookingStatusPending, models.BookingStatusCompleted, false},
		{"confirmed to completed", models.BookingStatusConfirmed, models.BookingStatusCompleted, true},
		{"confirmed to cancelled", models.BookingStatusConfirmed, models.BookingStatusCancelled, true},
		{"confirmed back to pending", models.BookingStatusConfirmed, models.BookingStatusPending, false},
		{"completed is terminal", models.BookingStatusCompleted, models.BookingStatusCancelled, false},
		{"cancelled is terminal", models.BookingStatusCancelled, models.BookingStatusConfirmed, false},
		{"unknown status", "unknown", models.BookingStatusConfirmed, false},
		{"same status is not a transition", models.BookingStatusPending, models.BookingStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, canTransition(tt.from, tt.to))
		})
	}
}
