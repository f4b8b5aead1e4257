package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReferenceModelValid(t *testing.T) {
	assert.True(t, ReferenceBooking.Valid())
	assert.True(t, ReferenceReview.Valid())
	assert.True(t, ReferenceChat.Valid())
	assert.True(t, ReferenceProvider.Valid())

	assert.False(t, ReferenceModel("").Valid())
	assert.False(t, ReferenceModel("user").Valid())
	assert.False(t, ReferenceModel("Booking").Valid())
}
