package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateReviewRequestAbsentFieldsStayNil(t *testing.T) {
	var req UpdateReviewRequest
	require.NoError(t, json.Unmarshal([]byte(`{"comment":"arrived on time"}`), &req))
	assert.Nil(t, req.Rating)
	require.NotNil(t, req.Comment)
	assert.Equal(t, "arrived on time", *req.Comment)

	req = UpdateReviewRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"rating":4}`), &req))
	require.NotNil(t, req.Rating)
	assert.Equal(t, 4, *req.Rating)
	assert.Nil(t, req.Comment)

	req = UpdateReviewRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &req))
	assert.Nil(t, req.Rating)
	assert.Nil(t, req.Comment)
}
