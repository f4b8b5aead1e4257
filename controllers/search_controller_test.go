package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/quickserve/quickserve_backend/models"
)

func floatPtr(v float64) *float64 { return &v }

func TestBuildSearchFilterDefaults(t *testing.T) {
	filter := buildSearchFilter(searchParams{})

	assert.Equal(t, bson.M{"approved": true}, filter)
}

func TestBuildSearchFilterServiceType(t *testing.T) {
	filter := buildSearchFilter(searchParams{ServiceType: "plumbing"})

	st, ok := filter["serviceType"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "plumbing", st["$regex"])
	assert.Equal(t, "i", st["$options"])
}

func TestBuildSearchFilterPriceRange(t *testing.T) {
	filter := buildSearchFilter(searchParams{
		MinPrice: floatPtr(20),
		MaxPrice: floatPtr(80),
	})

	price, ok := filter["price"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, 20.0, price["$gte"])
	assert.Equal(t, 80.0, price["$lte"])
}

func TestBuildSearchFilterMinRating(t *testing.T) {
	filter := buildSearchFilter(searchParams{MinRating: floatPtr(4)})

	rating, ok := filter["rating"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, 4.0, rating["$gte"])
}

func TestBuildSearchFilterLocationStaysOutOfQuery(t *testing.T) {
	filter := buildSearchFilter(searchParams{City: "Austin", State: "TX"})

	assert.Equal(t, bson.M{"approved": true}, filter)
}

func providerIn(city, state string) models.ProviderWithUser {
	return models.ProviderWithUser{
		User: &models.UserSummary{
			Location: &models.Location{City: city, State: state},
		},
	}
}

func TestFilterByLocation(t *testing.T) {
	providers := []models.ProviderWithUser{
		providerIn("Austin", "TX"),
		providerIn("Dallas", "TX"),
		providerIn("Portland", "OR"),
		{}, // no user joined
	}

	assert.Len(t, filterByLocation(providers, "", ""), 4)
	assert.Len(t, filterByLocation(providers, "Austin", ""), 1)
	assert.Len(t, filterByLocation(providers, "", "TX"), 2)
	assert.Len(t, filterByLocation(providers, "Dallas", "TX"), 1)
	assert.Empty(t, filterByLocation(providers, "Austin", "OR"))
}

func TestFilterByLocationCaseInsensitive(t *testing.T) {
	providers := []models.ProviderWithUser{providerIn("Austin", "TX")}

	assert.Len(t, filterByLocation(providers, "austin", ""), 1)
	assert.Len(t, filterByLocation(providers, "AUSTIN", "tx"), 1)
}

func TestFilterByLocationDropsProvidersWithoutLocation(t *testing.T) {
	providers := []models.ProviderWithUser{
		{User: &models.UserSummary{}},
		{},
	}

	assert.Empty(t, filterByLocation(providers, "Austin", ""))
}
