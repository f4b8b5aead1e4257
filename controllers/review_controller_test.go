package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/quickserve/quickserve_backend/middleware"
	"github.com/quickserve/quickserve_backend/models"
)

func reviewsWithRatings(ratings ...int) []models.Review {
	reviews := make([]models.Review, 0, len(ratings))
	for _, r := range ratings {
		reviews = append(reviews, models.Review{Rating: r})
	}
	return reviews
}

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0.0, averageRating(nil))
	assert.Equal(t, 0.0, averageRating([]models.Review{}))
	assert.Equal(t, 4.0, averageRating(reviewsWithRatings(4)))
	assert.Equal(t, 4.0, averageRating(reviewsWithRatings(3, 5)))
	assert.InDelta(t, 3.6666, averageRating(reviewsWithRatings(5, 1, 5)), 0.001)
}

func TestAverageRatingOrderIndependent(t *testing.T) {
	a := averageRating(reviewsWithRatings(1, 3, 5, 2))
	b := averageRating(reviewsWithRatings(5, 2, 1, 3))
	assert.Equal(t, a, b)
}

// reviewContext builds an authenticated request context the way the JWT
// middleware leaves it: claims stored under "user".
func reviewContext(method, target, body, role string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set("user", &jwt.Token{Claims: &middleware.JwtCustomClaims{
			UserID: primitive.NewObjectID().Hex(),
			Email:  "caller@example.com",
			Role:   role,
		}})
	}
	return c, rec
}

func TestAddReviewRejectsNonUserRoles(t *testing.T) {
	rc := NewReviewController(nil)

	for _, role := range []string{"provider", "admin"} {
		c, rec := reviewContext(http.MethodPost, "/api/review/add", `{}`, role)

		require.NoError(t, rc.AddReview(c))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "Only users can add reviews")
	}
}

func TestAddReviewRequiresAuthentication(t *testing.T) {
	rc := NewReviewController(nil)
	c, rec := reviewContext(http.MethodPost, "/api/review/add", `{}`, "")

	require.NoError(t, rc.AddReview(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAddReviewLetsUsersPastTheRoleGate(t *testing.T) {
	rc := NewReviewController(nil)
	// Empty body fails request validation, proving the gate admitted the caller
	c, rec := reviewContext(http.MethodPost, "/api/review/add", `{}`, "user")

	require.NoError(t, rc.AddReview(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateReviewRejectsOutOfRangeRating(t *testing.T) {
	rc := NewReviewController(nil)

	for _, body := range []string{`{"rating":0}`, `{"rating":6}`} {
		c, rec := reviewContext(http.MethodPut, "/api/review/update/x", body, "user")
		c.SetParamNames("id")
		c.SetParamValues(primitive.NewObjectID().Hex())

		require.NoError(t, rc.UpdateReview(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Rating must be between 1 and 5")
	}
}
