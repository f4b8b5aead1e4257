package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/quickserve/quickserve_backend/config"
	"github.com/quickserve/quickserve_backend/middleware"
	"github.com/quickserve/quickserve_backend/models"
	"github.com/quickserve/quickserve_backend/utils"
)

// ReviewController handles review-related API endpoints
type ReviewController struct {
	db *mongo.Client
}

// NewReviewController creates a new review controller
func NewReviewController(db *mongo.Client) *ReviewController {
	return &ReviewController{db: db}
}

// averageRating returns the arithmetic mean of the review ratings,
// or 0 when there are none.
func averageRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}

// recomputeProviderRating rescans all reviews for a provider and writes
// the new mean back to the provider document.
func (rc *ReviewController) recomputeProviderRating(ctx context.Context, providerID primitive.ObjectID) error {
	reviewsCollection := config.GetCollection(rc.db, "reviews")
	cursor, err := reviewsCollection.Find(ctx, bson.M{"providerId": providerID})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return err
	}

	_, err = config.GetCollection(rc.db, "providers").UpdateOne(ctx,
		bson.M{"_id": providerID},
		bson.M{"$set": bson.M{"rating": averageRating(reviews), "updatedAt": time.Now()}},
	)
	return err
}

// AddReview creates a review for a provider and updates the provider's
// rating
func (rc *ReviewController) AddReview(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	claims := middleware.GetUserFromToken(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "Unauthorized",
		})
	}
	if claims.Role != "user" {
		return c.JSON(http.StatusForbidden, models.ErrorResponse{
			Message: "Only users can add reviews",
		})
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid user ID",
		})
	}

	var req models.ReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Rating must be between 1 and 5",
		})
	}

	providerID, err := primitive.ObjectIDFromHex(req.ProviderID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid provider ID",
		})
	}

	var provider models.Provider
	err = config.GetCollection(rc.db, "providers").FindOne(ctx, bson.M{"_id": providerID}).Decode(&provider)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{
				Message: "Provider not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to find provider",
		})
	}

	reviewsCollection := config.GetCollection(rc.db, "reviews")
	count, err := reviewsCollection.CountDocuments(ctx, bson.M{
		"userId":     userID,
		"providerId": providerID,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to check existing reviews",
		})
	}
	if count > 0 {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "You have already reviewed this provider",
		})
	}

	now := time.Now()
	review := models.Review{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		ProviderID: providerID,
		Rating:     req.Rating,
		Comment:    utils.SanitizeInput(req.Comment),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err = reviewsCollection.InsertOne(ctx, review)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Message: "You have already reviewed this provider",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to create review",
		})
	}

	if err := rc.recomputeProviderRating(ctx, providerID); err != nil {
		log.Printf("Failed to recompute provider rating: %v", err)
	}

	refID := review.ID
	if err := utils.SaveNotification(rc.db, provider.UserID, "new_review",
		"New review received",
		fmt.Sprintf("You received a new %d-star review", req.Rating),
		&refID, models.ReferenceReview); err != nil {
		log.Printf("Failed to save review notification: %v", err)
	}

	return c.JSON(http.StatusCreated, models.ReviewResponse{
		Success: true,
		Message: "Review added successfully",
		Review:  &review,
	})
}

// GetMyReviews retrieves reviews written by the authenticated user
func (rc *ReviewController) GetMyReviews(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "Unauthorized",
		})
	}

	collection := config.GetCollection(rc.db, "reviews")
	cursor, err := collection.Find(ctx, bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to retrieve reviews",
		})
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to decode reviews",
		})
	}

	return c.JSON(http.StatusOK, models.ReviewsResponse{
		Success: true,
		Count:   len(reviews),
		Reviews: reviews,
	})
}

// GetProviderReviews retrieves all reviews for a provider (public)
func (rc *ReviewController) GetProviderReviews(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	providerID, err := primitive.ObjectIDFromHex(c.Param("providerId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid provider ID",
		})
	}

	collection := config.GetCollection(rc.db, "reviews")
	cursor, err := collection.Find(ctx, bson.M{"providerId": providerID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to retrieve reviews",
		})
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to decode reviews",
		})
	}

	return c.JSON(http.StatusOK, models.ReviewsResponse{
		Success: true,
		Count:   len(reviews),
		Reviews: reviews,
	})
}

// GetReceivedReviews retrieves reviews received by the caller's
// provider profile, with the average rating
func (rc *ReviewController) GetReceivedReviews(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "Unauthorized",
		})
	}

	var provider models.Provider
	err = config.GetCollection(rc.db, "providers").FindOne(ctx, bson.M{"userId": userID}).Decode(&provider)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{
				Message: "Provider profile not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to find provider profile",
		})
	}

	collection := config.GetCollection(rc.db, "reviews")
	cursor, err := collection.Find(ctx, bson.M{"providerId": provider.ID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to retrieve reviews",
		})
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to decode reviews",
		})
	}

	return c.JSON(http.StatusOK, models.ReceivedReviewsResponse{
		Success:       true,
		Count:         len(reviews),
		AverageRating: averageRating(reviews),
		Reviews:       reviews,
	})
}

// UpdateReview updates a review's rating or comment (author only)
func (rc *ReviewController) UpdateReview(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "Unauthorized",
		})
	}

	reviewID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid review ID",
		})
	}

	var req models.UpdateReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid request body",
		})
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Rating must be between 1 and 5",
		})
	}

	collection := config.GetCollection(rc.db, "reviews")

	var review models.Review
	err = collection.FindOne(ctx, bson.M{"_id": reviewID}).Decode(&review)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{
				Message: "Review not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to find review",
		})
	}

	if review.UserID != userID {
		return c.JSON(http.StatusForbidden, models.ErrorResponse{
			Message: "You can only update your own reviews",
		})
	}

	update := bson.M{"updatedAt": time.Now()}
	if req.Rating != nil {
		update["rating"] = *req.Rating
	}
	if req.Comment != nil {
		update["comment"] = utils.SanitizeInput(*req.Comment)
	}

	err = collection.FindOneAndUpdate(ctx,
		bson.M{"_id": reviewID},
		bson.M{"$set": update},
		mongoReturnUpdated(),
	).Decode(&review)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to update review",
		})
	}

	if err := rc.recomputeProviderRating(ctx, review.ProviderID); err != nil {
		log.Printf("Failed to recompute provider rating: %v", err)
	}

	return c.JSON(http.StatusOK, models.ReviewResponse{
		Success: true,
		Message: "Review updated successfully",
		Review:  &review,
	})
}

// DeleteReview removes a review (author only) and recomputes the
// provider's rating
func (rc *ReviewController) DeleteReview(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "Unauthorized",
		})
	}

	reviewID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid review ID",
		})
	}

	collection := config.GetCollection(rc.db, "reviews")

	var review models.Review
	err = collection.FindOne(ctx, bson.M{"_id": reviewID}).Decode(&review)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{
				Message: "Review not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to find review",
		})
	}

	if review.UserID != userID {
		return c.JSON(http.StatusForbidden, models.ErrorResponse{
			Message: "You can only delete your own reviews",
		})
	}

	_, err = collection.DeleteOne(ctx, bson.M{"_id": reviewID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to delete review",
		})
	}

	if err := rc.recomputeProviderRating(ctx, review.ProviderID); err != nil {
		log.Printf("Failed to recompute provider rating: %v", err)
	}

	return c.JSON(http.StatusOK, models.MessageResponse{
		Success: true,
		Message: "Review deleted successfully",
	})
}
