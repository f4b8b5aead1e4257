package controllers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/quickserve/quickserve_backend/config"
	"github.com/quickserve/quickserve_backend/models"
)

func mongoReturnUpdated() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

// attachOwners joins each provider with a summary of its owning user.
// Providers whose user record is missing are kept without a user.
func attachOwners(ctx context.Context, db *mongo.Client, providers []models.Provider) ([]models.ProviderWithUser, error) {
	userIDs := make([]primitive.ObjectID, 0, len(providers))
	for _, p := range providers {
		userIDs = append(userIDs, p.UserID)
	}

	users := make(map[primitive.ObjectID]models.UserSummary, len(userIDs))
	if len(userIDs) > 0 {
		cursor, err := config.GetCollection(db, "users").Find(ctx, bson.M{"_id": bson.M{"$in": userIDs}})
		if err != nil {
			return nil, err
		}
		defer cursor.Close(ctx)

		var summaries []models.UserSummary
		if err := cursor.All(ctx, &summaries); err != nil {
			return nil, err
		}
		for _, u := range summaries {
			users[u.ID] = u
		}
	}

	joined := make([]models.ProviderWithUser, 0, len(providers))
	for _, p := range providers {
		pw := models.ProviderWithUser{Provider: p}
		if u, ok := users[p.UserID]; ok {
			owner := u
			pw.User = &owner
		}
		joined = append(joined, pw)
	}

	return joined, nil
}
