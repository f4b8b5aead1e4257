package controllers

import (
	"context"
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

// ChatController handles chat-related API endpoints
type ChatController struct {
	db *mongo.Client
}

// NewChatController creates a new chat controller
func NewChatController(db *mongo.Client) *ChatController {
	return &ChatController{db: db}
}

// findChat fetches a chat and checks the caller is a participant.
// Returns the chat and the caller's role inside it ("user" or
// "provider"). On failure the error response has already been written
// and ok is false.
func (cc *ChatController) findChat(ctx context.Context, c echo.Context, chatID primitive.ObjectID) (*models.Chat, string, bool) {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		_ = c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "Unauthorized",
		})
		return nil, "", false
	}

	var chat models.Chat
	err = config.GetCollection(cc.db, "chats").FindOne(ctx, bson.M{"_id": chatID}).Decode(&chat)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			_ = c.JSON(http.StatusNotFound, models.ErrorResponse{
				Message: "Chat not found",
			})
		} else {
			_ = c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Message: "Failed to find chat",
			})
		}
		return nil, "", false
	}

	if chat.UserID == userID {
		return &chat, "user", true
	}

	// Providers participate through their provider profile
	var provider models.Provider
	err = config.GetCollection(cc.db, "providers").FindOne(ctx, bson.M{"_id": chat.ProviderID}).Decode(&provider)
	if err == nil && provider.UserID == userID {
		return &chat, "provider", true
	}

	_ = c.JSON(http.StatusForbidden, models.ErrorResponse{
		Message: "You are not a participant in this chat",
	})
	return nil, "", false
}

// CreateChat creates a chat with a provider, or returns the existing
// one for the same (user, provider) pair
func (cc *ChatController) CreateChat(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "Unauthorized",
		})
	}

	var req models.ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Provider ID is required",
		})
	}

	providerID, err := primitive.ObjectIDFromHex(req.ProviderID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid provider ID",
		})
	}

	count, err := config.GetCollection(cc.db, "providers").CountDocuments(ctx, bson.M{"_id": providerID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to find provider",
		})
	}
	if count == 0 {
		return c.JSON(http.StatusNotFound, models.ErrorResponse{
			Message: "Provider not found",
		})
	}

	chatsCollection := config.GetCollection(cc.db, "chats")

	// Idempotent: hand back the existing thread if there is one
	var existing models.Chat
	err = chatsCollection.FindOne(ctx, bson.M{"userId": userID, "providerId": providerID}).Decode(&existing)
	if err == nil {
		return c.JSON(http.StatusOK, models.ChatResponse{
			Success: true,
			Message: "Chat already exists",
			Chat:    &existing,
		})
	}
	if err != mongo.ErrNoDocuments {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to check existing chats",
		})
	}

	now := time.Now()
	chat := models.Chat{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		ProviderID: providerID,
		Messages:   []models.ChatMessage{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err = chatsCollection.InsertOne(ctx, chat)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Lost the race with a concurrent create; return the winner
			if ferr := chatsCollection.FindOne(ctx, bson.M{"userId": userID, "providerId": providerID}).Decode(&existing); ferr == nil {
				return c.JSON(http.StatusOK, models.ChatResponse{
					Success: true,
					Message: "Chat already exists",
					Chat:    &existing,
				})
			}
		}
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to create chat",
		})
	}

	return c.JSON(http.StatusCreated, models.ChatResponse{
		Success: true,
		Message: "Chat created successfully",
		Chat:    &chat,
	})
}

// SendMessage appends a message to a chat the caller participates in
func (cc *ChatController) SendMessage(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	chatID, err := primitive.ObjectIDFromHex(c.Param("chatId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid chat ID",
		})
	}

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Message is required",
		})
	}

	chat, senderRole, ok := cc.findChat(ctx, c, chatID)
	if !ok {
		return nil
	}

	userID, _ := utils.GetUserIDFromToken(c)
	now := time.Now()
	message := models.ChatMessage{
		Sender:     userID,
		SenderRole: senderRole,
		Message:    utils.SanitizeInput(req.Message),
		Timestamp:  now,
		IsRead:     false,
	}

	var updated models.Chat
	err = config.GetCollection(cc.db, "chats").FindOneAndUpdate(ctx,
		bson.M{"_id": chat.ID},
		bson.M{
			"$push": bson.M{"messages": message},
			"$set": bson.M{
				"lastMessage":     message.Message,
				"lastMessageTime": now,
				"updatedAt":       now,
			},
		},
		mongoReturnUpdated(),
	).Decode(&updated)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to send message",
		})
	}

	return c.JSON(http.StatusOK, models.ChatResponse{
		Success: true,
		Message: "Message sent",
		Chat:    &updated,
	})
}

// GetMyChats lists the caller's chats, newest activity first
func (cc *ChatController) GetMyChats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	claims := middleware.GetUserFromToken(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "Unauthorized",
		})
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid user ID",
		})
	}

	filter := bson.M{"userId": userID}
	if claims.Role == "provider" {
		var provider models.Provider
		err = config.GetCollection(cc.db, "providers").FindOne(ctx, bson.M{"userId": userID}).Decode(&provider)
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
		filter = bson.M{"providerId": provider.ID}
	}

	cursor, err := config.GetCollection(cc.db, "chats").Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "lastMessageTime", Value: -1}}))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to retrieve chats",
		})
	}
	defer cursor.Close(ctx)

	var chats []models.Chat
	if err := cursor.All(ctx, &chats); err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to decode chats",
		})
	}

	return c.JSON(http.StatusOK, models.ChatsResponse{
		Success: true,
		Count:   len(chats),
		Chats:   chats,
	})
}

// GetChat returns a single chat thread (participants only)
func (cc *ChatController) GetChat(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	chatID, err := primitive.ObjectIDFromHex(c.Param("chatId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid chat ID",
		})
	}

	chat, _, ok := cc.findChat(ctx, c, chatID)
	if !ok {
		return nil
	}

	return c.JSON(http.StatusOK, models.ChatResponse{
		Success: true,
		Chat:    chat,
	})
}

// MarkRead marks all messages not authored by the caller as read
func (cc *ChatController) MarkRead(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	chatID, err := primitive.ObjectIDFromHex(c.Param("chatId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid chat ID",
		})
	}

	chat, _, ok := cc.findChat(ctx, c, chatID)
	if !ok {
		return nil
	}

	userID, _ := utils.GetUserIDFromToken(c)

	_, err = config.GetCollection(cc.db, "chats").UpdateOne(ctx,
		bson.M{"_id": chat.ID},
		bson.M{"$set": bson.M{
			"messages.$[elem].isRead": true,
			"updatedAt":               time.Now(),
		}},
		options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{bson.M{"elem.sender": bson.M{"$ne": userID}}},
		}),
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to mark messages as read",
		})
	}

	return c.JSON(http.StatusOK, models.MessageResponse{
		Success: true,
		Message: "Messages marked as read",
	})
}

// DeleteChat removes a chat thread (originating user only)
func (cc *ChatController) DeleteChat(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	chatID, err := primitive.ObjectIDFromHex(c.Param("chatId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid chat ID",
		})
	}

	chat, role, ok := cc.findChat(ctx, c, chatID)
	if !ok {
		return nil
	}
	if role != "user" {
		return c.JSON(http.StatusForbidden, models.ErrorResponse{
			Message: "Only the user who started the chat can delete it",
		})
	}

	_, err = config.GetCollection(cc.db, "chats").DeleteOne(ctx, bson.M{"_id": chat.ID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Failed to delete chat",
		})
	}

	return c.JSON(http.StatusOK, models.MessageResponse{
		Success: true,
		Message: "Chat deleted successfully",
	})
}
