package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatMessage is a single message inside a chat thread
type ChatMessage struct {
	Sender     primitive.ObjectID `json:"sender" bson:"sender"`
	SenderRole string             `json:"senderRole" bson:"senderRole"` // "user" or "provider"
	Message    string             `json:"message" bson:"message"`
	Timestamp  time.Time          `json:"timestamp" bson:"timestamp"`
	IsRead     bool               `json:"isRead" bson:"isRead"`
}

// Chat is a persistent per-(user, provider) message thread
type Chat struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID          primitive.ObjectID `json:"userId" bson:"userId"`
	ProviderID      primitive.ObjectID `json:"providerId" bson:"providerId"`
	Messages        []ChatMessage      `json:"messages" bson:"messages"`
	LastMessage     string             `json:"lastMessage" bson:"lastMessage"`
	LastMessageTime time.Time          `json:"lastMessageTime" bson:"lastMessageTime"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ChatRequest model for creating (or fetching) a chat
type ChatRequest struct {
	ProviderID string `json:"providerId" validate:"required"`
}

// SendMessageRequest model
type SendMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

// ChatResponse model
type ChatResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Chat    *Chat  `json:"chat,omitempty"`
}

// ChatsResponse model for multiple chats
type ChatsResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Count   int    `json:"count"`
	Chats   []Chat `json:"chats"`
}
