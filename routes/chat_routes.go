package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/quickserve/quickserve_backend/controllers"
	"github.com/quickserve/quickserve_backend/middleware"
)

// RegisterChatRoutes registers chat thread routes
func RegisterChatRoutes(e *echo.Echo, db *mongo.Client) {
	chatController := controllers.NewChatController(db)

	chat := e.Group("/api/chat")
	chat.Use(middleware.JWTMiddleware())

	chat.POST("/create", chatController.CreateChat)
	chat.POST("/send/:chatId", chatController.SendMessage)
	chat.GET("/my-chats", chatController.GetMyChats)
	chat.GET("/:chatId", chatController.GetChat)
	chat.PUT("/mark-read/:chatId", chatController.MarkRead)
	chat.DELETE("/delete/:chatId", chatController.DeleteChat)
}
