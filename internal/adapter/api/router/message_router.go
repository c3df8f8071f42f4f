package router

import (
	"github.com/labstack/echo/v4"

	"sponsorconnect/internal/adapter/api/handler"
	"sponsorconnect/internal/adapter/api/middleware"
)

func SetupMessageRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	messageHandler := handler.GetMessageHandler()

	conversations := e.Group("/v1/conversations")
	conversations.Use(authMiddleware.Authenticate)
	conversations.POST("", messageHandler.StartConversation)
	conversations.GET("", messageHandler.ListConversations)
	conversations.GET("/:id", messageHandler.GetConversation)
	conversations.GET("/:id/messages", messageHandler.ListMessages)
	conversations.POST("/:id/messages", messageHandler.SendMessage)
}
