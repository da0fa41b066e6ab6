package router

import (
	"github.com/labstack/echo/v4"

	"cwrs/internal/adapter/api/handler"
	"cwrs/internal/adapter/api/middleware"
)

// SetupChatRouter sets up the REST chat routes. Realtime updates go through /ws.
func SetupChatRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	chatHandler := handler.GetChatHandler()

	chatGroup := e.Group("/v1/chats")
	chatGroup.Use(authMiddleware.Authenticate)

	chatGroup.POST("", chatHandler.StartChat)
	chatGroup.GET("", chatHandler.ListChats)
	chatGroup.GET("/:chatId/messages", chatHandler.GetMessages)
	chatGroup.POST("/:chatId/messages", chatHandler.SendMessage)
	chatGroup.PUT("/:chatId/read", chatHandler.MarkRead)
}
