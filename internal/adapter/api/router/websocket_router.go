package router

import (
	"github.com/labstack/echo/v4"

	"cwrs/internal/adapter/api/handler"
)

// SetupWebSocketRouter registers /ws. The handler authenticates by itself.
func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler) {
	e.GET("/ws", wsHandler.HandleWebSocket)
}
