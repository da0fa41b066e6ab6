package router

import (
	"github.com/labstack/echo/v4"

	"cwrs/internal/adapter/api/handler"
	"cwrs/internal/adapter/api/middleware"
	"cwrs/internal/infrastructure/ratelimit"
)

func SetupAssistantRouter(e *echo.Echo, limiter middleware.Limiter) {
	assistantHandler := handler.GetAssistantHandler()

	e.POST("/api/chat", assistantHandler.Chat, middleware.RateLimit(limiter, ratelimit.ActionAssistant))
}
