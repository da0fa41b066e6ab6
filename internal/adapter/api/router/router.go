package router

import (
	"github.com/labstack/echo/v4"

	"cwrs/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware, limiter middleware.Limiter) {
	SetupAuthRouter(e, authMiddleware, limiter)
	SetupUserRouter(e, authMiddleware, roleMiddleware)
	SetupProductRouter(e, authMiddleware, roleMiddleware)
	SetupCartRouter(e, authMiddleware, roleMiddleware)
	SetupOrderRouter(e, authMiddleware, roleMiddleware)
	SetupChatRouter(e, authMiddleware)
	SetupAssistantRouter(e, limiter)
	SetupHealthRouter(e)
}
