package router

import (
	"github.com/labstack/echo/v4"

	"cwrs/internal/adapter/api/handler"
	"cwrs/internal/adapter/api/middleware"
)

const loginAction = "login"

func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, limiter middleware.Limiter) {
	authHandler := handler.GetAuthHandler()

	public := e.Group("/v1/auth")
	public.Use(middleware.RateLimit(limiter, loginAction))
	public.POST("/register", authHandler.Register)
	public.POST("/login", authHandler.Login)

	protected := e.Group("/v1/auth")
	protected.Use(authMiddleware.Authenticate)
	protected.GET("/me", authHandler.Me)
}
