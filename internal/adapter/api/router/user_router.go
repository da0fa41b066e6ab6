package router

import (
	"github.com/labstack/echo/v4"

	"cwrs/internal/adapter/api/handler"
	"cwrs/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	userHandler := handler.GetUserHandler()

	users := e.Group("/v1/users")
	users.Use(authMiddleware.Authenticate)
	users.GET("/me", userHandler.GetProfile)
	users.PUT("/me", userHandler.UpdateProfile)
	users.POST("/me/avatar", userHandler.UploadAvatar)
	users.GET("/search", userHandler.FindUsers)

	e.GET("/v1/sellers/:id", userHandler.GetSellerInfo)

	buyers := e.Group("/v1/buyers")
	buyers.Use(authMiddleware.Authenticate, roleMiddleware.SellerOnly)
	buyers.GET("", userHandler.FindBuyers)
}
