package router

import (
	"github.com/labstack/echo/v4"

	"cwrs/internal/adapter/api/handler"
	"cwrs/internal/adapter/api/middleware"
)

func SetupCartRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	cartHandler := handler.GetCartHandler()

	cart := e.Group("/v1/cart")
	cart.Use(authMiddleware.Authenticate, roleMiddleware.BuyerOnly)
	cart.GET("", cartHandler.GetCart)
	cart.DELETE("", cartHandler.ClearCart)
	cart.POST("/items", cartHandler.AddItem)
	cart.PUT("/items/:productId", cartHandler.UpdateItem)
	cart.DELETE("/items/:productId", cartHandler.RemoveItem)
	cart.POST("/checkout", cartHandler.Checkout)
}
