package router

import (
	"github.com/labstack/echo/v4"

	"cwrs/internal/adapter/api/handler"
	"cwrs/internal/adapter/api/middleware"
)

func SetupOrderRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	orderHandler := handler.GetOrderHandler()

	orders := e.Group("/v1/orders")
	orders.Use(authMiddleware.Authenticate, roleMiddleware.BuyerOnly)
	orders.GET("", orderHandler.ListBuyerOrders)

	seller := e.Group("/v1/seller")
	seller.Use(authMiddleware.Authenticate, roleMiddleware.SellerOnly)
	seller.GET("/orders", orderHandler.ListSellerOrders)
	seller.POST("/orders/:id/confirm", orderHandler.ConfirmOrder)
	seller.GET("/dashboard", orderHandler.Dashboard)
}
