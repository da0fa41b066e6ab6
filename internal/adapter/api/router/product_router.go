package router

import (
	"github.com/labstack/echo/v4"

	"cwrs/internal/adapter/api/handler"
	"cwrs/internal/adapter/api/middleware"
)

func SetupProductRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	productHandler := handler.GetProductHandler()

	products := e.Group("/v1/products")
	products.GET("", productHandler.ListProducts)
	products.GET("/orphans", productHandler.FindOrphanedProducts, authMiddleware.Authenticate)
	products.GET("/:id", productHandler.GetProduct)

	myProducts := e.Group("/v1/my-products")
	myProducts.Use(authMiddleware.Authenticate, roleMiddleware.SellerOnly)
	myProducts.GET("", productHandler.ListMyProducts)
	myProducts.POST("", productHandler.CreateProduct)
	myProducts.PUT("/:id", productHandler.UpdateProduct)
	myProducts.DELETE("/:id", productHandler.DeleteProduct)
}
