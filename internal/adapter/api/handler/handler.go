package handler

import (
	"cwrs/internal/usecase"
)

var (
	authHandler      *AuthHandler
	userHandler      *UserHandler
	productHandler   *ProductHandler
	cartHandler      *CartHandler
	orderHandler     *OrderHandler
	chatHandler      *ChatHandler
	assistantHandler *AssistantHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	productUseCase *usecase.ProductUseCase,
	cartUseCase *usecase.CartUseCase,
	orderUseCase *usecase.OrderUseCase,
	chatUseCase *usecase.ChatUseCase,
	assistantUseCase *usecase.AssistantUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase)
	productHandler = NewProductHandler(productUseCase)
	cartHandler = NewCartHandler(cartUseCase)
	orderHandler = NewOrderHandler(orderUseCase)
	chatHandler = NewChatHandler(chatUseCase)
	assistantHandler = NewAssistantHandler(assistantUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetProductHandler() *ProductHandler {
	return productHandler
}

func GetCartHandler() *CartHandler {
	return cartHandler
}

func GetOrderHandler() *OrderHandler {
	return orderHandler
}

func GetChatHandler() *ChatHandler {
	return chatHandler
}

func GetAssistantHandler() *AssistantHandler {
	return assistantHandler
}
