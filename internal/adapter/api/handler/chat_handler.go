package handler

import (
	"github.com/labstack/echo/v4"

	"cwrs/internal/usecase"
	"cwrs/pkg/response"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type startChatRequest struct {
	RecipientID string `json:"recipient_id" validate:"required"`
}

type sendMessageRequest struct {
	Content string `json:"content" validate:"max=2000"`
}

// StartChat opens, or returns the existing, conversation with recipient_id.
func (h *ChatHandler) StartChat(c echo.Context) error {
	var req startChatRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)
	chat, err := h.chatUseCase.StartChat(c.Request().Context(), userID, req.RecipientID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, chat)
}

func (h *ChatHandler) ListChats(c echo.Context) error {
	userID := c.Get("uid").(string)

	chats, err := h.chatUseCase.ListChats(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.List(c, chats, len(chats))
}

func (h *ChatHandler) GetMessages(c echo.Context) error {
	userID := c.Get("uid").(string)

	messages, err := h.chatUseCase.GetMessages(c.Request().Context(), userID, c.Param("chatId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.List(c, messages, len(messages))
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)
	message, err := h.chatUseCase.SendMessage(c.Request().Context(), userID, c.Param("chatId"), req.Content)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *ChatHandler) MarkRead(c echo.Context) error {
	userID := c.Get("uid").(string)

	marked, err := h.chatUseCase.MarkRead(c.Request().Context(), userID, c.Param("chatId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]int{"marked": marked})
}
