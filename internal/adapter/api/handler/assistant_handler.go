package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cwrs/internal/usecase"
	"cwrs/pkg/errors"
	"cwrs/pkg/logger"
)

// AssistantHandler serves the keyword assistant. Its responses use the flat
// {response} / {error} shape the chat widget expects, not the API envelope.
type AssistantHandler struct {
	assistantUseCase *usecase.AssistantUseCase
}

func NewAssistantHandler(assistantUseCase *usecase.AssistantUseCase) *AssistantHandler {
	return &AssistantHandler{
		assistantUseCase: assistantUseCase,
	}
}

type assistantRequest struct {
	Message             string                 `json:"message"`
	ConversationHistory []usecase.HistoryEntry `json:"conversationHistory"`
}

func (h *AssistantHandler) Chat(c echo.Context) error {
	var req assistantRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Message is required"})
	}

	reply, err := h.assistantUseCase.Ask(c.Request().Context(), req.Message, req.ConversationHistory)
	if err != nil {
		if errors.Is(err, "BAD_REQUEST") {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Message is required"})
		}
		logger.Error("AssistantHandler.Chat Error: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, reply)
}
