package usecase

import (
	"context"
	"strings"

	"cwrs/internal/domain/service"
	"cwrs/pkg/errors"
	"cwrs/pkg/logger"
)

// HistoryEntry is one turn of the conversation the client sends along.
// It is accepted for compatibility and not used to pick a reply.
type HistoryEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type AssistantReply struct {
	Response string `json:"response"`
	Language string `json:"language,omitempty"`
}

type AssistantUseCase struct {
	responder *service.KeywordResponder
}

func NewAssistantUseCase(responder *service.KeywordResponder) *AssistantUseCase {
	return &AssistantUseCase{responder: responder}
}

func (uc *AssistantUseCase) Ask(ctx context.Context, message string, history []HistoryEntry) (*AssistantReply, error) {
	if strings.TrimSpace(message) == "" {
		return nil, errors.BadRequest("Message is required", nil)
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Internal(service.AssistantFailure, err)
	}

	reply := uc.responder.Reply(message)
	logger.Debug("Assistant reply: rule=%d lang=%q history=%d", reply.Rule, reply.Language, len(history))
	return &AssistantReply{Response: reply.Text, Language: reply.Language}, nil
}
