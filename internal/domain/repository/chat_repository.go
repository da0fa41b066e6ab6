package repository

import (
	"context"

	"cwrs/internal/domain/entity"
)

type ChatRepository interface {
	// Create writes the chat under its deterministic id, replacing any
	// document already there.
	Create(ctx context.Context, chat *entity.Chat) error
	GetByID(ctx context.Context, id string) (*entity.Chat, error)
	ListByParticipant(ctx context.Context, userID string) ([]*entity.Chat, error)
	// WatchByParticipant calls fn with the full chat set on every change until
	// ctx is cancelled or fn returns an error.
	WatchByParticipant(ctx context.Context, userID string, fn func([]*entity.Chat) error) error
}

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	// ListByChat returns messages in ascending timestamp order.
	ListByChat(ctx context.Context, chatID string) ([]*entity.Message, error)
	Latest(ctx context.Context, chatID string) (*entity.Message, error)
	CountUnread(ctx context.Context, chatID, receiverID string) (int, error)
	// MarkRead flags every unread message addressed to receiverID as read and
	// returns how many were changed.
	MarkRead(ctx context.Context, chatID, receiverID string) (int, error)
	WatchByChat(ctx context.Context, chatID string, fn func([]*entity.Message) error) error
}
