package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"cwrs/internal/domain/entity"
	"cwrs/internal/domain/repository"
	"cwrs/internal/infrastructure/ratelimit"
	"cwrs/pkg/errors"
	"cwrs/pkg/logger"
)

type ChatUseCase struct {
	chatRepo    repository.ChatRepository
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	rateLimiter RateLimiter
	now         func() time.Time
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	rateLimiter RateLimiter,
) *ChatUseCase {
	if rateLimiter == nil {
		rateLimiter = allowAll{}
	}
	return &ChatUseCase{
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		userRepo:    userRepo,
		rateLimiter: rateLimiter,
		now:         time.Now,
	}
}

// ChatID is the deterministic id of the conversation between a and b.
func ChatID(a, b string) string {
	pair := []string{a, b}
	sort.Strings(pair)
	return "chat_" + pair[0] + "_" + pair[1]
}

func (uc *ChatUseCase) checkRate(uid, action string) error {
	if ok, wait := uc.rateLimiter.Allow(uid, action); !ok {
		return errors.TooManyRequests(fmt.Sprintf("Too many requests, retry in %s", wait.Round(time.Second)))
	}
	return nil
}

// StartChat returns the chat between uid and otherID, creating it when it
// does not exist yet.
func (uc *ChatUseCase) StartChat(ctx context.Context, uid, otherID string) (*entity.Chat, error) {
	otherID = strings.TrimSpace(otherID)
	if otherID == "" {
		return nil, errors.BadRequest("Recipient is required", nil)
	}
	if otherID == uid {
		return nil, errors.BadRequest("Cannot start a chat with yourself", nil)
	}

	id := ChatID(uid, otherID)
	chat, err := uc.chatRepo.GetByID(ctx, id)
	if err == nil {
		return chat, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	if err := uc.checkRate(uid, ratelimit.ActionStartChat); err != nil {
		return nil, err
	}

	pair := []string{uid, otherID}
	sort.Strings(pair)
	chat = &entity.Chat{
		ID:           id,
		Participants: pair,
		CreatedAt:    uc.now(),
	}
	if err := uc.chatRepo.Create(ctx, chat); err != nil {
		logger.Error("ChatUseCase.StartChat Error: %s: %v", id, err)
		return nil, errors.Internal("建立對話失敗，請重試", err)
	}

	logger.Info("Chat %s started by %s", id, uid)
	return chat, nil
}

// participantChat loads chatID and checks that uid takes part in it.
func (uc *ChatUseCase) participantChat(ctx context.Context, uid, chatID string) (*entity.Chat, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(uid) {
		return nil, errors.Forbidden("You are not a participant of this chat", nil)
	}
	return chat, nil
}

func (uc *ChatUseCase) summarize(ctx context.Context, me *entity.User, chats []*entity.Chat) ([]*entity.ChatSummary, error) {
	var (
		g   errgroup.Group
		mu  sync.Mutex
		out = make([]*entity.ChatSummary, 0, len(chats))
	)
	g.SetLimit(8)

	for _, chat := range chats {
		otherID := chat.OtherParticipant(me.ID)
		if otherID == "" {
			continue
		}
		g.Go(func() error {
			other, err := uc.userRepo.GetByID(ctx, me.Role.Counterpart(), otherID)
			if err != nil {
				if errors.Is(err, "NOT_FOUND") {
					return nil
				}
				return err
			}
			if other.Username == "" {
				return nil
			}

			summary := &entity.ChatSummary{ChatID: chat.ID, OtherUser: other}
			last, err := uc.messageRepo.Latest(ctx, chat.ID)
			switch {
			case err == nil:
				summary.LastMessage = last
			case !errors.Is(err, "NOT_FOUND"):
				return err
			}
			if summary.UnreadCount, err = uc.messageRepo.CountUnread(ctx, chat.ID, me.ID); err != nil {
				return err
			}

			mu.Lock()
			out = append(out, summary)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortSummaries(out)
	return out, nil
}

// sortSummaries orders by latest message, newest first. Chats without
// messages go last.
func sortSummaries(summaries []*entity.ChatSummary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := summaries[i].LastMessage, summaries[j].LastMessage
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Timestamp.After(b.Timestamp)
		}
	})
}

// ListChats returns uid's conversations with counterparts that still exist.
func (uc *ChatUseCase) ListChats(ctx context.Context, uid string) ([]*entity.ChatSummary, error) {
	me, err := uc.userRepo.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	chats, err := uc.chatRepo.ListByParticipant(ctx, uid)
	if err != nil {
		return nil, err
	}
	return uc.summarize(ctx, me, chats)
}

// GetMessages returns the chat history and marks everything addressed to
// uid as read.
func (uc *ChatUseCase) GetMessages(ctx context.Context, uid, chatID string) ([]*entity.Message, error) {
	if _, err := uc.participantChat(ctx, uid, chatID); err != nil {
		return nil, err
	}

	messages, err := uc.messageRepo.ListByChat(ctx, chatID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.messageRepo.MarkRead(ctx, chatID, uid); err != nil {
		logger.Warn("GetMessages: mark read failed for chat %s: %v", chatID, err)
	} else {
		for _, m := range messages {
			if m.ReceiverID == uid {
				m.Read = true
			}
		}
	}
	return messages, nil
}

func (uc *ChatUseCase) SendMessage(ctx context.Context, uid, chatID, content string) (*entity.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.BadRequest("Message content is required", nil)
	}

	chat, err := uc.participantChat(ctx, uid, chatID)
	if err != nil {
		return nil, err
	}
	if err := uc.checkRate(uid, ratelimit.ActionSendMessage); err != nil {
		return nil, err
	}

	message := &entity.Message{
		ChatID:     chatID,
		SenderID:   uid,
		ReceiverID: chat.OtherParticipant(uid),
		Content:    content,
		Timestamp:  uc.now(),
		Read:       false,
	}
	if err := uc.messageRepo.Create(ctx, message); err != nil {
		logger.Error("ChatUseCase.SendMessage Error: chat=%s: %v", chatID, err)
		return nil, errors.Internal("發送訊息失敗", err)
	}
	return message, nil
}

func (uc *ChatUseCase) MarkRead(ctx context.Context, uid, chatID string) (int, error) {
	if _, err := uc.participantChat(ctx, uid, chatID); err != nil {
		return 0, err
	}
	return uc.messageRepo.MarkRead(ctx, chatID, uid)
}

// WatchChats pushes uid's chat list to fn on every change until ctx is done.
func (uc *ChatUseCase) WatchChats(ctx context.Context, uid string, fn func([]*entity.ChatSummary) error) error {
	me, err := uc.userRepo.FindByID(ctx, uid)
	if err != nil {
		return err
	}
	return uc.chatRepo.WatchByParticipant(ctx, uid, func(chats []*entity.Chat) error {
		summaries, err := uc.summarize(ctx, me, chats)
		if err != nil {
			logger.Warn("WatchChats: user=%s: %v", uid, err)
			return nil
		}
		return fn(summaries)
	})
}

// WatchMessages pushes the chat history to fn on every change and marks
// incoming messages as read while the watcher is open.
func (uc *ChatUseCase) WatchMessages(ctx context.Context, uid, chatID string, fn func([]*entity.Message) error) error {
	if _, err := uc.participantChat(ctx, uid, chatID); err != nil {
		return err
	}
	return uc.messageRepo.WatchByChat(ctx, chatID, func(messages []*entity.Message) error {
		unread := false
		for _, m := range messages {
			if m.ReceiverID == uid && !m.Read {
				unread = true
				break
			}
		}
		if unread {
			if _, err := uc.messageRepo.MarkRead(ctx, chatID, uid); err != nil {
				logger.Warn("WatchMessages: mark read failed for chat %s: %v", chatID, err)
			}
		}
		return fn(messages)
	})
}
