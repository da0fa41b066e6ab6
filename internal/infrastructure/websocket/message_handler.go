package websocket

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"sync"
	"time"

	"cwrs/internal/domain/entity"
	"cwrs/pkg/errors"
	"cwrs/pkg/logger"
)

// Client to server message types.
const (
	MessageTypePing          = "ping"
	MessageTypeWatchChats    = "watch_chats"
	MessageTypeUnwatchChats  = "unwatch_chats"
	MessageTypeJoinChatRoom  = "join_chat_room"
	MessageTypeLeaveChatRoom = "leave_chat_room"
	MessageTypeSendMessage   = "send_message"
)

// Server to client message types.
const (
	MessageTypePong         = "pong"
	MessageTypeChatList     = "chat_list"
	MessageTypeChatMessages = "chat_messages"
	MessageTypeMessageSent  = "message_sent"
	MessageTypeRoomJoined   = "room_joined"
	MessageTypeRoomLeft     = "room_left"
	MessageTypeError        = "error"
)

const chatsKey = "chats"

type WSMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	ChatID    string      `json:"chat_id,omitempty"`
	Timestamp string      `json:"timestamp"`
}

type inboundMessage struct {
	Type   string          `json:"type"`
	ChatID string          `json:"chat_id"`
	Data   json.RawMessage `json:"data"`
}

type SendMessageData struct {
	TempID  string `json:"temp_id"`
	ChatID  string `json:"chat_id"`
	Content string `json:"content"`
}

type MessageSentData struct {
	TempID  string          `json:"temp_id,omitempty"`
	Message *entity.Message `json:"message"`
}

type ErrorData struct {
	Message string `json:"message"`
}

func roomKey(chatID string) string {
	return "room:" + chatID
}

// HandleClientMessage decodes one request from client and acts on it.
func (m *Manager) HandleClientMessage(client *Client, raw []byte) {
	var in inboundMessage
	if err := json.Unmarshal(raw, &in); err != nil {
		logger.Debug("WebSocket: bad frame from client %s: %v", client.ID, err)
		m.sendErrorToClient(client, "", "Invalid message format")
		return
	}

	switch in.Type {
	case MessageTypePing:
		m.sendToClient(client, WSMessage{Type: MessageTypePong, Data: map[string]string{"status": "alive"}})

	case MessageTypeWatchChats:
		m.handleWatchChats(client)

	case MessageTypeUnwatchChats:
		client.unsubscribe(chatsKey)

	case MessageTypeJoinChatRoom:
		m.handleJoinChatRoom(client, in.ChatID)

	case MessageTypeLeaveChatRoom:
		if client.unsubscribe(roomKey(in.ChatID)) {
			m.sendToClient(client, WSMessage{Type: MessageTypeRoomLeft, ChatID: in.ChatID})
		}

	case MessageTypeSendMessage:
		m.handleSendMessage(client, in)

	default:
		logger.Debug("WebSocket: unknown message type %q from client %s", in.Type, client.ID)
		m.sendErrorToClient(client, in.ChatID, "Unknown message type")
	}
}

func (m *Manager) handleWatchChats(client *Client) {
	client.subscribe(chatsKey, func(ctx context.Context) error {
		return m.chat.WatchChats(ctx, client.UserID, func(chats []*entity.ChatSummary) error {
			m.sendToClient(client, WSMessage{Type: MessageTypeChatList, Data: chats})
			return nil
		})
	}, func(err error) {
		logger.Warn("WebSocket: chat list listener for %s stopped: %v", client.UserID, err)
		m.sendErrorToClient(client, "", errorMessage(err, "Chat list unavailable"))
	})
}

// handleJoinChatRoom acknowledges the room with the first snapshot, so a
// caller that fails the participant check only ever sees an error.
func (m *Manager) handleJoinChatRoom(client *Client, chatID string) {
	if chatID == "" {
		m.sendErrorToClient(client, "", "chat_id is required")
		return
	}

	client.subscribe(roomKey(chatID), func(ctx context.Context) error {
		var joined sync.Once
		return m.chat.WatchMessages(ctx, client.UserID, chatID, func(messages []*entity.Message) error {
			joined.Do(func() {
				m.sendToClient(client, WSMessage{Type: MessageTypeRoomJoined, ChatID: chatID})
			})
			m.sendToClient(client, WSMessage{Type: MessageTypeChatMessages, ChatID: chatID, Data: messages})
			return nil
		})
	}, func(err error) {
		m.sendErrorToClient(client, chatID, errorMessage(err, "Failed to join chat"))
	})
}

func (m *Manager) handleSendMessage(client *Client, in inboundMessage) {
	var data SendMessageData
	if len(in.Data) > 0 {
		if err := json.Unmarshal(in.Data, &data); err != nil {
			m.sendErrorToClient(client, in.ChatID, "Invalid send message format")
			return
		}
	}
	if data.ChatID == "" {
		data.ChatID = in.ChatID
	}
	if data.ChatID == "" {
		m.sendErrorToClient(client, "", "chat_id is required")
		return
	}

	msg, err := m.chat.SendMessage(client.ctx, client.UserID, data.ChatID, data.Content)
	if err != nil {
		m.sendErrorToClient(client, data.ChatID, errorMessage(err, "Failed to send message"))
		return
	}

	m.sendToClient(client, WSMessage{
		Type:   MessageTypeMessageSent,
		ChatID: data.ChatID,
		Data:   MessageSentData{TempID: data.TempID, Message: msg},
	})
}

func errorMessage(err error, fallback string) string {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}

func (m *Manager) sendToClient(client *Client, msg WSMessage) {
	msg.Timestamp = time.Now().Format(time.RFC3339)
	payload, err := json.Marshal(msg)
	if err != nil {
		logger.Error("WebSocket: failed to encode %s: %v", msg.Type, err)
		return
	}
	if !client.enqueue(payload) {
		logger.Debug("WebSocket: dropped %s for client %s", msg.Type, client.ID)
	}
}

func (m *Manager) sendErrorToClient(client *Client, chatID, message string) {
	m.sendToClient(client, WSMessage{Type: MessageTypeError, ChatID: chatID, Data: ErrorData{Message: message}})
}
