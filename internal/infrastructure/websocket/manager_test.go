package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"cwrs/internal/domain/entity"
	"cwrs/pkg/errors"
)

type fakeChat struct{}

func (fakeChat) WatchChats(ctx context.Context, uid string, fn func([]*entity.ChatSummary) error) error {
	if err := fn([]*entity.ChatSummary{{ChatID: "chat_a_" + uid}}); err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}

func (fakeChat) WatchMessages(ctx context.Context, uid, chatID string, fn func([]*entity.Message) error) error {
	if chatID == "forbidden" {
		return errors.Forbidden("You are not a participant of this chat", nil)
	}
	if err := fn([]*entity.Message{{ChatID: chatID, Content: "hi"}}); err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}

func (fakeChat) SendMessage(_ context.Context, uid, chatID, content string) (*entity.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errors.BadRequest("Message content is required", nil)
	}
	return &entity.Message{ID: "m1", ChatID: chatID, SenderID: uid, Content: content}, nil
}

func next(t *testing.T, c *Client) WSMessage {
	t.Helper()
	select {
	case raw := <-c.Send:
		var msg WSMessage
		require.NoError(t, json.Unmarshal(raw, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message queued")
		return WSMessage{}
	}
}

func TestHandleClientMessage_RoomLifecycle(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := NewManager(fakeChat{})
	c := newClient(context.Background(), "u1", nil)
	defer c.close()

	m.HandleClientMessage(c, []byte(`{"type":"ping"}`))
	assert.Equal(t, MessageTypePong, next(t, c).Type)

	m.HandleClientMessage(c, []byte(`{"type":"join_chat_room","chat_id":"chat_u1_u2"}`))
	assert.Equal(t, MessageTypeRoomJoined, next(t, c).Type)
	assert.Equal(t, MessageTypeChatMessages, next(t, c).Type)
	assert.Equal(t, 1, c.subscriptions())

	m.HandleClientMessage(c, []byte(`{"type":"leave_chat_room","chat_id":"chat_u1_u2"}`))
	assert.Equal(t, MessageTypeRoomLeft, next(t, c).Type)
	c.wg.Wait()
	assert.Zero(t, c.subscriptions())
}

func TestHandleClientMessage_Errors(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := NewManager(fakeChat{})
	c := newClient(context.Background(), "u1", nil)
	defer c.close()

	m.HandleClientMessage(c, []byte(`not json`))
	assert.Equal(t, MessageTypeError, next(t, c).Type)

	m.HandleClientMessage(c, []byte(`{"type":"dance"}`))
	assert.Equal(t, MessageTypeError, next(t, c).Type)

	m.HandleClientMessage(c, []byte(`{"type":"send_message","data":{"chat_id":"c1","content":"  "}}`))
	msg := next(t, c)
	assert.Equal(t, MessageTypeError, msg.Type)
	assert.Equal(t, "Message content is required", msg.Data.(map[string]interface{})["message"])

	m.HandleClientMessage(c, []byte(`{"type":"join_chat_room","chat_id":"forbidden"}`))
	msg = next(t, c)
	assert.Equal(t, MessageTypeError, msg.Type)
	assert.Equal(t, "forbidden", msg.ChatID)
	c.wg.Wait()
	assert.Empty(t, c.Send)
}

func readType(t *testing.T, conn *websocket.Conn, want string) WSMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		var msg WSMessage
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.Type == want {
			return msg
		}
	}
}

func TestManager_ServeRoundTrip(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewManager(fakeChat{})
	m.Start(ctx)

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		m.Serve("u1", conn)
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "ping"}))
	readType(t, conn, MessageTypePong)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "watch_chats"}))
	list := readType(t, conn, MessageTypeChatList)
	assert.NotNil(t, list.Data)
	assert.Equal(t, 1, m.ClientCount())

	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"type": "send_message",
		"data": map[string]string{"chat_id": "chat_u1_u2", "content": "hello", "temp_id": "t1"},
	}))
	sent := readType(t, conn, MessageTypeMessageSent)
	assert.Equal(t, "chat_u1_u2", sent.ChatID)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return m.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}
