package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"cwrs/internal/domain/entity"
	"cwrs/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8 << 10
	sendBuffer     = 64
)

// ChatService is the realtime surface of the chat use case.
type ChatService interface {
	WatchChats(ctx context.Context, uid string, fn func([]*entity.ChatSummary) error) error
	WatchMessages(ctx context.Context, uid, chatID string, fn func([]*entity.Message) error) error
	SendMessage(ctx context.Context, uid, chatID, content string) (*entity.Message, error)
}

type subscription struct {
	id     uint64
	cancel context.CancelFunc
}

// Client is one websocket connection. A user may hold several.
type Client struct {
	ID     string
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
	nextID uint64
	subs   map[string]subscription
	wg     sync.WaitGroup
}

func newClient(parent context.Context, userID string, conn *websocket.Conn) *Client {
	ctx, cancel := context.WithCancel(parent)
	return &Client{
		ID:     uuid.NewString(),
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, sendBuffer),
		ctx:    ctx,
		cancel: cancel,
		subs:   make(map[string]subscription),
	}
}

// enqueue hands msg to the write pump. It reports false when the client is
// closed or too slow to keep up.
func (c *Client) enqueue(msg []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.Send <- msg:
		return true
	default:
		return false
	}
}

// subscribe runs watch under key until it returns, the key is replaced or
// cancelled, or the client goes away.
func (c *Client) subscribe(key string, watch func(ctx context.Context) error, onErr func(error)) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if prev, ok := c.subs[key]; ok {
		prev.cancel()
	}
	ctx, cancel := context.WithCancel(c.ctx)
	c.nextID++
	sub := subscription{id: c.nextID, cancel: cancel}
	c.subs[key] = sub
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		defer cancel()

		if err := watch(ctx); err != nil && ctx.Err() == nil {
			onErr(err)
		}

		c.mu.Lock()
		if cur, ok := c.subs[key]; ok && cur.id == sub.id {
			delete(c.subs, key)
		}
		c.mu.Unlock()
	}()
}

func (c *Client) unsubscribe(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	sub, ok := c.subs[key]
	if ok {
		sub.cancel()
		delete(c.subs, key)
	}
	return ok
}

func (c *Client) subscriptions() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}

// close stops every subscription and the write pump. Safe to call twice.
func (c *Client) close() {
	c.cancel()
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.Send)
	}
}

// Manager tracks live connections and routes their requests to the chat
// service.
type Manager struct {
	chat       ChatService
	clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex

	ctx  context.Context
	done chan struct{}
}

func NewManager(chat ChatService) *Manager {
	return &Manager{
		chat:       chat,
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		ctx:        context.Background(),
		done:       make(chan struct{}),
	}
}

// Start runs the registration loop until ctx is cancelled, then closes every
// remaining client.
func (m *Manager) Start(ctx context.Context) {
	m.ctx = ctx
	go func() {
		defer close(m.done)
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.clients[client.ID] = client
				m.mutex.Unlock()
				logger.Debug("WebSocket: client %s registered for user %s", client.ID, client.UserID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				delete(m.clients, client.ID)
				m.mutex.Unlock()
				client.close()
				logger.Debug("WebSocket: client %s unregistered", client.ID)

			case <-ctx.Done():
				m.mutex.Lock()
				for id, client := range m.clients {
					client.close()
					delete(m.clients, id)
				}
				m.mutex.Unlock()
				return
			}
		}
	}()
}

func (m *Manager) unregister(c *Client) {
	select {
	case m.Unregister <- c:
	case <-m.done:
		c.close()
	}
}

// ClientCount returns the number of open connections.
func (m *Manager) ClientCount() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients)
}

// Serve owns conn until either side closes it. It blocks until every
// subscription of the connection has stopped.
func (m *Manager) Serve(userID string, conn *websocket.Conn) {
	client := newClient(m.ctx, userID, conn)
	select {
	case m.Register <- client:
	case <-m.done:
		conn.Close()
		return
	}

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		client.WritePump()
	}()

	client.ReadPump(m)
	client.wg.Wait()
	<-writerDone
}

// ReadPump reads requests from the connection until it fails.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				logger.Warn("WebSocket: read error for client %s: %v", c.ID, err)
			}
			return
		}
		m.HandleClientMessage(c, message)
	}
}

// WritePump drains Send into the connection and keeps it alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Warn("WebSocket: write error for client %s: %v", c.ID, err)
				c.cancel()
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.cancel()
				return
			}
		}
	}
}
