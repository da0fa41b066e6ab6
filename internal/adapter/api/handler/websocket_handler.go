package handler

import (
	"net/http"
	"strings"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"cwrs/internal/adapter/api/middleware"
	ws "cwrs/internal/infrastructure/websocket"
	"cwrs/pkg/errors"
	"cwrs/pkg/logger"
	"cwrs/pkg/response"
)

type WebSocketHandler struct {
	wsManager      *ws.Manager
	authMiddleware *middleware.AuthMiddleware
	upgrader       gorillaws.Upgrader
}

func NewWebSocketHandler(wsManager *ws.Manager, authMiddleware *middleware.AuthMiddleware) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:      wsManager,
		authMiddleware: authMiddleware,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleWebSocket authenticates with ?token= (browsers cannot set headers on
// the upgrade request) or the Authorization header, then serves the
// connection until it closes.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		if bearer, ok := bearerFromHeader(c.Request().Header.Get("Authorization")); ok {
			token = bearer
		}
	}
	if token == "" {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	userID, err := h.authMiddleware.UIDFromToken(c, token)
	if err != nil {
		return response.Error(c, errors.Unauthorized("Invalid or expired token", err))
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Warn("WebSocket: upgrade failed for %s: %v", userID, err)
		return nil
	}

	h.wsManager.Serve(userID, conn)
	return nil
}

func bearerFromHeader(header string) (string, bool) {
	token, ok := strings.CutPrefix(header, "Bearer ")
	return token, ok && token != ""
}
