package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// ConnectionTester is satisfied by firebase.FirebaseAuthClient.
type ConnectionTester interface {
	TestConnection(ctx context.Context) error
}

// ClientCounter is satisfied by websocket.Manager.
type ClientCounter interface {
	ClientCount() int
}

type HealthHandler struct {
	firebaseAuth ConnectionTester
	sockets      ClientCounter
}

var healthHandler *HealthHandler

func NewHealthHandler(firebaseAuth ConnectionTester, sockets ClientCounter) *HealthHandler {
	return &HealthHandler{
		firebaseAuth: firebaseAuth,
		sockets:      sockets,
	}
}

func SetupHealthHandler(firebaseAuth ConnectionTester, sockets ClientCounter) {
	healthHandler = NewHealthHandler(firebaseAuth, sockets)
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	body := map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	}
	if h.sockets != nil {
		body["websocket_clients"] = h.sockets.ClientCount()
	}
	return c.JSON(http.StatusOK, body)
}

func (h *HealthHandler) CheckFirebaseHealth(c echo.Context) error {
	if h.firebaseAuth == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "Firebase Auth not configured",
		})
	}

	if err := h.firebaseAuth.TestConnection(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"status": "Firebase Auth connection failed",
			"error":  err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "Firebase Auth connected successfully",
	})
}
