package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

type stubTester struct{ err error }

func (s stubTester) TestConnection(context.Context) error { return s.err }

type stubCounter int

func (s stubCounter) ClientCount() int { return int(s) }

func TestHealthCheck(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewHealthHandler(nil, stubCounter(3))

	if assert.NoError(t, h.CheckHealth(c)) {
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"ok"`)
		assert.Contains(t, rec.Body.String(), `"websocket_clients":3`)
	}
}

func TestFirebaseHealth(t *testing.T) {
	tests := []struct {
		name   string
		tester ConnectionTester
		code   int
	}{
		{"not configured", nil, http.StatusServiceUnavailable},
		{"connection failed", stubTester{err: errors.New("boom")}, http.StatusInternalServerError},
		{"connected", stubTester{}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/firebase-health", nil), rec)

			assert.NoError(t, NewHealthHandler(tt.tester, nil).CheckFirebaseHealth(c))
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}
