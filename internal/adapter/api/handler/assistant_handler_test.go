package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cwrs/internal/domain/service"
	"cwrs/internal/usecase"
)

func newAssistantHandler(t *testing.T) *AssistantHandler {
	t.Helper()
	responder, err := service.NewDefaultKeywordResponder(service.WithRandom(func(int) int { return 0 }))
	require.NoError(t, err)
	return NewAssistantHandler(usecase.NewAssistantUseCase(responder))
}

func postChat(t *testing.T, h *AssistantHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Chat(e.NewContext(req, rec)))
	return rec
}

func TestAssistantHandler_Chat(t *testing.T) {
	h := newAssistantHandler(t)

	rec := postChat(t, h, `{"message":"我想問訂單","conversationHistory":[{"role":"user","content":"hi"}]}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, service.DefaultResponderRules[3].Reply, body["response"])
}

func TestAssistantHandler_MissingMessage(t *testing.T) {
	h := newAssistantHandler(t)

	for _, body := range []string{`{}`, `{"message":"   "}`, `{"message":`} {
		rec := postChat(t, h, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Message is required"}`, rec.Body.String())
	}
}
