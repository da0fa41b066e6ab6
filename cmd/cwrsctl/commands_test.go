package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAssistantServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/chat":
			var req askRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			w.Header().Set("Content-Type", "application/json")
			if req.Message == "" {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":"Message is required"}`))
				return
			}
			_, _ = w.Write([]byte(`{"response":"echo: ` + req.Message + `"}`))
		case "/health":
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"error"}`))
		}
	}))
}

func TestAsk(t *testing.T) {
	srv := newAssistantServer(t)
	defer srv.Close()

	reply, err := ask(context.Background(), srv.Client(), srv.URL+"/", "hello")
	require.NoError(t, err)
	assert.Equal(t, "echo: hello", reply)

	_, err = ask(context.Background(), srv.Client(), srv.URL, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Message is required")
}

func TestAskCommand_DefaultMessage(t *testing.T) {
	srv := newAssistantServer(t)
	defer srv.Close()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"ask", "--server", srv.URL})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "✅ echo: "+defaultAskMessage)
}

func TestHealthCommand_ReportsFailures(t *testing.T) {
	srv := newAssistantServer(t)
	defer srv.Close()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"health", "--server", srv.URL})
	require.Error(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "✅ /health")
	assert.Contains(t, out.String(), "❌ /firebase-health: 503")
}
