package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
)

const defaultAskMessage = "你好，我是測試用戶"

// askCmd posts one message to /api/chat and prints the reply
var askCmd = &cobra.Command{
	Use:   "ask [message]",
	Short: "Send a message to the assistant",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAsk,
}

// healthCmd probes /health and /firebase-health
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check server health",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func runAsk(cmd *cobra.Command, args []string) error {
	message := defaultAskMessage
	if len(args) == 1 {
		message = args[0]
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	reply, err := ask(ctx, http.DefaultClient, serverURL, message)
	out := cmd.OutOrStdout()
	if err != nil {
		fmt.Fprintf(out, "❌ %v\n", err)
		return err
	}
	fmt.Fprintf(out, "✅ %s\n", reply)
	return nil
}

func runHealth(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	out := cmd.OutOrStdout()
	var failed bool
	for _, path := range []string{"/health", "/firebase-health"} {
		status, body, err := get(ctx, http.DefaultClient, serverURL+path)
		switch {
		case err != nil:
			failed = true
			fmt.Fprintf(out, "❌ %s: %v\n", path, err)
		case status != http.StatusOK:
			failed = true
			fmt.Fprintf(out, "❌ %s: %d %s\n", path, status, strings.TrimSpace(body))
		default:
			fmt.Fprintf(out, "✅ %s: %s\n", path, strings.TrimSpace(body))
		}
	}
	if failed {
		return fmt.Errorf("health check failed")
	}
	return nil
}

type askRequest struct {
	Message string `json:"message"`
}

type askResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

func ask(ctx context.Context, client *http.Client, baseURL, message string) (string, error) {
	payload, err := json.Marshal(askRequest{Message: message})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(baseURL, "/")+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var body askResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if body.Error == "" {
			body.Error = resp.Status
		}
		return "", fmt.Errorf("assistant returned %d: %s", resp.StatusCode, body.Error)
	}
	return body.Response, nil
}

func get(ctx context.Context, client *http.Client, url string) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	if err != nil {
		return resp.StatusCode, "", err
	}
	return resp.StatusCode, string(body), nil
}
