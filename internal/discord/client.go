package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultAPIBase is the versioned Discord REST endpoint.
const DefaultAPIBase = "https://discord.com/api/v10"

// APIError is returned for any non-2xx Discord response.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("discord %d: %s %s: %s", e.StatusCode, e.Method, e.Path, e.Body)
}

// Client talks to the Discord REST API on behalf of one application.
type Client struct {
	http     *http.Client
	apiBase  string
	appID    string
	botToken string
}

// NewClient creates a Client. botToken is only needed for command registration.
func NewClient(apiBase, appID, botToken string) *Client {
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}
	return &Client{
		http:     &http.Client{Timeout: 15 * time.Second},
		apiBase:  strings.TrimRight(apiBase, "/"),
		appID:    appID,
		botToken: botToken,
	}
}

// EditOriginal replaces the deferred response of the interaction identified by token.
func (c *Client) EditOriginal(ctx context.Context, token string, msg WebhookMessage) error {
	path := fmt.Sprintf("/webhooks/%s/%s/messages/@original", c.appID, token)
	return c.do(ctx, http.MethodPatch, path, false, msg, nil)
}

func (c *Client) do(ctx context.Context, method, path string, auth bool, body, dst interface{}) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.apiBase+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if auth {
		req.Header.Set("Authorization", "Bot "+c.botToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Method: method, Path: path, Body: strings.TrimSpace(string(msg))}
	}
	if dst != nil {
		if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return nil
}
