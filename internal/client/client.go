// Package client calls the EagleChat completion gateway over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ChatPath is the gateway route for one message.
const ChatPath = "/api/chat"

// ErrMalformedReply is returned for a 2xx body without a usable reply.
var ErrMalformedReply = errors.New("gateway response has no reply")

// StatusError reports a non-2xx gateway answer.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gateway returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("gateway returned status %d: %s", e.StatusCode, e.Message)
}

// Client sends messages to the gateway. It does not retry.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New returns a client for the gateway at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply *string `json:"reply"`
	Error string  `json:"error"`
}

// Complete posts one message and returns the reply text.
func (c *Client) Complete(ctx context.Context, message string) (string, error) {
	body, err := json.Marshal(chatRequest{Message: message})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+ChatPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var payload chatResponse
	decodeErr := json.Unmarshal(raw, &payload)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{StatusCode: resp.StatusCode, Message: payload.Error}
	}
	if decodeErr != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedReply, decodeErr)
	}
	if payload.Reply == nil || *payload.Reply == "" {
		return "", ErrMalformedReply
	}
	return *payload.Reply, nil
}
