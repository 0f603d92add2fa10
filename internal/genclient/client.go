// Package genclient talks to a level generation server over HTTP.
package genclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxBody caps how much of a response is read.
const maxBody = 1 << 20

// ErrRejected is returned when the server answers with success=false.
var ErrRejected = errors.New("genclient: server rejected the request")

// StatusError reports a non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("genclient: server returned %d: %s", e.Code, e.Body)
}

// Request is the body posted to the generation endpoint.
type Request struct {
	Prompt string `json:"prompt"`
}

// Response is the body returned by the generation endpoint.
type Response struct {
	Success bool   `json:"success"`
	Level   string `json:"level,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Client posts prompts to a generation endpoint such as
// http://localhost:3002/generate-level.
type Client struct {
	url        string
	httpClient *http.Client
}

// New creates a client for the endpoint at url. The timeout applies to the
// whole request; callers usually also bound the context.
func New(url string, timeout time.Duration) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewWithHTTPClient creates a client using a caller-supplied http.Client.
func NewWithHTTPClient(url string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{url: url, httpClient: hc}
}

// URL returns the endpoint the client posts to.
func (c *Client) URL() string { return c.url }

// Generate posts prompt and returns the raw level text from the server.
// The text is untrusted and usually needs to be parsed and normalized.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(Request{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("genclient: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("genclient: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("genclient: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", fmt.Errorf("genclient: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var out Response
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("genclient: failed to parse response: %w", err)
	}
	if !out.Success {
		if out.Error != "" {
			return "", fmt.Errorf("%w: %s", ErrRejected, out.Error)
		}
		return "", ErrRejected
	}
	return out.Level, nil
}
