// Package contactclient posts contact-form submissions to the relay endpoint.
package contactclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/Zachkp/zach-dev/internal/contact"
)

// DefaultEndpoint is where the relay listens during local development.
const DefaultEndpoint = "http://localhost:5001/api/contact"

// StatusError is returned when the endpoint answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("contact endpoint returned %d", e.StatusCode)
	}
	return fmt.Sprintf("contact endpoint returned %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	endpoint string
	http     *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(endpoint string, opts ...Option) *Client {
	c := &Client{endpoint: endpoint, http: http.DefaultClient}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit sends s in one JSON POST and returns the server's confirmation.
// It never retries.
func (c *Client) Submit(ctx context.Context, s contact.Submission) (string, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("contactclient: encoding submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("contactclient: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("contactclient: sending request: %w", err)
	}
	defer resp.Body.Close()

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return "", fmt.Errorf("contactclient: reading response: %w", err)
	}
	// Non-JSON bodies (proxies, HTML error pages) leave both fields empty.
	_ = json.Unmarshal(raw, &body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := body.Error
		if msg == "" {
			msg = body.Message
		}
		return "", &StatusError{StatusCode: resp.StatusCode, Message: msg}
	}
	return body.Message, nil
}
