package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client sends bounded context payloads to the generation service and
// validates its responses. One request carries one chunk.
type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient creates a client for the given endpoint.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Generate posts {prompt, context} to the service and returns the validated
// response. A response failing shape validation is an
// ErrInvalidResponseStructure error attributable to the service, not to the
// chunking that produced the context.
func (c *Client) Generate(ctx context.Context, prompt string, contextPayload any) (*Response, error) {
	body, err := json.Marshal(Request{Prompt: prompt, Context: contextPayload})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read generation response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generation service returned %d: %s", resp.StatusCode, raw)
	}

	return ValidateResponse(raw)
}
