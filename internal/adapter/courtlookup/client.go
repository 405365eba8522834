package courtlookup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxResponseBytes caps how much of the webhook reply is read.
const maxResponseBytes = 4 << 20

var ErrNotConfigured = errors.New("court lookup webhook is not configured")

// RemoteError is a failure reported by the lookup service itself.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("court lookup failed with status %d: %s", e.Status, e.Message)
	}
	return e.Message
}

// Client calls the court-records webhook. Each lookup is exactly one POST.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a webhook client. An empty url yields a client that
// reports ErrNotConfigured.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// LookupRequest is the body sent to the webhook
type LookupRequest struct {
	Tribunal       string `json:"tribunal"`
	NumeroProcesso string `json:"numeroProcesso"`
}

// LookupResponse is the webhook's envelope
type LookupResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// Lookup asks the webhook for one process and returns its record untouched.
func (c *Client) Lookup(ctx context.Context, tribunal, numero string) (json.RawMessage, error) {
	if c.url == "" {
		return nil, ErrNotConfigured
	}

	requestBytes, err := json.Marshal(LookupRequest{Tribunal: tribunal, NumeroProcesso: numero})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(requestBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach court lookup service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RemoteError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	var response LookupResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if !response.Success || len(response.Data) == 0 || string(response.Data) == "null" {
		message := response.Message
		if message == "" {
			message = "Nenhum processo encontrado com este número"
		}
		return nil, &RemoteError{Message: message}
	}

	return response.Data, nil
}
