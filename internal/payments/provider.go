// Package payments integrates with the external payment provider
package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// SessionCreator creates charge sessions with the payment provider
type SessionCreator interface {
	// CreateSession creates a charge session for the given amount with a
	// human-readable description
	//
	// Returns the provider session ID and the payable link, or an error if
	// the provider rejected or never answered the request.
	CreateSession(ctx context.Context, amount float64, description string) (string, string, error)
}

// Client is an HTTP client for the payment provider's session API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new payment provider client.
//
// Every request carries the configured timeout and a fresh idempotency key,
// so a retried request cannot create a second charge session.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// createSessionRequest is the provider's session creation payload
type createSessionRequest struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

// createSessionResponse is the provider's session creation response
type createSessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateSession creates a charge session with the provider
func (c *Client) CreateSession(ctx context.Context, amount float64, description string) (string, string, error) {
	payload, err := json.Marshal(createSessionRequest{
		Amount:      amount,
		Description: description,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal session request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/sessions", bytes.NewReader(payload))
	if err != nil {
		return "", "", fmt.Errorf("failed to create session request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", uuid.New().String())
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", "", fmt.Errorf("provider returned status %d: %s", resp.StatusCode, string(body))
	}

	var session createSessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return "", "", fmt.Errorf("failed to decode session response: %w", err)
	}

	if session.ID == "" || session.URL == "" {
		return "", "", fmt.Errorf("provider returned incomplete session")
	}

	return session.ID, session.URL, nil
}
