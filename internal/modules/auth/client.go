package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client exchanges the partner credential pair for a bearer token.
type Client struct {
	url      string
	username string
	password string
	http     *http.Client
}

// NewClient returns a Client posting to url. A nil httpClient gets a 15s timeout.
func NewClient(url, username, password string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{url: url, username: username, password: password, http: httpClient}
}

// Token requests a fresh token. Only 200 and 201 are accepted.
func (c *Client) Token(ctx context.Context) (string, error) {
	reqBody, err := json.Marshal(tokenRequest{Username: c.username, Password: c.password})
	if err != nil {
		return "", fmt.Errorf("auth: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("auth: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("auth: do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("auth: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("%w: status %d", ErrNoToken, resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", fmt.Errorf("auth: unmarshal response: %w", err)
	}
	if tr.Token == "" {
		return "", ErrNoToken
	}
	return tr.Token, nil
}
