// Package generator calls the external pitch-generation webhook. The wire
// contract is a JSON POST of the pitch attributes and a JSON response
// carrying the generated text in a "pitch" field.
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 60 * time.Second

// Payload carries the pitch attributes sent to the generation service.
// Owner identity and record ids are deliberately never part of it.
type Payload struct {
	Type           string   `json:"type"`
	BusinessName   string   `json:"businessName"`
	Industry       string   `json:"industry"`
	TargetAudience string   `json:"targetAudience"`
	Tone           string   `json:"tone"`
	KeyPoints      []string `json:"keyPoints"`
}

// Client performs the outbound generation call.
type Client struct {
	webhookURL string
	httpClient *http.Client
}

// New validates the webhook URL and builds a client with the given timeout
// (0 means the 60s default).
func New(webhookURL string, timeout time.Duration) (*Client, error) {
	raw := strings.TrimSpace(webhookURL)
	if raw == "" {
		return nil, errors.New("generator webhook url is required")
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("generator webhook url %q is not a valid URL", raw)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		webhookURL: raw,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type generateResponse struct {
	Pitch string `json:"pitch"`
}

// Generate submits the payload and returns the generated pitch text.
// A non-2xx status, an unreadable or non-JSON body, or a missing/empty
// "pitch" field are all failures; the caller decides retry policy.
func (c *Client) Generate(ctx context.Context, p Payload) (string, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode generation payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read generation response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("generation request failed: %s", resp.Status)
	}

	if len(bytes.TrimSpace(respBody)) == 0 {
		return "", errors.New("empty generation response body")
	}

	var out generateResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("malformed generation response: %w", err)
	}
	if strings.TrimSpace(out.Pitch) == "" {
		return "", errors.New("no pitch text in generation response")
	}
	return out.Pitch, nil
}
