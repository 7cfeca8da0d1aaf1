package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client posts JSON payloads to the automation endpoints. Calls go
// through the per-host limiter; an optional bearer token is attached
// when the token source returns one.
type Client struct {
	hc      *http.Client
	limiter *HostLimiter
	token   func() string
}

func NewClient(timeout time.Duration, limiter *HostLimiter, token func() string) *Client {
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		hc:      &http.Client{Timeout: timeout},
		limiter: limiter,
		token:   token,
	}
}

func (c *Client) post(ctx context.Context, url string, payload any) (*http.Response, error) {
	if url == "" {
		return nil, fmt.Errorf("webhook url not configured")
	}
	if err := c.limiter.WaitURL(ctx, url); err != nil {
		return nil, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if t := c.token(); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}
	return c.hc.Do(req)
}

// Post sends the payload and treats any non-2xx status as an error.
// The response body is drained and discarded.
func (c *Client) Post(ctx context.Context, url string, payload any) error {
	resp, err := c.post(ctx, url, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook status %d", resp.StatusCode)
	}
	return nil
}

// StartTracking posts the tracking request and decodes the result.
// The flow replies with either a bare result object or an array whose
// first element is the result.
func (c *Client) StartTracking(ctx context.Context, url string, req *TrackingRequest) (*TrackingResult, error) {
	resp, err := c.post(ctx, url, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
		return nil, fmt.Errorf("webhook status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []TrackingResult
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("decode tracking response: %w", err)
		}
		if len(list) == 0 {
			return nil, fmt.Errorf("tracking response empty")
		}
		return &list[0], nil
	}

	var result TrackingResult
	if err := json.Unmarshal(trimmed, &result); err != nil {
		return nil, fmt.Errorf("decode tracking response: %w", err)
	}
	return &result, nil
}
