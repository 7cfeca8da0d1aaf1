package sheet

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client fetches the spreadsheet CSV export.
type Client struct {
	hc *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{hc: &http.Client{Timeout: timeout}}
}

// FetchCSV performs a GET against the export URL and returns the raw
// body. Any non-2xx status is a hard failure for that refresh cycle.
func (c *Client) FetchCSV(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("sheet request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.8")
	req.Header.Set("User-Agent", "RecruitmentOS/1.0 (+local)")

	res, err := c.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("sheet get: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", fmt.Errorf("sheet status %d", res.StatusCode)
	}

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("sheet read body: %w", err)
	}
	return string(b), nil
}
