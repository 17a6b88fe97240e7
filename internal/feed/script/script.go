// Package script fetches expenditure rows from the Apps Script JSON endpoint
// published over the company payroll spreadsheet.
package script

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/alan-facto/FictionBI-Dashboard/internal/core"
	"github.com/alan-facto/FictionBI-Dashboard/internal/feed"
)

const maxBodyBytes = 10 << 20

type Client struct {
	url    string
	client *http.Client
}

var _ feed.Source = (*Client)(nil)

func New(url string) *Client {
	return &Client{
		url: url,
		client: &http.Client{
			// The Apps Script endpoint redirects to a one-time content URL,
			// so the default redirect-following client is required.
			Timeout: 30 * time.Second,
		},
	}
}

// Fetch performs a single GET against the feed endpoint. Transport errors,
// non-200 statuses, and non-JSON bodies wrap feed.ErrFeedUnavailable; a
// JSON body that is not an array wraps feed.ErrInvalidFeedFormat. Row-level
// defects are left to the coercer.
func (c *Client) Fetch(ctx context.Context) ([]core.RawRow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", feed.ErrFeedUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", feed.ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", feed.ErrFeedUnavailable, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", feed.ErrFeedUnavailable, err)
	}
	return feed.DecodeRows(body)
}
