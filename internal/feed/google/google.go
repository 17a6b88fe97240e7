// Package google reads expenditure rows straight from the source
// spreadsheet through the Sheets API. The Apps Script feed is a thin JSON
// wrapper over this sheet; this source bypasses it when service account
// credentials are available.
package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alan-facto/FictionBI-Dashboard/internal/core"
	"github.com/alan-facto/FictionBI-Dashboard/internal/feed"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ feed.Source = (*Client)(nil)

// NewFromEnv creates a Sheets source from environment variables.
// Required: GOOGLE_SPREADSHEET_ID. Optional: GOOGLE_SHEET_NAME (default
// "Sheet1") and service account credentials via GOOGLE_SERVICE_ACCOUNT_JSON,
// GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS.
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	sheetName := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetName == "" {
		sheetName = "Sheet1"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		b, err := os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = b
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// Fetch reads the whole sheet and zips the header row with each data row.
// UNFORMATTED_VALUE keeps numeric cells numeric so the coercer sees the same
// shapes the Apps Script feed emits.
func (c *Client) Fetch(ctx context.Context) ([]core.RawRow, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, c.sheetName).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %s: %v", feed.ErrFeedUnavailable, c.sheetName, err)
	}
	return rowsFromValues(resp.Values), nil
}

// rowsFromValues converts a values matrix (as returned by the Sheets API)
// into feed rows keyed by the header labels.
func rowsFromValues(values [][]any) []core.RawRow {
	if len(values) < 2 {
		return nil
	}
	headers := make([]string, len(values[0]))
	for i, h := range values[0] {
		if s, ok := h.(string); ok {
			headers[i] = strings.TrimSpace(s)
		}
	}
	rows := make([]core.RawRow, 0, len(values)-1)
	for _, cells := range values[1:] {
		row := make(core.RawRow, len(headers))
		for i, v := range cells {
			if i < len(headers) && headers[i] != "" {
				row[headers[i]] = v
			}
		}
		rows = append(rows, row)
	}
	return rows
}
