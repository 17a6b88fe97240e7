package feed

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/alan-facto/FictionBI-Dashboard/internal/core"
)

// DecodeRows decodes a feed payload. A body that is not JSON wraps
// ErrFeedUnavailable; valid JSON that is not an array wraps
// ErrInvalidFeedFormat. Elements that are not objects are skipped with a
// log line — row-level defects never abort the cycle.
func DecodeRows(body []byte) ([]core.RawRow, error) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode body: %v", ErrFeedUnavailable, err)
	}
	items, ok := payload.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: top-level %T, want array", ErrInvalidFeedFormat, payload)
	}
	rows := make([]core.RawRow, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			slog.Debug("skipping non-object feed row", "index", i)
			continue
		}
		rows = append(rows, core.RawRow(obj))
	}
	return rows, nil
}
