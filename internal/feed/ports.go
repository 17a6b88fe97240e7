// Package feed defines the inbound expenditure sources and their shared
// error taxonomy.
package feed

import (
	"context"
	"errors"

	"github.com/alan-facto/FictionBI-Dashboard/internal/core"
)

// Source fetches the raw expenditure rows for one reconciliation cycle.
type Source interface {
	Fetch(ctx context.Context) ([]core.RawRow, error)
}

var (
	// ErrFeedUnavailable marks a network, HTTP, or body-level failure
	// fetching the feed. Fatal for the whole cycle; there is no retry.
	ErrFeedUnavailable = errors.New("expenditure feed unavailable")

	// ErrInvalidFeedFormat marks a payload whose top-level shape is not a
	// JSON array. Fatal for the whole cycle, same treatment as above.
	ErrInvalidFeedFormat = errors.New("invalid expenditure feed format")
)
