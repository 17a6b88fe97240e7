// Package memory serves a fixed set of expenditure rows for tests and local
// development without network access.
package memory

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/alan-facto/FictionBI-Dashboard/internal/core"
	"github.com/alan-facto/FictionBI-Dashboard/internal/feed"
)

type Source struct {
	mu   sync.Mutex
	rows []core.RawRow
	err  error
}

var _ feed.Source = (*Source)(nil)

func New(rows []core.RawRow) *Source {
	return &Source{rows: rows}
}

// NewFromFile loads a fixture file holding the same JSON array the live
// feed emits. A missing file yields an empty source rather than an error so
// a bare checkout still starts.
func NewFromFile(path string) *Source {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Source{}
	}
	rows, err := feed.DecodeRows(data)
	if err != nil {
		return &Source{err: fmt.Errorf("fixture %s: %w", path, err)}
	}
	return &Source{rows: rows}
}

// Fail makes every subsequent Fetch return err, for exercising the error
// paths in tests.
func (s *Source) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *Source) Fetch(_ context.Context) ([]core.RawRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make([]core.RawRow, len(s.rows))
	copy(out, s.rows)
	return out, nil
}
