package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/alan-facto/FictionBI-Dashboard/internal/core"
	"github.com/alan-facto/FictionBI-Dashboard/internal/feed"
	"github.com/alan-facto/FictionBI-Dashboard/internal/log"
)

// Refresher builds reconciled snapshots from the expenditure feed and the
// revenue table and publishes them atomically. Readers always see either
// the previous complete snapshot or the new one, never a half-built
// structure; a failed cycle leaves the previous snapshot in place.
type Refresher struct {
	source   feed.Source
	revenue  []core.RevenueRow
	interval time.Duration
	logger   *log.Logger

	current atomic.Pointer[core.Dataset]
	group   singleflight.Group
}

func NewRefresher(source feed.Source, revenue []core.RevenueRow, interval time.Duration, logger *log.Logger) *Refresher {
	return &Refresher{
		source:   source,
		revenue:  revenue,
		interval: interval,
		logger:   logger.WithComponent(log.ComponentRefresher),
	}
}

// Current returns the latest published snapshot, or nil before the first
// successful refresh.
func (r *Refresher) Current() *core.Dataset {
	return r.current.Load()
}

// Ready reports whether a snapshot has been published.
func (r *Refresher) Ready() bool {
	return r.current.Load() != nil
}

// Refresh fetches and reconciles once, publishing the new snapshot on
// success. Concurrent callers collapse into a single fetch.
func (r *Refresher) Refresh(ctx context.Context) (*core.Dataset, error) {
	v, err, _ := r.group.Do("refresh", func() (any, error) {
		rows, err := r.source.Fetch(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch expenditure feed: %w", err)
		}
		ds, err := core.Reconcile(rows, r.revenue)
		if err != nil {
			return nil, fmt.Errorf("reconcile: %w", err)
		}
		r.current.Store(ds)
		r.logger.InfoContext(ctx, "snapshot published",
			log.FieldRowCount, len(rows),
			log.FieldMonthCount, len(ds.Months),
			log.FieldDeptCount, len(ds.Departments))
		return ds, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*core.Dataset), nil
}

// Run performs the initial refresh and then, when an interval is
// configured, keeps refreshing until the context ends. Failures only log:
// the dashboard serves its error state from the missing snapshot, or keeps
// the previous one when a later cycle fails.
func (r *Refresher) Run(ctx context.Context) error {
	if _, err := r.Refresh(ctx); err != nil {
		r.logger.ErrorContext(ctx, "initial refresh failed", log.FieldError, err)
	}
	if r.interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := r.Refresh(ctx); err != nil {
				r.logger.ErrorContext(ctx, "refresh failed, keeping previous snapshot", log.FieldError, err)
			}
		}
	}
}
