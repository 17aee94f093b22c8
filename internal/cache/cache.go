// Package cache holds the most recent performance snapshot with a freshness window.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"youtrack-pulse/internal/stats"

	"github.com/rs/zerolog/log"
)

// DefaultTTL is the freshness window of a cached snapshot.
const DefaultTTL = 5 * time.Minute

// Fetcher produces a fresh snapshot.
type Fetcher func(ctx context.Context) (stats.PerformanceMetrics, error)

// Clock returns the current time.
type Clock func() time.Time

// Status describes the cache without triggering a fetch.
type Status struct {
	HasValue  bool      `json:"hasValue"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
	LastError string    `json:"lastError,omitempty"`
	Stale     bool      `json:"stale"`
}

// MetricsCache is a single-slot TTL cache. Concurrent refreshes may each hit the
// upstream; the last one to finish wins.
type MetricsCache struct {
	fetch Fetcher
	ttl   time.Duration
	now   Clock

	mu        sync.Mutex
	value     *stats.PerformanceMetrics
	updatedAt time.Time
	lastErr   error
}

// New builds a cache. A non-positive ttl falls back to DefaultTTL, a nil clock to time.Now.
func New(fetch Fetcher, ttl time.Duration, clock Clock) *MetricsCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = time.Now
	}
	return &MetricsCache{fetch: fetch, ttl: ttl, now: clock}
}

// Snapshot is a Get result with its provenance.
type Snapshot struct {
	Metrics   stats.PerformanceMetrics `json:"metrics"`
	UpdatedAt time.Time                `json:"updatedAt"`
	// Warning is set when a refresh failed and an older snapshot is served.
	Warning string `json:"warning,omitempty"`
}

// Get returns the cached metrics while fresh, otherwise fetches. With force the
// cache is bypassed. A failed refresh never errors while any prior snapshot exists.
func (c *MetricsCache) Get(ctx context.Context, force bool) (stats.PerformanceMetrics, error) {
	snap, err := c.Lookup(ctx, force)
	return snap.Metrics, err
}

// Lookup is Get with the snapshot timestamp and a stale warning attached.
func (c *MetricsCache) Lookup(ctx context.Context, force bool) (Snapshot, error) {
	now := c.now()

	c.mu.Lock()
	if !force && c.value != nil && now.Sub(c.updatedAt) < c.ttl {
		snap := Snapshot{Metrics: *c.value, UpdatedAt: c.updatedAt}
		c.mu.Unlock()
		return snap, nil
	}
	c.mu.Unlock()

	fresh, err := c.fetch(ctx)

	if ctx.Err() != nil {
		// the caller is gone; leave the slot untouched
		if prior, ok := c.prior(); ok {
			return prior, nil
		}
		return Snapshot{}, ctx.Err()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.lastErr = err
		if c.value != nil {
			log.Warn().Err(err).Time("updated_at", c.updatedAt).Msg("Metrics refresh failed, serving stale snapshot")
			return Snapshot{
				Metrics:   *c.value,
				UpdatedAt: c.updatedAt,
				Warning:   fmt.Sprintf("refresh failed, showing data from %s: %v", c.updatedAt.Format(time.RFC3339), err),
			}, nil
		}
		return Snapshot{}, fmt.Errorf("failed to fetch performance metrics: %w", err)
	}

	c.value = &fresh
	c.updatedAt = now
	c.lastErr = nil
	log.Debug().Int("total", fresh.TotalIssues).Msg("Metrics cache refreshed")
	return Snapshot{Metrics: fresh, UpdatedAt: now}, nil
}

func (c *MetricsCache) prior() (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.value == nil {
		return Snapshot{}, false
	}
	return Snapshot{Metrics: *c.value, UpdatedAt: c.updatedAt}, true
}

// Invalidate drops the cached snapshot so the next Get fetches.
func (c *MetricsCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = nil
	c.updatedAt = time.Time{}
	c.lastErr = nil
}

// Status reports what the cache currently holds.
func (c *MetricsCache) Status() Status {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	s := Status{HasValue: c.value != nil}
	if c.value != nil {
		s.UpdatedAt = c.updatedAt
		s.Stale = now.Sub(c.updatedAt) >= c.ttl
	}
	if c.lastErr != nil {
		s.LastError = c.lastErr.Error()
	}
	return s
}
