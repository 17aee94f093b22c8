package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"youtrack-pulse/internal/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUpstream struct {
	mu    sync.Mutex
	calls int
	next  stats.PerformanceMetrics
	err   error
}

func (f *fakeUpstream) fetch(ctx context.Context) (stats.PerformanceMetrics, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.next, f.err
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCache(up *fakeUpstream) (*MetricsCache, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)}
	return New(up.fetch, DefaultTTL, clock.now), clock
}

var snapshotS = stats.PerformanceMetrics{TotalIssues: 10, ResolvedIssues: 7, ActiveIssues: 2, CompletionRate: 70}

func TestGet_HitWithinTTL(t *testing.T) {
	up := &fakeUpstream{next: snapshotS}
	c, clock := newTestCache(up)

	first, err := c.Get(context.Background(), false)
	require.NoError(t, err)
	clock.advance(4 * time.Minute)
	second, err := c.Get(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, 1, up.calls)
	assert.Equal(t, first, second)
}

func TestGet_ExpiresAfterTTL(t *testing.T) {
	up := &fakeUpstream{next: snapshotS}
	c, clock := newTestCache(up)

	_, err := c.Get(context.Background(), false)
	require.NoError(t, err)
	clock.advance(DefaultTTL)
	_, err = c.Get(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, 2, up.calls)
}

func TestGet_ForceAlwaysFetches(t *testing.T) {
	up := &fakeUpstream{next: snapshotS}
	c, _ := newTestCache(up)

	for i := 0; i < 3; i++ {
		_, err := c.Get(context.Background(), true)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, up.calls)
}

func TestGet_StaleFallback(t *testing.T) {
	up := &fakeUpstream{next: snapshotS}
	c, clock := newTestCache(up)

	_, err := c.Get(context.Background(), false)
	require.NoError(t, err)

	up.err = errors.New("connection refused")
	up.next = stats.PerformanceMetrics{}
	clock.advance(time.Hour)

	got, err := c.Get(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, snapshotS, got)

	snap, err := c.Lookup(context.Background(), true)
	require.NoError(t, err)
	assert.Contains(t, snap.Warning, "connection refused")

	status := c.Status()
	assert.True(t, status.Stale)
	assert.Equal(t, "connection refused", status.LastError)
}

func TestGet_FailureWithoutPrior(t *testing.T) {
	up := &fakeUpstream{err: errors.New("boom")}
	c, _ := newTestCache(up)

	_, err := c.Get(context.Background(), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, up.err)
	assert.False(t, c.Status().HasValue)
}

func TestGet_CancelledDoesNotStore(t *testing.T) {
	up := &fakeUpstream{next: snapshotS}
	c, _ := newTestCache(up)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Get(ctx, false)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, c.Status().HasValue)
}

func TestInvalidate(t *testing.T) {
	up := &fakeUpstream{next: snapshotS}
	c, _ := newTestCache(up)

	_, err := c.Get(context.Background(), false)
	require.NoError(t, err)
	c.Invalidate()
	assert.False(t, c.Status().HasValue)

	_, err = c.Get(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, up.calls)
}

func TestNew_Defaults(t *testing.T) {
	c := New(func(context.Context) (stats.PerformanceMetrics, error) { return snapshotS, nil }, 0, nil)
	assert.Equal(t, DefaultTTL, c.ttl)

	got, err := c.Get(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, snapshotS, got)
}
