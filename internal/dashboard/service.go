// Package dashboard composes the tracker client, the aggregator and the metrics
// cache into the views served by the API, the MCP tools and the CLI.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"youtrack-pulse/internal/cache"
	"youtrack-pulse/internal/stats"
	"youtrack-pulse/internal/youtrack"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Options tunes a Service. Zero values pick the defaults.
type Options struct {
	CacheTTL     time.Duration
	TimelineDays int
	Clock        func() time.Time
}

// Service serves dashboard views for one tracker.
type Service struct {
	client       youtrack.Client
	aggregator   *stats.Aggregator
	metrics      *cache.MetricsCache
	timelineDays int
	now          func() time.Time
}

// Dashboard is one complete view: KPIs, chart groupings and the sprint selector.
type Dashboard struct {
	stats.Overview
	Sprints     []string  `json:"sprints"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// NewService wires a client and aggregator together behind a metrics cache.
func NewService(client youtrack.Client, aggregator *stats.Aggregator, opts Options) *Service {
	if opts.TimelineDays <= 0 {
		opts.TimelineDays = stats.DefaultTimelineDays
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	s := &Service{
		client:       client,
		aggregator:   aggregator,
		timelineDays: opts.TimelineDays,
		now:          opts.Clock,
	}
	s.metrics = cache.New(s.computeMetrics, opts.CacheTTL, opts.Clock)
	return s
}

// Labels returns the locale labels used by the aggregator.
func (s *Service) Labels() stats.Labels { return s.aggregator.Labels() }

// Issues fetches up to the full row cap and derives each issue's sprint.
func (s *Service) Issues(ctx context.Context) ([]youtrack.Issue, error) {
	issues, err := s.client.FetchIssues(ctx, youtrack.Query{Limit: youtrack.FullFetchLimit})
	if err != nil {
		return nil, err
	}
	return youtrack.EnrichBatch(issues), nil
}

// Dashboard builds the view for one sprint ("" or "all" for every issue). The issue
// fetch and sprint discovery run concurrently; a discovery failure only empties
// the selector.
func (s *Service) Dashboard(ctx context.Context, sprint string, days int) (*Dashboard, error) {
	if days <= 0 {
		days = s.timelineDays
	}

	var issues []youtrack.Issue
	var sprints []string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		issues, err = s.Issues(gctx)
		return err
	})
	g.Go(func() error {
		found, err := s.client.DiscoverSprints(gctx)
		if err != nil {
			log.Warn().Err(err).Msg("Sprint discovery failed")
			return nil
		}
		sprints = found
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load dashboard: %w", err)
	}

	if len(sprints) == 0 {
		sprints = youtrack.UniqueSprints(issues)
	}

	now := s.now()
	log.Debug().Int("issues", len(issues)).Str("sprint", sprint).Int("days", days).Msg("Building dashboard")
	return &Dashboard{
		Overview:    s.aggregator.BuildOverview(issues, sprint, days, now),
		Sprints:     sprints,
		GeneratedAt: now,
	}, nil
}

// Sprints lists selectable sprints: project bundles first, then names seen on issues.
func (s *Service) Sprints(ctx context.Context) ([]string, error) {
	sprints, err := s.client.DiscoverSprints(ctx)
	if err != nil {
		return nil, err
	}
	if len(sprints) > 0 {
		return sprints, nil
	}

	issues, err := s.Issues(ctx)
	if err != nil {
		return nil, err
	}
	return youtrack.UniqueSprints(issues), nil
}

// Metrics returns the cached whole-dataset snapshot, refreshing when stale or forced.
func (s *Service) Metrics(ctx context.Context, force bool) (cache.Snapshot, error) {
	return s.metrics.Lookup(ctx, force)
}

// InvalidateMetrics drops the cached snapshot.
func (s *Service) InvalidateMetrics() { s.metrics.Invalidate() }

// MetricsStatus reports the cache state without fetching.
func (s *Service) MetricsStatus() cache.Status { return s.metrics.Status() }

func (s *Service) computeMetrics(ctx context.Context) (stats.PerformanceMetrics, error) {
	issues, err := s.client.FetchIssues(ctx, youtrack.Query{Limit: youtrack.FullFetchLimit})
	if err != nil {
		return stats.PerformanceMetrics{}, err
	}
	return s.aggregator.CalculateMetrics(issues), nil
}
