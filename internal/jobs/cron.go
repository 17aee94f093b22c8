// Package jobs runs background schedules against the dashboard service.
package jobs

import (
	"context"
	"fmt"
	"time"

	"youtrack-pulse/internal/cache"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// warmupTimeout bounds one scheduled refresh.
const warmupTimeout = 2 * time.Minute

type refresher interface {
	Metrics(ctx context.Context, force bool) (cache.Snapshot, error)
}

// Warmup keeps the metrics cache hot by forcing a refresh on a schedule.
type Warmup struct {
	svc refresher
	c   *cron.Cron
}

// NewWarmup schedules forced refreshes. spec accepts five-field crontab lines and
// descriptors such as "@every 30s" or "@hourly".
func NewWarmup(svc refresher, spec string) (*Warmup, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	c := cron.New(cron.WithParser(parser), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	w := &Warmup{svc: svc, c: c}
	if _, err := c.AddFunc(spec, w.run); err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", spec, err)
	}
	return w, nil
}

func (w *Warmup) Start() { w.c.Start() }

// Stop halts the schedule and waits for a running refresh to finish.
func (w *Warmup) Stop() {
	<-w.c.Stop().Done()
}

func (w *Warmup) run() {
	ctx, cancel := context.WithTimeout(context.Background(), warmupTimeout)
	defer cancel()
	w.RunOnce(ctx)
}

// RunOnce performs a single forced refresh.
func (w *Warmup) RunOnce(ctx context.Context) {
	snap, err := w.svc.Metrics(ctx, true)
	if err != nil {
		log.Error().Err(err).Msg("cron: metrics warm-up failed")
		return
	}
	if snap.Warning != "" {
		log.Warn().Str("warning", snap.Warning).Msg("cron: metrics warm-up served stale data")
		return
	}
	log.Debug().Int("total", snap.Metrics.TotalIssues).Msg("cron: metrics warmed")
}
