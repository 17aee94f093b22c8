package stats

import (
	"time"

	"youtrack-pulse/internal/youtrack"
)

// DefaultTimelineDays is the trailing window used when none is given.
const DefaultTimelineDays = 30

// TimelineWindow is a trailing run of calendar-day buckets ending before now.
type TimelineWindow struct {
	Start time.Time
	Days  int
}

// NewTimelineWindow starts the window exactly days*24h before now.
func NewTimelineWindow(now time.Time, days int) TimelineWindow {
	if days <= 0 {
		days = DefaultTimelineDays
	}
	return TimelineWindow{
		Start: now.Add(-time.Duration(days) * 24 * time.Hour),
		Days:  days,
	}
}

// Subdivide returns one instant per bucket, in calendar order.
func (w TimelineWindow) Subdivide() []time.Time {
	buckets := make([]time.Time, 0, w.Days)
	for i := 0; i < w.Days; i++ {
		buckets = append(buckets, w.Start.Add(time.Duration(i)*24*time.Hour))
	}
	return buckets
}

// DayKey is the ISO date of t in the window's location.
func (w TimelineWindow) DayKey(t time.Time) string {
	return t.In(w.Start.Location()).Format("2006-01-02")
}

// IssuesCreatedOverTime counts issues per creation day over the trailing window.
// Every bucket is emitted, zero-valued days included. An issue counts only if it
// was created at or after the window start and its day has a bucket.
// This view is computed on unfiltered issues.
func (a *Aggregator) IssuesCreatedOverTime(issues []youtrack.Issue, days int, now time.Time) []ChartDatum {
	w := NewTimelineWindow(now, days)
	buckets := w.Subdivide()

	index := make(map[string]int, len(buckets))
	out := make([]ChartDatum, len(buckets))
	for i, b := range buckets {
		key := w.DayKey(b)
		index[key] = i
		out[i] = ChartDatum{
			Name: b.In(w.Start.Location()).Format(a.labels.TimelineDateLayout),
			Date: key,
		}
	}

	for _, issue := range issues {
		if issue.Created.IsZero() || issue.Created.Before(w.Start) {
			continue
		}
		if i, ok := index[w.DayKey(issue.Created)]; ok {
			out[i].Value++
		}
	}
	return out
}
