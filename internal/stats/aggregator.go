package stats

import (
	"fmt"
	"math"
	"time"

	"youtrack-pulse/internal/youtrack"
)

// resolvedIncreaseThreshold is the resolved-percentage at or above which the
// resolved KPI trends "increase".
const resolvedIncreaseThreshold = 70.0

// Aggregator computes KPIs and chart groupings over already sprint-filtered issues.
type Aggregator struct {
	classifier Classifier
	labels     Labels
}

// NewAggregator builds an aggregator with the given labels and state vocabulary.
func NewAggregator(labels Labels, vocab Vocabulary) *Aggregator {
	return &Aggregator{
		classifier: NewClassifier(vocab),
		labels:     labels,
	}
}

// Classifier exposes the state classifier in use.
func (a *Aggregator) Classifier() Classifier { return a.classifier }

// Labels exposes the labels in use.
func (a *Aggregator) Labels() Labels { return a.labels }

// FilterExcluded drops issues in excluded states (backlog, moved to next sprint).
func (a *Aggregator) FilterExcluded(issues []youtrack.Issue) []youtrack.Issue {
	kept := make([]youtrack.Issue, 0, len(issues))
	for _, issue := range issues {
		if !a.classifier.IsExcludedFromTotals(issue) {
			kept = append(kept, issue)
		}
	}
	return kept
}

// TotalIssues counts issues left after exclusion filtering.
func (a *Aggregator) TotalIssues(issues []youtrack.Issue) KPI {
	return KPI{
		Title:  a.labels.TotalIssues,
		Value:  len(a.FilterExcluded(issues)),
		Format: FormatNumber,
	}
}

// ResolvedIssues reports "{count} ({pct}%)" over the exclusion-filtered total.
func (a *Aggregator) ResolvedIssues(issues []youtrack.Issue) KPI {
	total := a.FilterExcluded(issues)
	resolved := 0
	for _, issue := range total {
		if a.classifier.IsResolved(issue) {
			resolved++
		}
	}

	pct := Percentage(resolved, len(total))
	change := RoundTo(pct, 1)
	changeType := ChangeDecrease
	if pct >= resolvedIncreaseThreshold {
		changeType = ChangeIncrease
	}

	return KPI{
		Title:      a.labels.ResolvedIssues,
		Value:      fmt.Sprintf("%d (%.1f%%)", resolved, pct),
		Change:     &change,
		ChangeType: changeType,
		Format:     FormatNumber,
	}
}

// ActiveIssues counts issues the classifier considers active.
func (a *Aggregator) ActiveIssues(issues []youtrack.Issue) KPI {
	active := 0
	for _, issue := range a.FilterExcluded(issues) {
		if a.classifier.IsActive(issue) {
			active++
		}
	}
	return KPI{
		Title:  a.labels.ActiveIssues,
		Value:  active,
		Format: FormatNumber,
	}
}

// AverageResolutionTime averages resolved-minus-created over resolved issues,
// in whole days. Issues resolved by state name without a timestamp count up to now.
// An empty set yields the not-available label rather than zero days.
func (a *Aggregator) AverageResolutionTime(issues []youtrack.Issue, now time.Time) KPI {
	kpi := KPI{Title: a.labels.AvgResolutionTime, Format: FormatTime}

	var totalMs float64
	count := 0
	for _, issue := range issues {
		if issue.Created.IsZero() || !a.classifier.IsResolved(issue) {
			continue
		}
		end := now
		if issue.Resolved != nil {
			end = *issue.Resolved
		}
		totalMs += float64(end.Sub(issue.Created).Milliseconds())
		count++
	}

	if count == 0 {
		kpi.Value = a.labels.NotAvailable
		return kpi
	}

	avgDays := math.Round(totalMs / float64(count) / float64((24 * time.Hour).Milliseconds()))
	kpi.Value = fmt.Sprintf("%d %s", int(avgDays), a.labels.Days)
	return kpi
}
