package stats

import (
	"youtrack-pulse/internal/youtrack"
)

// CalculateMetrics computes the whole-dataset snapshot: exclusion-filtered total,
// resolved and active counts from the classifier, and the completion rate rounded
// to one decimal.
func (a *Aggregator) CalculateMetrics(issues []youtrack.Issue) PerformanceMetrics {
	filtered := a.FilterExcluded(issues)

	var resolved, active int
	for _, issue := range filtered {
		switch {
		case a.classifier.IsResolved(issue):
			resolved++
		case a.classifier.IsActive(issue):
			active++
		}
	}

	return PerformanceMetrics{
		TotalIssues:    len(filtered),
		ResolvedIssues: resolved,
		ActiveIssues:   active,
		CompletionRate: RoundTo(Percentage(resolved, len(filtered)), 1),
	}
}
