package stats

import (
	"time"

	"youtrack-pulse/internal/youtrack"
)

// BuildOverview computes every KPI and grouping for one view. KPIs and groupings
// use the sprint-filtered issues; the creation timeline uses all of them.
func (a *Aggregator) BuildOverview(issues []youtrack.Issue, sprint string, days int, now time.Time) Overview {
	filtered := FilterBySprint(issues, sprint)

	ov := Overview{
		IssueCount:      len(filtered),
		Total:           a.TotalIssues(filtered),
		Resolved:        a.ResolvedIssues(filtered),
		Active:          a.ActiveIssues(filtered),
		AvgResolution:   a.AverageResolutionTime(filtered, now),
		ByPriority:      a.IssuesByPriority(filtered),
		ByProject:       a.IssuesByProject(filtered),
		ByState:         a.IssuesByState(filtered),
		TeamPerformance: a.TeamPerformance(filtered),
		CreatedOverTime: a.IssuesCreatedOverTime(issues, days, now),
	}
	if sprint != AllSprints {
		ov.Sprint = sprint
	}
	return ov
}
