package stats

import (
	"youtrack-pulse/internal/youtrack"
)

// groupCounter counts keys while remembering first-seen order.
type groupCounter struct {
	order  []string
	counts map[string]int
}

func newGroupCounter() *groupCounter {
	return &groupCounter{counts: make(map[string]int)}
}

func (g *groupCounter) add(key string) {
	if _, ok := g.counts[key]; !ok {
		g.order = append(g.order, key)
	}
	g.counts[key]++
}

func (g *groupCounter) data() []ChartDatum {
	out := make([]ChartDatum, 0, len(g.order))
	for _, key := range g.order {
		out = append(out, ChartDatum{Name: key, Value: float64(g.counts[key])})
	}
	return out
}

func countBy(issues []youtrack.Issue, key func(youtrack.Issue) string) []ChartDatum {
	g := newGroupCounter()
	for _, issue := range issues {
		g.add(key(issue))
	}
	return g.data()
}

// IssuesByPriority groups by priority name in first-seen order.
func (a *Aggregator) IssuesByPriority(issues []youtrack.Issue) []ChartDatum {
	return countBy(issues, func(issue youtrack.Issue) string {
		if issue.Priority == nil || issue.Priority.Name == "" {
			return a.labels.NoPriority
		}
		return issue.Priority.Name
	})
}

// IssuesByProject groups by project name in first-seen order.
func (a *Aggregator) IssuesByProject(issues []youtrack.Issue) []ChartDatum {
	return countBy(issues, func(issue youtrack.Issue) string {
		return issue.Project.Name
	})
}

// IssuesByState groups by state name in first-seen order.
func (a *Aggregator) IssuesByState(issues []youtrack.Issue) []ChartDatum {
	return countBy(issues, func(issue youtrack.Issue) string {
		if issue.State == nil || issue.State.Name == "" {
			return a.labels.NoState
		}
		return issue.State.Name
	})
}

// AssigneeLabel returns the assignee's display name or the unassigned label.
func (a *Aggregator) AssigneeLabel(issue youtrack.Issue) string {
	if name := issue.Assignee.DisplayName(); name != "" {
		return name
	}
	return a.labels.Unassigned
}

// TeamPerformance groups by assignee. Value is the resolved count; Extra carries
// "total" and "percentage" (resolved/total*100). Resolution uses the classifier.
func (a *Aggregator) TeamPerformance(issues []youtrack.Issue) []ChartDatum {
	type userStats struct{ resolved, total int }

	var order []string
	byUser := make(map[string]*userStats)
	for _, issue := range issues {
		name := a.AssigneeLabel(issue)
		s, ok := byUser[name]
		if !ok {
			s = &userStats{}
			byUser[name] = s
			order = append(order, name)
		}
		s.total++
		if a.classifier.IsResolved(issue) {
			s.resolved++
		}
	}

	out := make([]ChartDatum, 0, len(order))
	for _, name := range order {
		s := byUser[name]
		out = append(out, ChartDatum{
			Name:  name,
			Value: float64(s.resolved),
			Extra: map[string]float64{
				"total":      float64(s.total),
				"percentage": Percentage(s.resolved, s.total),
			},
		})
	}
	return out
}
