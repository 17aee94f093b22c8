package stats

import (
	"youtrack-pulse/internal/youtrack"
)

// AllSprints is the sentinel selecting every issue.
const AllSprints = "all"

// FilterBySprint keeps issues whose derived sprint name equals sprint exactly.
// Unlike state classification this is a case-sensitive exact match: sprint names
// are stable identifiers picked from discovery, state names are free text.
// An empty sprint or AllSprints returns issues unchanged.
func FilterBySprint(issues []youtrack.Issue, sprint string) []youtrack.Issue {
	if sprint == "" || sprint == AllSprints {
		return issues
	}

	var kept []youtrack.Issue
	for _, issue := range issues {
		ref := issue.Sprint
		if ref == nil {
			ref = youtrack.ExtractSprint(issue)
		}
		if ref != nil && ref.Name == sprint {
			kept = append(kept, issue)
		}
	}
	return kept
}
