package stats

import (
	"time"

	"youtrack-pulse/internal/youtrack"
)

var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func issueInState(key, state string) youtrack.Issue {
	issue := youtrack.Issue{
		ID:      key,
		Key:     key,
		Created: testNow.Add(-10 * 24 * time.Hour),
		Project: youtrack.Project{ID: "0-1", Name: "Platform", ShortName: "PLT"},
	}
	if state != "" {
		issue.State = &youtrack.Classification{Name: state}
	}
	return issue
}

func resolvedAfter(issue youtrack.Issue, d time.Duration) youtrack.Issue {
	at := issue.Created.Add(d)
	issue.Resolved = &at
	return issue
}

func withSprint(issue youtrack.Issue, sprint string) youtrack.Issue {
	issue.Sprint = &youtrack.SprintRef{Name: sprint, Value: sprint}
	return issue
}

func withAssignee(issue youtrack.Issue, fullName string) youtrack.Issue {
	issue.Assignee = &youtrack.User{Login: fullName, FullName: fullName}
	return issue
}

func testAggregator() *Aggregator {
	return NewAggregator(LabelsFor("pt-BR"), DefaultVocabulary())
}
