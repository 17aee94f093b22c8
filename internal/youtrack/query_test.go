package youtrack

import (
	"testing"
	"time"
)

func TestQuery_String(t *testing.T) {
	from := time.UnixMilli(1700000000000)
	to := time.UnixMilli(1700600000000)

	tests := []struct {
		name  string
		query Query
		want  string
	}{
		{"Unbounded", Query{Limit: 1000}, ""},
		{"DateRange", DateRange(from, to), "created: 1700000000000 .. 1700600000000"},
		{"Sprint", Query{Sprint: "Sprint 4"}, `Sprints: "Sprint 4"`},
		{"SprintAndDateRange", SprintRange("Sprint 4", from, to), `Sprints: "Sprint 4" created: 1700000000000 .. 1700600000000`},
		{"Project", Query{ProjectID: "0-1"}, "project: 0-1"},
		{"Assignee", Query{AssigneeID: "1-7"}, "assignee: 1-7"},
		{"Resolved", Query{ResolvedFrom: from, ResolvedTo: to}, "resolved: 1700000000000 .. 1700600000000"},
		{"HalfOpenRangeIgnored", Query{CreatedFrom: from}, ""},
		{"QuotedSprint", Query{Sprint: `Big "One"`}, `Sprints: "Big \"One\""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.query.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQuery_EffectiveLimit(t *testing.T) {
	tests := []struct {
		limit int
		want  int
	}{
		{0, DefaultLimit},
		{-5, DefaultLimit},
		{50, 50},
		{FullFetchLimit, FullFetchLimit},
		{5000, MaxLimit},
	}

	for _, tt := range tests {
		if got := (Query{Limit: tt.limit}).EffectiveLimit(); got != tt.want {
			t.Errorf("EffectiveLimit(%d) = %d, want %d", tt.limit, got, tt.want)
		}
	}
}
