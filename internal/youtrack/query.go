package youtrack

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Query describes which issues to fetch. Every set field adds one clause and
// clauses are ANDed by the tracker (space-joined). The zero Query fetches
// DefaultLimit issues without restriction.
type Query struct {
	ProjectID    string
	AssigneeID   string
	Sprint       string
	CreatedFrom  time.Time
	CreatedTo    time.Time
	ResolvedFrom time.Time
	ResolvedTo   time.Time
	Limit        int
}

// String renders the query in the tracker's search language, e.g.
// `Sprints: "Sprint 4" created: 1700000000000 .. 1700600000000`.
func (q Query) String() string {
	var clauses []string
	if q.ProjectID != "" {
		clauses = append(clauses, "project: "+q.ProjectID)
	}
	if q.AssigneeID != "" {
		clauses = append(clauses, "assignee: "+q.AssigneeID)
	}
	if q.Sprint != "" {
		clauses = append(clauses, fmt.Sprintf("Sprints: %q", q.Sprint))
	}
	if c := rangeClause("created", q.CreatedFrom, q.CreatedTo); c != "" {
		clauses = append(clauses, c)
	}
	if c := rangeClause("resolved", q.ResolvedFrom, q.ResolvedTo); c != "" {
		clauses = append(clauses, c)
	}
	return strings.Join(clauses, " ")
}

// rangeClause needs both ends; a half-open range has no form in the filter language used here.
func rangeClause(field string, from, to time.Time) string {
	if from.IsZero() || to.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s: %d .. %d", field, ToMillis(from), ToMillis(to))
}

// EffectiveLimit applies the default and the hard cap.
func (q Query) EffectiveLimit() int {
	switch {
	case q.Limit <= 0:
		return DefaultLimit
	case q.Limit > MaxLimit:
		log.Debug().Int("requested", q.Limit).Int("max", MaxLimit).Msg("Truncating issue fetch limit")
		return MaxLimit
	default:
		return q.Limit
	}
}

// DateRange is a convenience constructor for a created-between query.
func DateRange(from, to time.Time) Query {
	return Query{CreatedFrom: from, CreatedTo: to}
}

// SprintRange is a convenience constructor for a sprint plus created-between query.
func SprintRange(sprint string, from, to time.Time) Query {
	return Query{Sprint: sprint, CreatedFrom: from, CreatedTo: to}
}
