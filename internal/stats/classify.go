package stats

import (
	"strings"

	"youtrack-pulse/internal/youtrack"
)

// Vocabulary lists the lower-case state-name fragments used to classify issues.
// Matching is substring-based because installations rename states freely
// ("Closed - Won't Fix" must still count as resolved).
type Vocabulary struct {
	Resolved []string `json:"resolved"`
	Excluded []string `json:"excluded"`
	Inactive []string `json:"inactive"`
}

// DefaultVocabulary returns the stock state vocabularies.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Resolved: []string{"done", "closed", "production", "fixed", "resolved"},
		Excluded: []string{"moved to next sprint", "backlog"},
		Inactive: []string{"moved to next sprint", "backlog", "archived", "cancelled"},
	}
}

// Classifier holds the three state predicates over one vocabulary.
type Classifier struct {
	vocab Vocabulary
}

// NewClassifier lower-cases the vocabulary once so predicates only fold the state name.
func NewClassifier(vocab Vocabulary) Classifier {
	return Classifier{vocab: Vocabulary{
		Resolved: lowerAll(vocab.Resolved),
		Excluded: lowerAll(vocab.Excluded),
		Inactive: lowerAll(vocab.Inactive),
	}}
}

var defaultClassifier = NewClassifier(DefaultVocabulary())

// IsResolved reports a resolved timestamp or a resolved-like state name.
func (c Classifier) IsResolved(issue youtrack.Issue) bool {
	if issue.Resolved != nil {
		return true
	}
	return containsAny(stateName(issue), c.vocab.Resolved)
}

// IsExcludedFromTotals drops backlog and carried-over noise from aggregate totals.
func (c Classifier) IsExcludedFromTotals(issue youtrack.Issue) bool {
	return containsAny(stateName(issue), c.vocab.Excluded)
}

// IsActive is true only for unresolved issues outside the inactive states,
// so it can never overlap IsResolved.
func (c Classifier) IsActive(issue youtrack.Issue) bool {
	if c.IsResolved(issue) {
		return false
	}
	return !containsAny(stateName(issue), c.vocab.Inactive)
}

// IsResolved classifies with the default vocabulary.
func IsResolved(issue youtrack.Issue) bool { return defaultClassifier.IsResolved(issue) }

// IsExcludedFromTotals classifies with the default vocabulary.
func IsExcludedFromTotals(issue youtrack.Issue) bool {
	return defaultClassifier.IsExcludedFromTotals(issue)
}

// IsActive classifies with the default vocabulary.
func IsActive(issue youtrack.Issue) bool { return defaultClassifier.IsActive(issue) }

func stateName(issue youtrack.Issue) string {
	if issue.State == nil {
		return ""
	}
	return strings.ToLower(issue.State.Name)
}

func containsAny(s string, fragments []string) bool {
	if s == "" {
		return false
	}
	for _, f := range fragments {
		if f != "" && strings.Contains(s, f) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

// PriorityColor maps a priority name to an advisory colour tag.
func PriorityColor(priority string) string {
	p := strings.ToLower(priority)
	switch {
	case p == "":
		return "gray"
	case strings.Contains(p, "critical"), strings.Contains(p, "blocker"):
		return "red"
	case strings.Contains(p, "high"):
		return "orange"
	case strings.Contains(p, "normal"), strings.Contains(p, "medium"):
		return "yellow"
	case strings.Contains(p, "low"), strings.Contains(p, "minor"):
		return "green"
	default:
		return "gray"
	}
}

// StateColor maps a state name to an advisory colour tag.
func StateColor(state string) string {
	s := strings.ToLower(state)
	switch {
	case s == "":
		return "gray"
	case containsAny(s, defaultClassifier.vocab.Resolved):
		return "green"
	case strings.Contains(s, "progress"), strings.Contains(s, "development"):
		return "blue"
	case strings.Contains(s, "review"), strings.Contains(s, "testing"):
		return "purple"
	case strings.Contains(s, "blocked"), strings.Contains(s, "waiting"):
		return "red"
	default:
		return "gray"
	}
}
