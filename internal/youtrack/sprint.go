package youtrack

import (
	"slices"
	"strings"
)

// ExtractSprint finds the first custom field named "sprint" or "sprints" (by its own name
// or its definition's name, case-insensitive) and resolves its value to a sprint.
// Unrecognized shapes return nil.
func ExtractSprint(issue Issue) *SprintRef {
	field, ok := findSprintField(issue.CustomFields)
	if !ok {
		return nil
	}
	name, ok := field.Value.Name()
	if !ok {
		return nil
	}
	return &SprintRef{Name: name, Value: name}
}

func findSprintField(fields []CustomField) (CustomField, bool) {
	for _, f := range fields {
		if isSprintFieldName(f.Name) || isSprintFieldName(f.Definition.Name) {
			return f, true
		}
	}
	return CustomField{}, false
}

func isSprintFieldName(name string) bool {
	switch strings.ToLower(name) {
	case "sprint", "sprints":
		return true
	}
	return false
}

// EnrichBatch returns copies of issues with Sprint derived from their custom fields.
// The input slice is not modified.
func EnrichBatch(issues []Issue) []Issue {
	out := make([]Issue, len(issues))
	for i, issue := range issues {
		issue.Sprint = ExtractSprint(issue)
		out[i] = issue
	}
	return out
}

// UniqueSprints returns the sorted distinct sprint names found in a batch.
// Issues that were not enriched are resolved on the fly.
func UniqueSprints(issues []Issue) []string {
	seen := make(map[string]bool)
	var names []string
	for _, issue := range issues {
		sprint := issue.Sprint
		if sprint == nil {
			sprint = ExtractSprint(issue)
		}
		if sprint == nil || sprint.Name == "" || seen[sprint.Name] {
			continue
		}
		seen[sprint.Name] = true
		names = append(names, sprint.Name)
	}
	slices.Sort(names)
	return names
}
