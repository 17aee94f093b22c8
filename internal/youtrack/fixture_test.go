package youtrack

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testFixture() *Fixture {
	resolved := ToMillis(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
	return &Fixture{
		Projects: []ProjectDTO{{ID: "0-1", Name: "Platform", ShortName: "PLT"}, {ID: "0-2", Name: "Web", ShortName: "WEB"}},
		Users:    []UserDTO{{ID: "1-1", Login: "ana", FullName: "Ana Souza"}},
		Issues: []IssueDTO{
			{
				ID: "2-1", IDReadable: "PLT-1",
				Created:  ToMillis(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
				Resolved: &resolved,
				Project:  ProjectDTO{ID: "0-1", Name: "Platform", ShortName: "PLT"},
				Assignee: &UserDTO{ID: "1-1", Login: "ana"},
				CustomFields: []CustomFieldDTO{
					{Name: "Sprint", Value: json.RawMessage(`{"name":"Sprint 1"}`)},
				},
			},
			{
				ID: "2-2", IDReadable: "WEB-1",
				Created: ToMillis(time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)),
				Project: ProjectDTO{ID: "0-2", Name: "Web", ShortName: "WEB"},
			},
		},
		CustomFields: map[string][]ProjectCustomFieldDTO{
			"0-1": {{Field: FieldDTO{Name: "Sprints"}, Bundle: &BundleDTO{Values: []BundleValueDTO{{Name: "Sprint 1"}, {Name: "Sprint 0", Archived: true}}}}},
		},
	}
}

func TestFixtureClient_FetchIssues(t *testing.T) {
	c := NewFixtureClient(testFixture())
	ctx := context.Background()

	tests := []struct {
		name string
		q    Query
		want int
	}{
		{"All", Query{}, 2},
		{"Project", Query{ProjectID: "WEB"}, 1},
		{"Assignee", Query{AssigneeID: "ana"}, 1},
		{"Sprint", Query{Sprint: "Sprint 1"}, 1},
		{"Created", DateRange(time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)), 1},
		{"HalfOpenRangeIgnored", Query{CreatedFrom: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}, 2},
		{"Limit", Query{Limit: 1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.FetchIssues(ctx, tt.q)
			if err != nil {
				t.Fatalf("FetchIssues failed: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("FetchIssues() len = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestFixtureClient_DiscoverSprints(t *testing.T) {
	c := NewFixtureClient(testFixture())

	// project 0-2 has no entry and fails; discovery must still succeed
	got, err := c.DiscoverSprints(context.Background())
	if err != nil {
		t.Fatalf("DiscoverSprints failed: %v", err)
	}
	if len(got) != 1 || got[0] != "Sprint 1" {
		t.Errorf("DiscoverSprints() = %v, want [Sprint 1]", got)
	}
}

func TestLoadFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.json")
	data, err := json.Marshal(testFixture())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	f, err := LoadFixture(path)
	if err != nil {
		t.Fatalf("LoadFixture failed: %v", err)
	}
	if len(f.Issues) != 2 || len(f.Projects) != 2 {
		t.Errorf("LoadFixture() issues=%d projects=%d", len(f.Issues), len(f.Projects))
	}

	if _, err := LoadFixture(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
