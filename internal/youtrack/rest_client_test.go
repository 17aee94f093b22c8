package youtrack

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const issuesPayload = `[
  {
    "id": "2-1", "idReadable": "DEMO-1", "summary": "Login fails",
    "created": 1700000000000, "updated": 1700086400000, "resolved": 1700172800000,
    "reporter": {"id": "1-1", "login": "ana", "name": "ana", "fullName": "Ana Souza"},
    "assignee": {"id": "1-2", "login": "bruno", "name": "bruno"},
    "project": {"id": "0-1", "name": "Demo", "shortName": "DEMO"},
    "customFields": [
      {"name": "State", "value": {"name": "Fixed"}, "projectCustomField": {"field": {"name": "State", "fieldType": {"id": "state[1]"}}}},
      {"name": "Priority", "value": {"name": "Critical"}, "projectCustomField": {"field": {"name": "Priority", "fieldType": "enum[1]"}}},
      {"name": "Sprints", "value": [{"name": "Sprint 12"}], "projectCustomField": {"field": {"name": "Sprints"}}}
    ]
  },
  {
    "id": "2-2", "idReadable": "DEMO-2", "summary": "Add export",
    "created": 1700000000000, "updated": 1699000000000,
    "project": {"id": "0-1", "name": "Demo", "shortName": "DEMO"},
    "state": {"id": "s-1", "name": "In Progress"}
  }
]`

func newTestClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewClient(Config{BaseURL: srv.URL + "/", Token: "perm:secret", Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client
}

func TestRESTClient_FetchIssues(t *testing.T) {
	var gotPath, gotQuery, gotTop, gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("query")
		gotTop = r.URL.Query().Get("$top")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(issuesPayload))
	})

	issues, err := client.FetchIssues(context.Background(), Query{Sprint: "Sprint 12", Limit: 5000})
	if err != nil {
		t.Fatalf("FetchIssues failed: %v", err)
	}

	if gotPath != "/api/issues" {
		t.Errorf("path = %q, want /api/issues", gotPath)
	}
	if gotQuery != `Sprints: "Sprint 12"` {
		t.Errorf("query = %q", gotQuery)
	}
	if gotTop != "1000" {
		t.Errorf("$top = %q, want truncated 1000", gotTop)
	}
	if gotAuth != "Bearer perm:secret" {
		t.Errorf("Authorization = %q", gotAuth)
	}

	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %d", len(issues))
	}

	first := issues[0]
	if first.Key != "DEMO-1" || first.Project.ShortName != "DEMO" {
		t.Errorf("unexpected identity: %+v", first)
	}
	if first.Resolved == nil || !first.Resolved.Equal(time.UnixMilli(1700172800000)) {
		t.Errorf("resolved = %v", first.Resolved)
	}
	if first.State == nil || first.State.Name != "Fixed" {
		t.Errorf("state from custom field = %+v, want Fixed", first.State)
	}
	if first.Priority == nil || first.Priority.Name != "Critical" {
		t.Errorf("priority from custom field = %+v, want Critical", first.Priority)
	}
	if first.Reporter.DisplayName() != "Ana Souza" || first.Assignee.DisplayName() != "bruno" {
		t.Errorf("user display names = %q / %q", first.Reporter.DisplayName(), first.Assignee.DisplayName())
	}
	if got := first.CustomFields[0].Definition.Type; got != "state[1]" {
		t.Errorf("field type = %q, want state[1]", got)
	}
	if sprint := ExtractSprint(first); sprint == nil || sprint.Name != "Sprint 12" {
		t.Errorf("sprint = %+v", sprint)
	}

	second := issues[1]
	if second.State == nil || second.State.Name != "In Progress" {
		t.Errorf("top-level state = %+v", second.State)
	}
	if second.Resolved != nil {
		t.Errorf("expected unresolved, got %v", second.Resolved)
	}
	if second.Updated.Before(second.Created) {
		t.Errorf("updated %v precedes created %v", second.Updated, second.Created)
	}
	if second.Assignee != nil {
		t.Errorf("expected no assignee")
	}
}

func TestRESTClient_ErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		target error
	}{
		{"Unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"Forbidden", http.StatusForbidden, ErrUnauthorized},
		{"RateLimited", http.StatusTooManyRequests, ErrRateLimited},
		{"ServerError", http.StatusBadGateway, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", tt.status)
			})

			issues, err := client.FetchIssues(context.Background(), Query{})
			if err == nil {
				t.Fatalf("expected error, got %d issues", len(issues))
			}
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %T", err)
			}
			if apiErr.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", apiErr.StatusCode, tt.status)
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("expected errors.Is(%v)", tt.target)
			}
		})
	}
}

func TestRESTClient_EmptyResultIsNotAnError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	issues, err := client.FetchIssues(context.Background(), Query{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(issues) != 0 {
		t.Errorf("expected no issues, got %d", len(issues))
	}
}

func TestNewClient_MissingCredentials(t *testing.T) {
	for _, cfg := range []Config{{}, {BaseURL: "https://yt.example.com"}, {Token: "x"}} {
		if _, err := NewClient(cfg); !errors.Is(err, ErrMissingCredentials) {
			t.Errorf("NewClient(%+v) err = %v, want ErrMissingCredentials", cfg, err)
		}
	}
}

func TestUnavailableClient(t *testing.T) {
	client := NewUnavailableClient(ErrMissingCredentials)
	if _, err := client.FetchIssues(context.Background(), Query{}); !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("FetchIssues err = %v", err)
	}
	if _, err := client.DiscoverSprints(context.Background()); !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("DiscoverSprints err = %v", err)
	}
}
