package youtrack

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Fixture is an offline snapshot of a tracker in the REST wire shapes, as written
// by cmd/mockgen.
type Fixture struct {
	Projects     []ProjectDTO                       `json:"projects"`
	Users        []UserDTO                          `json:"users"`
	Issues       []IssueDTO                         `json:"issues"`
	CustomFields map[string][]ProjectCustomFieldDTO `json:"customFields"`
}

// LoadFixture reads a fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// fixtureClient answers from memory, applying the same Query semantics the
// tracker would. It lets the dashboard run without network access.
type fixtureClient struct {
	fixture *Fixture
	issues  []Issue
}

// NewFixtureClient serves a fixture through the Client interface.
func NewFixtureClient(f *Fixture) Client {
	return &fixtureClient{fixture: f, issues: MapIssues(f.Issues)}
}

func (c *fixtureClient) FetchIssues(ctx context.Context, q Query) ([]Issue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit := q.EffectiveLimit()
	out := make([]Issue, 0, min(limit, len(c.issues)))
	for _, issue := range c.issues {
		if len(out) == limit {
			break
		}
		if matchesQuery(issue, q) {
			out = append(out, issue)
		}
	}
	return out, nil
}

func matchesQuery(issue Issue, q Query) bool {
	if q.ProjectID != "" && issue.Project.ID != q.ProjectID && issue.Project.ShortName != q.ProjectID {
		return false
	}
	if q.AssigneeID != "" && (issue.Assignee == nil || (issue.Assignee.ID != q.AssigneeID && issue.Assignee.Login != q.AssigneeID)) {
		return false
	}
	if q.Sprint != "" {
		s := ExtractSprint(issue)
		if s == nil || s.Name != q.Sprint {
			return false
		}
	}
	if !inRange(&issue.Created, q.CreatedFrom, q.CreatedTo) {
		return false
	}
	if !q.ResolvedFrom.IsZero() && !q.ResolvedTo.IsZero() && !inRange(issue.Resolved, q.ResolvedFrom, q.ResolvedTo) {
		return false
	}
	return true
}

// inRange mirrors the clause rules of Query.String: a range needs both ends.
func inRange(t *time.Time, from, to time.Time) bool {
	if from.IsZero() || to.IsZero() {
		return true
	}
	if t == nil {
		return false
	}
	return !t.Before(from) && !t.After(to)
}

func (c *fixtureClient) GetProjects(ctx context.Context) ([]Project, error) {
	projects := make([]Project, len(c.fixture.Projects))
	for i, p := range c.fixture.Projects {
		projects[i] = Project(p)
	}
	return projects, nil
}

func (c *fixtureClient) GetUsers(ctx context.Context) ([]User, error) {
	users := make([]User, len(c.fixture.Users))
	for i, u := range c.fixture.Users {
		users[i] = mapUser(u)
	}
	return users, nil
}

func (c *fixtureClient) GetProjectCustomFields(ctx context.Context, projectID string) ([]ProjectCustomField, error) {
	dtos, ok := c.fixture.CustomFields[projectID]
	if !ok {
		return nil, &APIError{StatusCode: 404, Endpoint: "/admin/projects/" + projectID + "/customFields"}
	}
	fields := make([]ProjectCustomField, len(dtos))
	for i, dto := range dtos {
		fields[i] = mapProjectCustomField(dto)
	}
	return fields, nil
}

func (c *fixtureClient) DiscoverSprints(ctx context.Context) ([]string, error) {
	projects, err := c.GetProjects(ctx)
	if err != nil {
		return nil, err
	}
	return DiscoverSprints(ctx, c, projects)
}
