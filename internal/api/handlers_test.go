package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"youtrack-pulse/internal/cache"
	"youtrack-pulse/internal/dashboard"
	"youtrack-pulse/internal/stats"
	"youtrack-pulse/internal/youtrack"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	snapshot    cache.Snapshot
	err         error
	lastForce   bool
	lastSprint  string
	lastDays    int
	invalidated bool
}

func (f *fakeService) Dashboard(_ context.Context, sprint string, days int) (*dashboard.Dashboard, error) {
	f.lastSprint, f.lastDays = sprint, days
	if f.err != nil {
		return nil, f.err
	}
	return &dashboard.Dashboard{
		Overview: stats.Overview{IssueCount: 3, Sprint: sprint},
		Sprints:  []string{"Sprint 1"},
	}, nil
}

func (f *fakeService) Sprints(context.Context) ([]string, error) {
	return []string{"Sprint 1", "Sprint 2"}, f.err
}

func (f *fakeService) Chart(_ context.Context, kind dashboard.ChartKind, sprint string, days int) ([]stats.ChartDatum, error) {
	f.lastSprint, f.lastDays = sprint, days
	return []stats.ChartDatum{{Name: "High", Value: 2}}, f.err
}

func (f *fakeService) Metrics(_ context.Context, force bool) (cache.Snapshot, error) {
	f.lastForce = force
	return f.snapshot, f.err
}

func (f *fakeService) InvalidateMetrics()          { f.invalidated = true }
func (f *fakeService) MetricsStatus() cache.Status { return cache.Status{HasValue: true} }
func (f *fakeService) Labels() stats.Labels        { return stats.LabelsFor("en") }

func do(t *testing.T, svc Service, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rr := httptest.NewRecorder()
	NewRouter(svc, false).ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) Error {
	t.Helper()
	var e Error
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &e))
	return e
}

func TestHealthz(t *testing.T) {
	rr := do(t, &fakeService{}, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Header().Get("Cache-Control"))
}

func TestPerformance(t *testing.T) {
	svc := &fakeService{snapshot: cache.Snapshot{
		Metrics:   stats.PerformanceMetrics{TotalIssues: 10, ResolvedIssues: 7, ActiveIssues: 2, CompletionRate: 70},
		UpdatedAt: time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
	}}

	rr := do(t, svc, http.MethodGet, "/api/performance?refresh=true")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, CacheControl, rr.Header().Get("Cache-Control"))
	assert.True(t, svc.lastForce)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, 10.0, body["totalIssues"])
	assert.Equal(t, 70.0, body["completionRate"])
	assert.NotContains(t, body, "warning")
}

func TestPerformance_StaleWarning(t *testing.T) {
	svc := &fakeService{snapshot: cache.Snapshot{Warning: "refresh failed"}}

	rr := do(t, svc, http.MethodGet, "/api/performance")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"warning":"refresh failed"`)
	assert.False(t, svc.lastForce)
}

func TestPerformance_BadRefresh(t *testing.T) {
	rr := do(t, &fakeService{}, http.MethodGet, "/api/performance?refresh=maybe")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, CodeBadRequest, decodeError(t, rr).Code)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"MissingCredentials", youtrack.ErrMissingCredentials, http.StatusServiceUnavailable, CodeConfiguration},
		{"Unauthorized", &youtrack.APIError{StatusCode: 401, Endpoint: "/issues"}, http.StatusBadGateway, CodeUnauthorized},
		{"RateLimited", &youtrack.APIError{StatusCode: 429, Endpoint: "/issues"}, http.StatusBadGateway, CodeRateLimited},
		{"Timeout", fmt.Errorf("fetch: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, CodeTimeout},
		{"Upstream", errors.New("connection reset"), http.StatusBadGateway, CodeUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, &fakeService{err: tt.err}, http.MethodGet, "/api/dashboard")
			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.code, decodeError(t, rr).Code)
			assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
		})
	}
}

func TestDashboard_Params(t *testing.T) {
	svc := &fakeService{}

	rr := do(t, svc, http.MethodGet, "/api/dashboard?sprint=Sprint+1&days=14")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Sprint 1", svc.lastSprint)
	assert.Equal(t, 14, svc.lastDays)
	assert.Contains(t, rr.Body.String(), `"issueCount":3`)

	rr = do(t, svc, http.MethodGet, "/api/dashboard?days=0")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestInvalidate(t *testing.T) {
	svc := &fakeService{}
	rr := do(t, svc, http.MethodDelete, "/api/performance/cache")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.True(t, svc.invalidated)
	assert.Empty(t, rr.Header().Get("Cache-Control"))
}

func TestSprints(t *testing.T) {
	rr := do(t, &fakeService{}, http.MethodGet, "/api/sprints")
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Sprints []string `json:"sprints"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, []string{"Sprint 1", "Sprint 2"}, body.Sprints)
}

func TestChart(t *testing.T) {
	rr := do(t, &fakeService{}, http.MethodGet, "/api/charts/priority")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"title":"Issues by Priority"`)

	rr = do(t, &fakeService{}, http.MethodGet, "/api/charts/priority?format=mermaid")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.HasPrefix(rr.Body.String(), "```mermaid"))

	rr = do(t, &fakeService{}, http.MethodGet, "/api/charts/burndown")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStatus(t *testing.T) {
	rr := do(t, &fakeService{}, http.MethodGet, "/api/performance/status")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"hasValue":true`)
}
