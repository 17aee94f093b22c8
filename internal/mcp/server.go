// Package mcp serves dashboard data to assistants over the Model Context Protocol.
package mcp

import (
	"context"
	"encoding/json"

	"youtrack-pulse/internal/dashboard"
	"youtrack-pulse/internal/visuals"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// Server holds the state for the MCP server.
type Server struct {
	svc     *dashboard.Service
	version string
	sdk     *mcpsdk.Server
}

// NewServer creates a new MCP server with every tool registered.
func NewServer(svc *dashboard.Service, version string) *Server {
	s := &Server{svc: svc, version: version}
	s.sdk = mcpsdk.NewServer(&mcpsdk.Implementation{Name: "youtrack-pulse", Version: version}, nil)
	s.registerTools()
	return s
}

// Serve speaks JSON-RPC over stdin/stdout until ctx ends or the client disconnects.
func (s *Server) Serve(ctx context.Context) error {
	log.Info().Str("version", s.version).Msg("MCP server listening on stdio")
	return s.sdk.Run(ctx, &mcpsdk.StdioTransport{})
}

// Connect attaches the server to an arbitrary transport.
func (s *Server) Connect(ctx context.Context, t mcpsdk.Transport) (*mcpsdk.ServerSession, error) {
	return s.sdk.Connect(ctx, t, nil)
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.sdk, &mcpsdk.Tool{
		Name: "get_performance_metrics",
		Description: "Get the whole-dataset performance snapshot: total issues (backlog excluded), resolved, active and completion rate. " +
			"Served from a 5 minute cache; set refresh to force a new fetch. If 'warning' is present the numbers are from an earlier successful load.",
	}, s.toolPerformance)

	mcpsdk.AddTool(s.sdk, &mcpsdk.Tool{
		Name: "get_dashboard",
		Description: "Get the KPIs and chart groupings for a sprint (omit or use 'all' for every issue): totals, resolved %, active, average resolution time, " +
			"issues by priority/project/state, team performance and the issues-created timeline. Use 'list_sprints' to find valid sprint names.",
	}, s.toolDashboard)

	mcpsdk.AddTool(s.sdk, &mcpsdk.Tool{
		Name:        "list_sprints",
		Description: "List the sprint names that can be passed to 'get_dashboard'.",
	}, s.toolSprints)
}

type PerformanceInput struct {
	Refresh bool `json:"refresh,omitempty" jsonschema:"bypass the cache and fetch fresh data"`
}

type DashboardInput struct {
	Sprint  string `json:"sprint,omitempty" jsonschema:"exact sprint name, or 'all'"`
	Days    int    `json:"days,omitempty" jsonschema:"timeline window in days (default 30)"`
	Mermaid bool   `json:"mermaid,omitempty" jsonschema:"also render each chart as a Mermaid diagram"`
}

type SprintsInput struct{}

func (s *Server) toolPerformance(ctx context.Context, _ *mcpsdk.CallToolRequest, in PerformanceInput) (*mcpsdk.CallToolResult, any, error) {
	snap, err := s.svc.Metrics(ctx, in.Refresh)
	if err != nil {
		return nil, nil, describeError(err)
	}
	return textResult(snap), nil, nil
}

// DashboardResult is the get_dashboard payload.
type DashboardResult struct {
	*dashboard.Dashboard
	Charts map[dashboard.ChartKind]string `json:"charts,omitempty"`
}

func (s *Server) toolDashboard(ctx context.Context, _ *mcpsdk.CallToolRequest, in DashboardInput) (*mcpsdk.CallToolResult, any, error) {
	res, err := s.dashboard(ctx, in)
	if err != nil {
		return nil, nil, err
	}
	return textResult(res), nil, nil
}

func (s *Server) dashboard(ctx context.Context, in DashboardInput) (*DashboardResult, error) {
	d, err := s.svc.Dashboard(ctx, in.Sprint, in.Days)
	if err != nil {
		return nil, describeError(err)
	}

	res := &DashboardResult{Dashboard: d}
	if in.Mermaid {
		labels := s.svc.Labels()
		res.Charts = make(map[dashboard.ChartKind]string, len(dashboard.ChartKinds))
		for _, kind := range dashboard.ChartKinds {
			if chart := visuals.Chart(kind, labels, dashboard.Series(d.Overview, kind)); chart != "" {
				res.Charts[kind] = chart
			}
		}
	}
	return res, nil
}

func (s *Server) toolSprints(ctx context.Context, _ *mcpsdk.CallToolRequest, _ SprintsInput) (*mcpsdk.CallToolResult, any, error) {
	sprints, err := s.svc.Sprints(ctx)
	if err != nil {
		return nil, nil, describeError(err)
	}
	return textResult(map[string]any{"sprints": sprints}), nil, nil
}

func textResult(data any) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: formatResult(data)}},
	}
}

func formatResult(data any) string {
	out, _ := json.MarshalIndent(data, "", "  ")
	return string(out)
}
