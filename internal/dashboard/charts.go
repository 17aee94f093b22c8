package dashboard

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"youtrack-pulse/internal/stats"
)

// ChartKind names one chart grouping of a dashboard.
type ChartKind string

const (
	ChartPriority ChartKind = "priority"
	ChartProject  ChartKind = "project"
	ChartState    ChartKind = "state"
	ChartTeam     ChartKind = "team"
	ChartTimeline ChartKind = "timeline"
)

// ChartKinds lists every supported chart in display order.
var ChartKinds = []ChartKind{ChartPriority, ChartProject, ChartState, ChartTeam, ChartTimeline}

// ErrUnknownChart is returned for a chart kind outside ChartKinds.
var ErrUnknownChart = errors.New("unknown chart")

// ParseChartKind validates a chart name.
func ParseChartKind(name string) (ChartKind, error) {
	kind := ChartKind(name)
	if !slices.Contains(ChartKinds, kind) {
		return "", fmt.Errorf("%w %q", ErrUnknownChart, name)
	}
	return kind, nil
}

// Series picks one chart's data out of an overview.
func Series(ov stats.Overview, kind ChartKind) []stats.ChartDatum {
	switch kind {
	case ChartPriority:
		return ov.ByPriority
	case ChartProject:
		return ov.ByProject
	case ChartState:
		return ov.ByState
	case ChartTeam:
		return ov.TeamPerformance
	case ChartTimeline:
		return ov.CreatedOverTime
	}
	return nil
}

// Chart builds the dashboard and returns one of its series.
func (s *Service) Chart(ctx context.Context, kind ChartKind, sprint string, days int) ([]stats.ChartDatum, error) {
	d, err := s.Dashboard(ctx, sprint, days)
	if err != nil {
		return nil, err
	}
	return Series(d.Overview, kind), nil
}
