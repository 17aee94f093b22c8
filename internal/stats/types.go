package stats

import (
	"encoding/json"
)

// ChangeType is the trend direction shown next to a KPI.
type ChangeType string

const (
	ChangeIncrease ChangeType = "increase"
	ChangeDecrease ChangeType = "decrease"
)

// Format is an advisory hint for how a KPI value should be displayed.
type Format string

const (
	FormatNumber     Format = "number"
	FormatPercentage Format = "percentage"
	FormatTime       Format = "time"
)

// KPI is a headline metric. Value is either an int count or a pre-formatted string.
type KPI struct {
	Title      string     `json:"title"`
	Value      any        `json:"value"`
	Change     *float64   `json:"change,omitempty"`
	ChangeType ChangeType `json:"changeType,omitempty"`
	Format     Format     `json:"format,omitempty"`
}

// ChartDatum is one labeled point. Extra carries auxiliary numbers such as
// "total" and "percentage"; they are flattened next to name/value in JSON.
type ChartDatum struct {
	Name  string
	Value float64
	Date  string
	Extra map[string]float64
}

func (d ChartDatum) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Extra)+3)
	for k, v := range d.Extra {
		out[k] = v
	}
	out["name"] = d.Name
	out["value"] = d.Value
	if d.Date != "" {
		out["date"] = d.Date
	}
	return json.Marshal(out)
}

// PerformanceMetrics is the whole-dataset snapshot held by the metrics cache.
type PerformanceMetrics struct {
	TotalIssues    int     `json:"totalIssues"`
	ResolvedIssues int     `json:"resolvedIssues"`
	ActiveIssues   int     `json:"activeIssues"`
	CompletionRate float64 `json:"completionRate"`
}

// Overview bundles every KPI and chart grouping for one dashboard view.
type Overview struct {
	Sprint          string       `json:"sprint,omitempty"`
	IssueCount      int          `json:"issueCount"`
	Total           KPI          `json:"total"`
	Resolved        KPI          `json:"resolved"`
	Active          KPI          `json:"active"`
	AvgResolution   KPI          `json:"avgResolution"`
	ByPriority      []ChartDatum `json:"byPriority"`
	ByProject       []ChartDatum `json:"byProject"`
	ByState         []ChartDatum `json:"byState"`
	TeamPerformance []ChartDatum `json:"teamPerformance"`
	CreatedOverTime []ChartDatum `json:"createdOverTime"`
}
