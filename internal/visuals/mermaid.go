package visuals

import (
	"fmt"
	"math"
	"strings"

	"youtrack-pulse/internal/stats"
)

// maxXPoints is roughly where Mermaid's xychart starts overlapping axis labels.
const maxXPoints = 60

// BarChart creates a Mermaid xychart-beta bar chart over grouped counts.
func BarChart(title, yLabel string, data []stats.ChartDatum) string {
	if len(data) == 0 {
		return ""
	}

	var labels []string
	var values []string
	maxVal := 0.0
	for _, d := range data {
		labels = append(labels, quote(d.Name))
		values = append(values, formatValue(d.Value))
		maxVal = math.Max(maxVal, d.Value)
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title %s\n", quote(title)))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis %s 0 --> %d\n", quote(yLabel), yCeiling(maxVal)))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// PieChart creates a Mermaid pie chart. Zero-valued slices are skipped since
// Mermaid refuses to draw them.
func PieChart(title string, data []stats.ChartDatum) string {
	var sb strings.Builder
	rows := 0
	for _, d := range data {
		if d.Value <= 0 {
			continue
		}
		if rows == 0 {
			sb.WriteString("```mermaid\n")
			sb.WriteString(fmt.Sprintf("pie title %s\n", escape(title)))
		}
		sb.WriteString(fmt.Sprintf("    %s : %s\n", quote(d.Name), formatValue(d.Value)))
		rows++
	}
	if rows == 0 {
		return ""
	}
	sb.WriteString("```")
	return sb.String()
}

// LineChart creates a Mermaid xychart-beta line over a time series,
// subsampling labels when the series is too wide to render.
func LineChart(title, yLabel string, data []stats.ChartDatum) string {
	if len(data) == 0 {
		return ""
	}

	subsampleRate := 1
	if len(data) > maxXPoints {
		subsampleRate = int(math.Ceil(float64(len(data)) / maxXPoints))
	}

	var labels []string
	var values []string
	maxVal := 0.0
	for i, d := range data {
		maxVal = math.Max(maxVal, d.Value)
		if i%subsampleRate == 0 || i == len(data)-1 {
			labels = append(labels, quote(d.Name))
			values = append(values, formatValue(d.Value))
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title %s\n", quote(title)))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis %s 0 --> %d\n", quote(yLabel), yCeiling(maxVal)))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// yCeiling leaves some breathing room above the tallest value.
func yCeiling(maxVal float64) int {
	return int(maxVal) + int(math.Max(1, math.Ceil(maxVal*0.2)))
}

func formatValue(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}

func quote(s string) string {
	return `"` + escape(s) + `"`
}

// escape drops characters that break Mermaid's quoted labels.
func escape(s string) string {
	return strings.NewReplacer(`"`, `'`, "\n", " ").Replace(s)
}
