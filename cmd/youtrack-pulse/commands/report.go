package commands

import (
	"fmt"
	"io"
	"strings"

	"youtrack-pulse/internal/dashboard"
	"youtrack-pulse/internal/stats"
	"youtrack-pulse/internal/visuals"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	reportSprint  string
	reportDays    int
	reportMermaid bool
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	kpiStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	kpiTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	increaseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	decreaseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the dashboard KPIs and chart groupings for a sprint",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireConfigured(); err != nil {
			return err
		}
		d, err := svc.Dashboard(cmd.Context(), reportSprint, reportDays)
		if err != nil {
			return err
		}
		renderReport(cmd.OutOrStdout(), d, svc.Labels(), reportMermaid)
		return nil
	},
}

func renderReport(w io.Writer, d *dashboard.Dashboard, labels stats.Labels, mermaid bool) {
	sprint := d.Sprint
	if sprint == "" {
		sprint = labels.AllSprints
	}
	fmt.Fprintln(w, titleStyle.Render("YouTrack Pulse · "+sprint))

	cards := []string{
		renderKPI(d.Total),
		renderKPI(d.Resolved),
		renderKPI(d.Active),
		renderKPI(d.AvgResolution),
	}
	fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, cards...))

	for _, kind := range dashboard.ChartKinds {
		if kind == dashboard.ChartTimeline && !mermaid {
			continue
		}
		series := dashboard.Series(d.Overview, kind)
		if len(series) == 0 {
			continue
		}

		fmt.Fprintln(w)
		if mermaid {
			fmt.Fprintln(w, visuals.Chart(kind, labels, series))
			continue
		}
		fmt.Fprintln(w, headerStyle.Render(visuals.ChartTitle(kind, labels)))
		fmt.Fprint(w, renderSeries(series))
	}
}

func renderKPI(k stats.KPI) string {
	value := fmt.Sprint(k.Value)
	if k.Change != nil {
		style := decreaseStyle
		arrow := "▼"
		if k.ChangeType == stats.ChangeIncrease {
			style = increaseStyle
			arrow = "▲"
		}
		value += " " + style.Render(arrow)
	}
	return kpiStyle.Render(kpiTitleStyle.Render(k.Title) + "\n" + value)
}

func renderSeries(series []stats.ChartDatum) string {
	width := 0
	for _, d := range series {
		width = max(width, lipgloss.Width(d.Name))
	}

	var sb strings.Builder
	for _, d := range series {
		pad := strings.Repeat(" ", width-lipgloss.Width(d.Name))
		line := fmt.Sprintf("  %s%s  %g", d.Name, pad, d.Value)
		if pct, ok := d.Extra["percentage"]; ok {
			line += fmt.Sprintf(" / %g (%.1f%%)", d.Extra["total"], pct)
		}
		sb.WriteString(line + "\n")
	}
	return sb.String()
}

func init() {
	reportCmd.Flags().StringVar(&reportSprint, "sprint", "", "sprint name (default all sprints)")
	reportCmd.Flags().IntVar(&reportDays, "days", 0, "timeline window in days (default TIMELINE_DAYS)")
	reportCmd.Flags().BoolVar(&reportMermaid, "mermaid", false, "render charts as Mermaid diagrams")
}
