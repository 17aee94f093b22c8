package visuals

import (
	"youtrack-pulse/internal/dashboard"
	"youtrack-pulse/internal/stats"
)

// Chart renders one dashboard series in the form that suits it: the creation
// timeline as a line, team performance as bars, the categorical groupings as pies.
func Chart(kind dashboard.ChartKind, labels stats.Labels, data []stats.ChartDatum) string {
	title := ChartTitle(kind, labels)
	switch kind {
	case dashboard.ChartTimeline:
		return LineChart(title, "Issues", data)
	case dashboard.ChartTeam:
		return BarChart(title, labels.ResolvedIssues, data)
	case dashboard.ChartPriority, dashboard.ChartState:
		return PieChart(title, data)
	default:
		return BarChart(title, "Issues", data)
	}
}

// ChartTitle is the human title of a chart kind.
func ChartTitle(kind dashboard.ChartKind, labels stats.Labels) string {
	english := labels.Locale == "en"
	switch kind {
	case dashboard.ChartPriority:
		return pick(english, "Issues by Priority", "Issues por Prioridade")
	case dashboard.ChartProject:
		return pick(english, "Issues by Project", "Issues por Projeto")
	case dashboard.ChartState:
		return pick(english, "Issues by State", "Issues por Estado")
	case dashboard.ChartTeam:
		return pick(english, "Team Performance", "Performance da Equipe")
	case dashboard.ChartTimeline:
		return pick(english, "Issues Created Over Time", "Issues Criadas ao Longo do Tempo")
	}
	return string(kind)
}

func pick(english bool, en, pt string) string {
	if english {
		return en
	}
	return pt
}
