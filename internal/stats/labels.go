package stats

import "strings"

// Labels carries the user-visible strings of one locale.
type Labels struct {
	Locale             string
	TotalIssues        string
	ResolvedIssues     string
	ActiveIssues       string
	AvgResolutionTime  string
	CompletionRate     string
	NoPriority         string
	NoState            string
	Unassigned         string
	Days               string
	NotAvailable       string
	AllSprints         string
	TimelineDateLayout string
}

var (
	portugueseLabels = Labels{
		Locale:             "pt-BR",
		TotalIssues:        "Total de Issues",
		ResolvedIssues:     "Issues Resolvidas",
		ActiveIssues:       "Issues Ativas",
		AvgResolutionTime:  "Tempo Médio de Resolução",
		CompletionRate:     "Taxa de Conclusão",
		NoPriority:         "Sem Prioridade",
		NoState:            "Sem Estado",
		Unassigned:         "Não Atribuído",
		Days:               "dias",
		NotAvailable:       "N/A",
		AllSprints:         "Todas as Sprints",
		TimelineDateLayout: "02/01/2006",
	}
	englishLabels = Labels{
		Locale:             "en",
		TotalIssues:        "Total Issues",
		ResolvedIssues:     "Resolved Issues",
		ActiveIssues:       "Active Issues",
		AvgResolutionTime:  "Average Resolution Time",
		CompletionRate:     "Completion Rate",
		NoPriority:         "No Priority",
		NoState:            "No State",
		Unassigned:         "Unassigned",
		Days:               "days",
		NotAvailable:       "N/A",
		AllSprints:         "All Sprints",
		TimelineDateLayout: "01/02/2006",
	}
)

// LabelsFor returns the labels for a locale tag. Anything starting with "en"
// is English; everything else falls back to Brazilian Portuguese.
func LabelsFor(locale string) Labels {
	if strings.HasPrefix(strings.ToLower(locale), "en") {
		return englishLabels
	}
	return portugueseLabels
}
