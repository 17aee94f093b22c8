package youtrack

import (
	"context"
	"slices"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// discoveryConcurrency bounds parallel per-project custom field lookups.
const discoveryConcurrency = 4

// CustomFieldSource is the part of Client sprint discovery needs.
type CustomFieldSource interface {
	GetProjectCustomFields(ctx context.Context, projectID string) ([]ProjectCustomField, error)
}

// DiscoverSprints collects the non-archived values of every project's "Sprints" or
// "Sprint" field (exact, case-sensitive names). A failing project is logged and
// skipped; if all fail the result is empty, not an error. Only cancellation of ctx
// is reported.
func DiscoverSprints(ctx context.Context, src CustomFieldSource, projects []Project) ([]string, error) {
	perProject := make([][]string, len(projects))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(discoveryConcurrency)
	for i, p := range projects {
		g.Go(func() error {
			fields, err := src.GetProjectCustomFields(gctx, p.ID)
			if err != nil {
				log.Warn().Err(err).Str("project", p.ShortName).Msg("Skipping project during sprint discovery")
				return nil
			}
			perProject[i] = sprintBundleValues(fields)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	names := []string{}
	for _, values := range perProject {
		for _, v := range values {
			if !seen[v] {
				seen[v] = true
				names = append(names, v)
			}
		}
	}
	slices.Sort(names)

	log.Debug().Int("projects", len(projects)).Int("sprints", len(names)).Msg("Sprint discovery finished")
	return names, nil
}

func sprintBundleValues(fields []ProjectCustomField) []string {
	var values []string
	for _, f := range fields {
		if f.Name != "Sprints" && f.Name != "Sprint" {
			continue
		}
		for _, v := range f.BundleValues {
			if !v.Archived && v.Name != "" {
				values = append(values, v.Name)
			}
		}
	}
	return values
}
