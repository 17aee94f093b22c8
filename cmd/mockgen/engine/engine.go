package engine

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"youtrack-pulse/internal/youtrack"
)

type GeneratorConfig struct {
	Scenario     string // "mild", "chaos" or "drift"
	Distribution string // "uniform" or "weibull"
	Count        int
	Sprints      int
	SprintDays   int
	Seed         int64
	Now          time.Time
}

var (
	projects = []youtrack.ProjectDTO{
		{ID: "0-1", Name: "Platform", ShortName: "PLT"},
		{ID: "0-2", Name: "Web", ShortName: "WEB"},
	}
	users = []youtrack.UserDTO{
		{ID: "1-1", Login: "ana", Name: "ana", FullName: "Ana Souza"},
		{ID: "1-2", Login: "bruno", Name: "bruno", FullName: "Bruno Lima"},
		{ID: "1-3", Login: "carla", Name: "carla", FullName: "Carla Dias"},
	}
	priorities = []string{"Critical", "High", "Normal", "Normal", "Low"}
)

// Generate builds a synthetic tracker: issues arrive one per day spread over the
// sprints, and each moves Open -> In Progress -> Done after a sampled cycle time.
func Generate(cfg GeneratorConfig) *youtrack.Fixture {
	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}
	if cfg.Sprints <= 0 {
		cfg.Sprints = 4
	}
	if cfg.SprintDays <= 0 {
		cfg.SprintDays = 14
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	sprintNames := make([]string, cfg.Sprints)
	for i := range sprintNames {
		sprintNames[i] = fmt.Sprintf("Sprint %d", i+1)
	}

	// We want the last arrival to be today (cfg.Now)
	tArrival := cfg.Now.AddDate(0, 0, -cfg.Count)
	span := cfg.Sprints * cfg.SprintDays

	issues := make([]youtrack.IssueDTO, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		project := projects[i%len(projects)]
		arrival := tArrival.Add(time.Duration(i*24) * time.Hour)

		// 1. Sample total cycle time
		var totalDuration float64
		k, lambda := 2.5, 9.5
		switch cfg.Scenario {
		case "chaos":
			k = 0.8
			if cfg.Distribution == "weibull" {
				lambda = 12.0
			}
		case "drift":
			ratio := float64(i) / float64(cfg.Count)
			k = 2.5 - (1.7 * ratio)
			lambda = 9.5 + (2.5 * ratio)
		}
		if cfg.Distribution == "weibull" {
			totalDuration = weibullSample(rng, k, lambda)
		} else {
			totalDuration = 6.0 + rng.Float64()*5.0
			if cfg.Scenario == "chaos" && rng.Float64() < 0.2 {
				totalDuration += 10 + rng.Float64()*15
			}
			if cfg.Scenario == "drift" && i > cfg.Count/2 {
				totalDuration *= 2.0
			}
		}

		// 2. Determine state based on current age
		ageDays := cfg.Now.Sub(arrival).Hours() / 24.0
		state := "Done"
		var resolved *int64
		if ageDays <= totalDuration {
			switch progress := ageDays / totalDuration; {
			case progress < 0.15:
				state = "Open"
			case progress < 0.40:
				state = "Backlog"
			default:
				state = "In Progress"
			}
		} else {
			ms := youtrack.ToMillis(arrival.Add(time.Duration(totalDuration*24) * time.Hour))
			resolved = &ms
		}

		issue := youtrack.IssueDTO{
			ID:         fmt.Sprintf("2-%d", i+1),
			IDReadable: fmt.Sprintf("%s-%d", project.ShortName, i/len(projects)+1),
			Summary:    fmt.Sprintf("Synthetic issue %d", i+1),
			Created:    youtrack.ToMillis(arrival),
			Updated:    youtrack.ToMillis(arrival),
			Resolved:   resolved,
			Reporter:   &users[0],
			Project:    project,
			CustomFields: []youtrack.CustomFieldDTO{
				singleRef("State", state),
				singleRef("Priority", priorities[rng.Intn(len(priorities))]),
			},
		}
		if resolved != nil {
			issue.Updated = *resolved
		}
		// roughly one in eight issues stays unassigned
		if rng.Intn(8) != 0 {
			u := users[rng.Intn(len(users))]
			issue.Assignee = &u
		}
		if span > 0 {
			offset := int(cfg.Now.Sub(arrival).Hours()/24) % span
			idx := cfg.Sprints - 1 - offset/cfg.SprintDays
			if idx >= 0 {
				issue.CustomFields = append(issue.CustomFields, multiRef("Sprints", sprintNames[idx]))
			}
		}
		issues = append(issues, issue)
	}

	bundle := make([]youtrack.BundleValueDTO, 0, len(sprintNames)+1)
	bundle = append(bundle, youtrack.BundleValueDTO{Name: "Sprint 0", Archived: true})
	for _, name := range sprintNames {
		bundle = append(bundle, youtrack.BundleValueDTO{Name: name})
	}
	customFields := make(map[string][]youtrack.ProjectCustomFieldDTO, len(projects))
	for _, p := range projects {
		customFields[p.ID] = []youtrack.ProjectCustomFieldDTO{
			{Field: youtrack.FieldDTO{Name: "Sprints"}, Bundle: &youtrack.BundleDTO{Values: bundle}},
		}
	}

	return &youtrack.Fixture{
		Projects:     projects,
		Users:        users,
		Issues:       issues,
		CustomFields: customFields,
	}
}

func singleRef(field, name string) youtrack.CustomFieldDTO {
	raw, _ := json.Marshal(map[string]string{"name": name})
	return youtrack.CustomFieldDTO{
		Name:               field,
		Value:              raw,
		ProjectCustomField: &youtrack.ProjectCustomFieldRef{Field: &youtrack.FieldDTO{Name: field, FieldType: "enum[1]"}},
	}
}

func multiRef(field string, names ...string) youtrack.CustomFieldDTO {
	refs := make([]map[string]string, len(names))
	for i, n := range names {
		refs[i] = map[string]string{"name": n}
	}
	raw, _ := json.Marshal(refs)
	return youtrack.CustomFieldDTO{
		Name:               field,
		Value:              raw,
		ProjectCustomField: &youtrack.ProjectCustomFieldRef{Field: &youtrack.FieldDTO{Name: field, FieldType: "version[*]"}},
	}
}

func weibullSample(rng *rand.Rand, k, lambda float64) float64 {
	u := rng.Float64()
	if u == 0 {
		u = 0.0001
	}
	// X = lambda * (-ln(1-u))^(1/k)
	return lambda * math.Pow(-math.Log(1.0-u), 1.0/k)
}

// Save writes the fixture as indented JSON to outDir/name.json and returns the path.
func Save(outDir, name string, f *youtrack.Fixture) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(outDir, name+".json")
	fw, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer fw.Close()

	enc := json.NewEncoder(fw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return "", err
	}
	return path, nil
}
