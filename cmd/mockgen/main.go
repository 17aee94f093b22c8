package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"youtrack-pulse/cmd/mockgen/engine"
)

func main() {
	scenario := flag.String("scenario", "mild", "Scenario to generate: mild, chaos, drift")
	distribution := flag.String("distribution", "uniform", "Distribution to use: uniform, weibull")
	outDir := flag.String("out", "./.cache", "Output directory for the fixture file")
	count := flag.Int("count", 200, "Number of issues to generate")
	sprints := flag.Int("sprints", 4, "Number of sprints to spread issues over")
	seed := flag.Int64("seed", 1, "Random seed")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Scenario:     *scenario,
		Distribution: *distribution,
		Count:        *count,
		Sprints:      *sprints,
		Seed:         *seed,
		Now:          time.Now(),
	}

	fmt.Printf("Generating scenario '%s' (Distribution: %s, Count: %d) to %s...\n", cfg.Scenario, cfg.Distribution, cfg.Count, *outDir)

	path, err := engine.Save(*outDir, "youtrack_fixture", engine.Generate(cfg))
	if err != nil {
		fmt.Printf("Failed to save mock data: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Done. Run with YOUTRACK_FIXTURE=%s\n", path)
}
