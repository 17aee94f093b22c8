package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var metricsRefresh bool

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Print the whole-dataset performance snapshot as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireConfigured(); err != nil {
			return err
		}
		snap, err := svc.Metrics(cmd.Context(), metricsRefresh)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	},
}

var sprintsCmd = &cobra.Command{
	Use:   "sprints",
	Short: "List selectable sprint names",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireConfigured(); err != nil {
			return err
		}
		sprints, err := svc.Sprints(cmd.Context())
		if err != nil {
			return err
		}
		for _, s := range sprints {
			fmt.Fprintln(cmd.OutOrStdout(), s)
		}
		return nil
	},
}

func init() {
	metricsCmd.Flags().BoolVar(&metricsRefresh, "refresh", false, "bypass the metrics cache")
}
