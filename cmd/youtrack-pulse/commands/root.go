package commands

import (
	"youtrack-pulse/internal/config"
	"youtrack-pulse/internal/dashboard"
	"youtrack-pulse/internal/logging"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig

	svc *dashboard.Service
)

var rootCmd = &cobra.Command{
	Use:   "youtrack-pulse",
	Short: "YouTrack Pulse serves sprint KPIs and charts computed from YouTrack issues",
	Long: `YouTrack Pulse fetches issues from a YouTrack instance and computes dashboard KPIs
(totals, resolution rate, active work, average resolution time) and chart groupings.
Run without a subcommand it starts the MCP server on stdio.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		svc = dashboard.NewService(cfg.NewClient(), cfg.Aggregator(), dashboard.Options{
			CacheTTL:     cfg.CacheTTL,
			TimelineDays: cfg.TimelineDays,
		})

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Str("command", cmd.Name()).
			Msg("YouTrack Pulse starting")
	},
	RunE: runMCP,
}

func Execute() error {
	return rootCmd.Execute()
}

// requireConfigured fails fast for one-shot commands that cannot do anything useful
// without tracker access.
func requireConfigured() error {
	return cfg.Validate()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.AddCommand(serveCmd, metricsCmd, reportCmd, sprintsCmd, mcpCmd)
}
