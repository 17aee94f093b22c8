package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"youtrack-pulse/internal/api"
	"youtrack-pulse/internal/jobs"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	serveAddr string
	serveOpen bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard JSON API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.HTTPAddr
		if serveAddr != "" {
			addr = serveAddr
		}

		if err := cfg.Validate(); err != nil {
			// keep serving so clients get a configuration_error instead of a refused connection
			log.Warn().Err(err).Msg("Starting without YouTrack access")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if cfg.RefreshCron != "" {
			warmup, err := jobs.NewWarmup(svc, cfg.RefreshCron)
			if err != nil {
				return err
			}
			warmup.Start()
			defer warmup.Stop()
			log.Info().Str("schedule", cfg.RefreshCron).Msg("Metrics warm-up scheduled")
		}

		srv := &http.Server{
			Addr:              addr,
			Handler:           api.NewRouter(svc, verbose),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() { errCh <- srv.ListenAndServe() }()
		log.Info().Str("addr", addr).Msg("HTTP API listening")

		if serveOpen {
			url := localURL(addr) + "/api/dashboard"
			if err := browser.OpenURL(url); err != nil {
				log.Warn().Err(err).Str("url", url).Msg("Failed to open browser")
			}
		}

		select {
		case <-ctx.Done():
			log.Info().Msg("Shutting down")
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

// localURL turns a listen address such as ":8080" into a browsable URL.
func localURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from HTTP_ADDR)")
	serveCmd.Flags().BoolVar(&serveOpen, "open", false, "open the dashboard in a browser")
}
