package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"youtrack-pulse/internal/cache"
	"youtrack-pulse/internal/stats"
	"youtrack-pulse/internal/youtrack"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	YouTrack     youtrack.Config
	FixturePath  string
	HTTPAddr     string
	Locale       string
	CacheTTL     time.Duration
	RefreshCron  string
	TimelineDays int
	LogDir       string
}

// Load loads the configuration from .env files and environment variables.
// Missing credentials are not a load failure; see Validate.
func Load() (*AppConfig, error) {
	// 1. Binary directory first, so an installed server finds its own settings
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Working directory (development)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	logDir := os.Getenv("LOGS_FOLDER")
	if logDir == "" {
		if exeDir != "" {
			logDir = filepath.Join(exeDir, "logs")
		} else {
			logDir = "logs"
		}
	}

	cfg := &AppConfig{
		YouTrack: youtrack.Config{
			BaseURL: firstEnv("YOUTRACK_URL", "NEXT_PUBLIC_YOUTRACK_URL"),
			Token:   firstEnv("YOUTRACK_TOKEN", "NEXT_PUBLIC_YOUTRACK_TOKEN"),
			Timeout: time.Duration(getEnvInt("YOUTRACK_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		FixturePath:  getEnv("YOUTRACK_FIXTURE", ""),
		HTTPAddr:     getEnv("HTTP_ADDR", ":8080"),
		Locale:       getEnv("DASHBOARD_LOCALE", "pt-BR"),
		CacheTTL:     time.Duration(getEnvInt("METRICS_CACHE_TTL_SECONDS", int(cache.DefaultTTL/time.Second))) * time.Second,
		RefreshCron:  getEnv("REFRESH_CRON", "@every 30s"),
		TimelineDays: getEnvInt("TIMELINE_DAYS", stats.DefaultTimelineDays),
		LogDir:       logDir,
	}

	return cfg, nil
}

// Validate reports youtrack.ErrMissingCredentials when neither credentials nor a
// fixture are configured.
func (c *AppConfig) Validate() error {
	if c.FixturePath != "" {
		return nil
	}
	return c.YouTrack.Validate()
}

// NewClient builds the tracker client for this configuration. Configuration errors
// yield a client that reports them on every call, so surfaces can keep running.
func (c *AppConfig) NewClient() youtrack.Client {
	if c.FixturePath != "" {
		fixture, err := youtrack.LoadFixture(c.FixturePath)
		if err != nil {
			log.Error().Err(err).Str("path", c.FixturePath).Msg("Failed to load fixture")
			return youtrack.NewUnavailableClient(err)
		}
		log.Info().Str("path", c.FixturePath).Int("issues", len(fixture.Issues)).Msg("Serving issues from fixture")
		return youtrack.NewFixtureClient(fixture)
	}

	client, err := youtrack.NewClient(c.YouTrack)
	if err != nil {
		log.Warn().Err(err).Msg("YouTrack is not configured")
		return youtrack.NewUnavailableClient(err)
	}
	return client
}

// Aggregator builds the stats aggregator for the configured locale.
func (c *AppConfig) Aggregator() *stats.Aggregator {
	return stats.NewAggregator(stats.LabelsFor(c.Locale), stats.DefaultVocabulary())
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// firstEnv returns the first non-blank value among keys.
func firstEnv(keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			return value
		}
	}
	return ""
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && intVal > 0 {
			return intVal
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring invalid numeric setting")
	}
	return fallback
}
