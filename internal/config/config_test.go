package config

import (
	"errors"
	"testing"
	"time"

	"youtrack-pulse/internal/youtrack"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"YOUTRACK_URL", "NEXT_PUBLIC_YOUTRACK_URL", "YOUTRACK_TOKEN", "NEXT_PUBLIC_YOUTRACK_TOKEN", "YOUTRACK_FIXTURE"} {
		t.Setenv(key, "")
	}
	t.Setenv("HTTP_ADDR", ":8080")
	t.Setenv("METRICS_CACHE_TTL_SECONDS", "300")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v, want 5m", cfg.CacheTTL)
	}
	if !errors.Is(cfg.Validate(), youtrack.ErrMissingCredentials) {
		t.Errorf("Validate() = %v, want ErrMissingCredentials", cfg.Validate())
	}
}

func TestLoad_PublicFallback(t *testing.T) {
	t.Setenv("YOUTRACK_URL", "")
	t.Setenv("YOUTRACK_TOKEN", "")
	t.Setenv("NEXT_PUBLIC_YOUTRACK_URL", "https://example.youtrack.cloud")
	t.Setenv("NEXT_PUBLIC_YOUTRACK_TOKEN", "perm:abc")
	t.Setenv("YOUTRACK_FIXTURE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.YouTrack.BaseURL != "https://example.youtrack.cloud" || cfg.YouTrack.Token != "perm:abc" {
		t.Errorf("YouTrack = %+v", cfg.YouTrack)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected int
	}{
		{"Valid", "45", 45},
		{"Padded", " 12 ", 12},
		{"Garbage", "soon", 30},
		{"Negative", "-5", 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_INT", tt.value)
			if got := getEnvInt("TEST_INT", 30); got != tt.expected {
				t.Errorf("getEnvInt() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNewClient_Unconfigured(t *testing.T) {
	cfg := &AppConfig{}
	_, err := cfg.NewClient().GetProjects(t.Context())
	if !errors.Is(err, youtrack.ErrMissingCredentials) {
		t.Errorf("GetProjects() = %v, want ErrMissingCredentials", err)
	}
}
