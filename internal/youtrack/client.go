package youtrack

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultLimit bounds a fetch when the caller does not set one.
	DefaultLimit = 100
	// FullFetchLimit is the row cap used by the whole-dataset metrics path.
	FullFetchLimit = 1000
	// MaxLimit is the hard upper bound for any single fetch. Larger requests are truncated.
	MaxLimit = 1000
)

var (
	// ErrMissingCredentials indicates the base URL or token is not configured.
	ErrMissingCredentials = errors.New("YouTrack credentials are not configured: set YOUTRACK_URL and YOUTRACK_TOKEN")
	// ErrUnauthorized indicates the tracker rejected the token (401/403).
	ErrUnauthorized = errors.New("YouTrack authentication failed")
	// ErrRateLimited indicates the tracker answered 429.
	ErrRateLimited = errors.New("YouTrack rate limit exceeded")
)

// APIError is returned for every non-2xx answer from the tracker.
type APIError struct {
	StatusCode int
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("YouTrack API returned status %d for %s", e.StatusCode, e.Endpoint)
	}
	return fmt.Sprintf("YouTrack API returned status %d for %s: %s", e.StatusCode, e.Endpoint, e.Body)
}

// Unwrap lets callers match auth and rate-limit failures with errors.Is.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case 401, 403:
		return ErrUnauthorized
	case 429:
		return ErrRateLimited
	}
	return nil
}

// Client is the interface for reading issue data from YouTrack.
type Client interface {
	FetchIssues(ctx context.Context, q Query) ([]Issue, error)
	GetProjects(ctx context.Context) ([]Project, error)
	GetUsers(ctx context.Context) ([]User, error)
	GetProjectCustomFields(ctx context.Context, projectID string) ([]ProjectCustomField, error)
	DiscoverSprints(ctx context.Context) ([]string, error)
}

// Config holds the connection settings for YouTrack.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Validate reports ErrMissingCredentials when either setting is empty.
func (c Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" || strings.TrimSpace(c.Token) == "" {
		return ErrMissingCredentials
	}
	return nil
}

// NewClient creates a REST client. It fails only on invalid configuration.
func NewClient(cfg Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewRESTClient(cfg), nil
}

// unavailableClient answers every call with the configuration error that prevented
// building a real client, so the API can keep serving guidance instead of crashing.
type unavailableClient struct {
	err error
}

// NewUnavailableClient returns a Client that fails every call with err.
func NewUnavailableClient(err error) Client {
	return unavailableClient{err: err}
}

func (u unavailableClient) FetchIssues(context.Context, Query) ([]Issue, error) { return nil, u.err }
func (u unavailableClient) GetProjects(context.Context) ([]Project, error)      { return nil, u.err }
func (u unavailableClient) GetUsers(context.Context) ([]User, error)            { return nil, u.err }
func (u unavailableClient) DiscoverSprints(context.Context) ([]string, error)   { return nil, u.err }
func (u unavailableClient) GetProjectCustomFields(context.Context, string) ([]ProjectCustomField, error) {
	return nil, u.err
}
