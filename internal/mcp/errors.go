package mcp

import (
	"errors"
	"fmt"

	"youtrack-pulse/internal/youtrack"
)

// describeError rewrites failures into guidance an assistant can relay to the user.
func describeError(err error) error {
	switch {
	case errors.Is(err, youtrack.ErrMissingCredentials):
		return fmt.Errorf("YouTrack is not configured. Ask the user to set YOUTRACK_URL and YOUTRACK_TOKEN in the server's .env file: %w", err)
	case errors.Is(err, youtrack.ErrUnauthorized):
		return fmt.Errorf("YouTrack rejected the token. Ask the user to check YOUTRACK_TOKEN permissions: %w", err)
	case errors.Is(err, youtrack.ErrRateLimited):
		return fmt.Errorf("YouTrack is rate limiting requests; retry later instead of looping: %w", err)
	}
	return err
}
