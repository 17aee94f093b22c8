package api

import (
	"context"
	"errors"
	"net/http"

	"youtrack-pulse/internal/dashboard"
	"youtrack-pulse/internal/youtrack"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Error is the body of every failed API response.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	CodeConfiguration = "configuration_error"
	CodeUnauthorized  = "unauthorized"
	CodeRateLimited   = "rate_limited"
	CodeTimeout       = "timeout"
	CodeUpstream      = "upstream_error"
	CodeBadRequest    = "bad_request"
	CodeNotFound      = "not_found"
)

// configurationMessage tells an operator how to fix a missing setup.
const configurationMessage = "Configure YOUTRACK_URL and YOUTRACK_TOKEN to load dashboard data"

func writeError(c *gin.Context, status int, e Error) {
	log.Warn().Int("status", status).Str("code", e.Code).Str("path", c.FullPath()).Msg(e.Message)
	c.Header("Cache-Control", "no-store")
	c.AbortWithStatusJSON(status, e)
}

// writeServiceError maps failures from the dashboard service to status codes.
// Configuration errors are kept apart from transient upstream ones so clients can
// show setup guidance instead of a retry hint.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, youtrack.ErrMissingCredentials):
		writeError(c, http.StatusServiceUnavailable, Error{Code: CodeConfiguration, Message: configurationMessage})
	case errors.Is(err, youtrack.ErrUnauthorized):
		writeError(c, http.StatusBadGateway, Error{Code: CodeUnauthorized, Message: err.Error()})
	case errors.Is(err, youtrack.ErrRateLimited):
		writeError(c, http.StatusBadGateway, Error{Code: CodeRateLimited, Message: err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		writeError(c, http.StatusGatewayTimeout, Error{Code: CodeTimeout, Message: err.Error()})
	case errors.Is(err, dashboard.ErrUnknownChart):
		writeError(c, http.StatusNotFound, Error{Code: CodeNotFound, Message: err.Error()})
	default:
		writeError(c, http.StatusBadGateway, Error{Code: CodeUpstream, Message: err.Error()})
	}
}
