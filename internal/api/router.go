// Package api exposes the dashboard over HTTP.
package api

import (
	"context"
	"time"

	"youtrack-pulse/internal/cache"
	"youtrack-pulse/internal/dashboard"
	"youtrack-pulse/internal/stats"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// CacheControl is sent on every successful /api GET.
const CacheControl = "public, max-age=300, stale-while-revalidate=60"

// Service is what the handlers need from the dashboard.
type Service interface {
	Dashboard(ctx context.Context, sprint string, days int) (*dashboard.Dashboard, error)
	Sprints(ctx context.Context) ([]string, error)
	Chart(ctx context.Context, kind dashboard.ChartKind, sprint string, days int) ([]stats.ChartDatum, error)
	Metrics(ctx context.Context, force bool) (cache.Snapshot, error)
	InvalidateMetrics()
	MetricsStatus() cache.Status
	Labels() stats.Labels
}

// NewRouter wires the routes. debug keeps gin's debug mode on.
func NewRouter(svc Service, debug bool) *gin.Engine {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger())

	h := &handlers{svc: svc}

	r.GET("/healthz", h.healthz)

	api := r.Group("/api")
	api.Use(cacheHeaders())
	api.GET("/performance", h.performance)
	api.DELETE("/performance/cache", h.invalidate)
	api.GET("/performance/status", h.status)
	api.GET("/dashboard", h.dashboard)
	api.GET("/sprints", h.sprints)
	api.GET("/charts/:kind", h.chart)

	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("http")
	}
}

// cacheHeaders marks successful reads as cacheable by intermediaries.
func cacheHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == "GET" {
			c.Header("Cache-Control", CacheControl)
		}
		c.Next()
	}
}
