package api

import (
	"net/http"
	"strconv"
	"time"

	"youtrack-pulse/internal/cache"
	"youtrack-pulse/internal/dashboard"
	"youtrack-pulse/internal/stats"
	"youtrack-pulse/internal/visuals"

	"github.com/gin-gonic/gin"
)

type handlers struct {
	svc Service
}

type performanceResponse struct {
	stats.PerformanceMetrics
	UpdatedAt time.Time `json:"updatedAt"`
	Warning   string    `json:"warning,omitempty"`
}

type chartResponse struct {
	Kind  dashboard.ChartKind `json:"kind"`
	Title string              `json:"title"`
	Data  []stats.ChartDatum  `json:"data"`
}

func (h *handlers) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *handlers) performance(c *gin.Context) {
	force, err := boolParam(c, "refresh")
	if err != nil {
		return
	}

	snap, err := h.svc.Metrics(c.Request.Context(), force)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPerformanceResponse(snap))
}

func toPerformanceResponse(snap cache.Snapshot) performanceResponse {
	return performanceResponse{
		PerformanceMetrics: snap.Metrics,
		UpdatedAt:          snap.UpdatedAt,
		Warning:            snap.Warning,
	}
}

func (h *handlers) invalidate(c *gin.Context) {
	h.svc.InvalidateMetrics()
	c.Status(http.StatusNoContent)
}

func (h *handlers) status(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.MetricsStatus())
}

func (h *handlers) dashboard(c *gin.Context) {
	days, err := daysParam(c)
	if err != nil {
		return
	}

	d, err := h.svc.Dashboard(c.Request.Context(), c.Query("sprint"), days)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *handlers) sprints(c *gin.Context) {
	sprints, err := h.svc.Sprints(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sprints": sprints})
}

func (h *handlers) chart(c *gin.Context) {
	kind, err := dashboard.ParseChartKind(c.Param("kind"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	days, err := daysParam(c)
	if err != nil {
		return
	}

	data, err := h.svc.Chart(c.Request.Context(), kind, c.Query("sprint"), days)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	labels := h.svc.Labels()
	if c.Query("format") == "mermaid" {
		c.String(http.StatusOK, visuals.Chart(kind, labels, data))
		return
	}
	c.JSON(http.StatusOK, chartResponse{Kind: kind, Title: visuals.ChartTitle(kind, labels), Data: data})
}

// boolParam parses an optional boolean query parameter, writing a 400 on garbage.
func boolParam(c *gin.Context, name string) (bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		writeError(c, http.StatusBadRequest, Error{Code: CodeBadRequest, Message: name + " must be a boolean"})
		return false, err
	}
	return v, nil
}

func daysParam(c *gin.Context) (int, error) {
	raw := c.Query("days")
	if raw == "" {
		return 0, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 || days > 365 {
		writeError(c, http.StatusBadRequest, Error{Code: CodeBadRequest, Message: "days must be between 1 and 365"})
		if err == nil {
			err = strconv.ErrRange
		}
		return 0, err
	}
	return days, nil
}
