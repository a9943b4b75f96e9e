package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger checks connectivity to one backing service.
type Pinger func(ctx context.Context) error

// HealthHandler serves the liveness and dependency probes. The database is
// required; the optional dependencies only mark the service as degraded.
type HealthHandler struct {
	database   Pinger
	optional   map[string]Pinger
	showErrors bool
	started    time.Time
	now        func() time.Time
}

// NewHealthHandler builds the probes. Driver errors are included in the
// response only when showErrors is set.
func NewHealthHandler(database Pinger, optional map[string]Pinger, showErrors bool) *HealthHandler {
	return &HealthHandler{
		database:   database,
		optional:   optional,
		showErrors: showErrors,
		started:    time.Now(),
		now:        time.Now,
	}
}

func (h *HealthHandler) unhealthy(err error) dependencyStatus {
	if !h.showErrors {
		return dependencyStatus{Status: "unhealthy"}
	}
	return dependencyStatus{Status: "unhealthy", Error: err.Error()}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type healthResponse struct {
	Status       string                      `json:"status"`
	Uptime       float64                     `json:"uptime"`
	Timestamp    time.Time                   `json:"timestamp"`
	Database     string                      `json:"database"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Liveness handles GET /health/live. It confirms the process is alive.
//
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  Response
// @Router       /health/live [get]
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, Response{Success: true, Message: "ok"})
}

// Readiness handles GET /health.
//
// @Summary      Health and dependency status
// @Tags         health
// @Produce      json
// @Success      200  {object}  Response{data=healthResponse}
// @Failure      503  {object}  Response{data=healthResponse}
// @Router       /health [get]
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := make(map[string]dependencyStatus, len(h.optional)+1)

	database := "connected"
	healthy := true
	if err := h.database(ctx); err != nil {
		deps["postgres"] = h.unhealthy(err)
		database = "disconnected"
		healthy = false
	} else {
		deps["postgres"] = dependencyStatus{Status: "ok"}
	}

	status := "ok"
	for name, ping := range h.optional {
		if err := ping(ctx); err != nil {
			deps[name] = h.unhealthy(err)
			status = "degraded"
			continue
		}
		deps[name] = dependencyStatus{Status: "ok"}
	}

	httpStatus := http.StatusOK
	if !healthy {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	now := h.now()
	return c.JSON(httpStatus, Response{
		Success: healthy,
		Data: healthResponse{
			Status:       status,
			Uptime:       now.Sub(h.started).Seconds(),
			Timestamp:    now.UTC(),
			Database:     database,
			Dependencies: deps,
		},
	})
}
