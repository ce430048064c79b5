package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Amlan029/FeedFormly/internal/infra/logger"
)

const readinessTimeout = 2 * time.Second

// ReadinessCheck probes a single dependency.
type ReadinessCheck func(ctx context.Context) error

// HealthOption configures a HealthHandler.
type HealthOption func(*HealthHandler)

// WithReadinessCheck adds a named dependency probe to /readyz.
func WithReadinessCheck(name string, check ReadinessCheck) HealthOption {
	return func(h *HealthHandler) {
		if check != nil {
			h.checks[name] = check
		}
	}
}

// HealthHandler exposes liveness and readiness information.
type HealthHandler struct {
	startedAt time.Time
	checks    map[string]ReadinessCheck
}

// NewHealthHandler builds a new health handler instance.
func NewHealthHandler(opts ...HealthOption) *HealthHandler {
	h := &HealthHandler{
		startedAt: time.Now().UTC(),
		checks:    make(map[string]ReadinessCheck),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Status godoc
// @Summary Service health check
// @Description Returns the status and start time of the service.
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func (h *HealthHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		StartedAt: h.startedAt,
	})
}

// Readiness godoc
// @Summary Service readiness check
// @Description Probes the account store and cache. Any failing probe answers 503.
// @Tags Health
// @Produce json
// @Success 200 {object} ReadinessResponse
// @Failure 503 {object} ReadinessResponse
// @Router /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := ReadinessResponse{Status: "ready", Checks: make(map[string]string, len(names))}
	status := http.StatusOK
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			logger.WithContext(c.Request.Context()).Warn("readiness check failed",
				zap.String("check", name),
				zap.Error(err),
			)
			resp.Checks[name] = "unavailable"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}

	c.JSON(status, resp)
}
