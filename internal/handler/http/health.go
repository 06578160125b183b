package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/geo-attendance-go/internal/handler/http/response"
)

// ReadinessChecker reports whether a dependency can serve traffic.
type ReadinessChecker interface {
	CheckReady(ctx context.Context) error
}

type HealthHandler interface {
	Live(w http.ResponseWriter, r *http.Request)
	Ready(w http.ResponseWriter, r *http.Request)
}

type healthHandlerImpl struct {
	db ReadinessChecker
}

func NewHealthHandler(db ReadinessChecker) HealthHandler {
	return &healthHandlerImpl{db: db}
}

// Live handles GET /health/live
func (h *healthHandlerImpl) Live(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]string{"status": "ok"})
}

// Ready handles GET /health/ready
func (h *healthHandlerImpl) Ready(w http.ResponseWriter, r *http.Request) {
	if err := h.db.CheckReady(r.Context()); err != nil {
		slog.Warn("readiness check failed", "error", err)
		response.ServiceUnavailable(w, "Database is not reachable")
		return
	}
	response.Success(w, map[string]string{"status": "ready"})
}
