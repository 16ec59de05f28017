package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aussiebroadwan/todo/pkg/httpx"
	"github.com/aussiebroadwan/todo/pkg/jwtx"
	"github.com/aussiebroadwan/todo/pkg/todosdk"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	Started time.Time
	Version string
	DB      pinger
	Signer  jwtx.Signer
}

func (h *HealthHandler) report(status string, checks *todosdk.HealthChecks) todosdk.HealthResponse {
	return todosdk.HealthResponse{
		Status:  status,
		Uptime:  time.Since(h.Started).Round(time.Second).String(),
		Version: h.Version,
		Checks:  checks,
	}
}

// HandleLivez godoc
//
//	@Summary		Liveness probe
//	@Description	Always 200 while the process runs.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	todosdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func (h *HealthHandler) HandleLivez(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.report("ok", nil))
}

// HandleReadyz godoc
//
//	@Summary		Readiness probe
//	@Description	Checks the database connection and that a token signer is loaded.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	todosdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	todosdk.HealthResponse	"service not ready"
//	@Router			/readyz [get].
func (h *HealthHandler) HandleReadyz(w http.ResponseWriter, r *http.Request) {
	checks := &todosdk.HealthChecks{Database: "ok", Signer: "ok"}
	healthy := true

	if err := h.DB.Ping(r.Context()); err != nil {
		checks.Database = "error: " + err.Error()
		healthy = false
	}
	if h.Signer == nil {
		checks.Signer = "error: no signing secret loaded"
		healthy = false
	}

	if !healthy {
		httpx.WriteJSON(w, http.StatusServiceUnavailable, h.report("degraded", checks))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.report("ok", checks))
}
