package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/clubstate/internal/adapters/http/dto"
	"github.com/jsamuelsen11/clubstate/internal/ports"
)

// HealthHandler serves the liveness and readiness endpoints. Readiness covers
// the storage backend and the breaker in front of it.
type HealthHandler struct {
	registry ports.HealthRegistry
}

// NewHealthHandler creates a HealthHandler over registry.
func NewHealthHandler(registry ports.HealthRegistry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// Liveness handles GET /health/live. It never touches the store.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, dto.LivenessResponse{Status: dto.HealthOK})
}

// Readiness handles GET /health/ready: 200 when every check passes,
// otherwise 503 naming the failed components.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	resp := dto.NewReadinessResponse(h.registry.CheckAll(r.Context()))

	code := http.StatusOK
	if !resp.Ready() {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, resp)
}
