package handlers

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker defines the interface for health checking components
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler handles health check requests
type HealthHandler struct {
	rpc   HealthChecker
	cache HealthChecker
}

// NewHealthHandler creates a new health handler. cache may be nil.
func NewHealthHandler(rpc, cache HealthChecker) *HealthHandler {
	return &HealthHandler{
		rpc:   rpc,
		cache: cache,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// Health handles GET /health. It always answers 200 with the dependency
// state in the body: the page renders with placeholders while an upstream
// is down, so an unhealthy dependency degrades the service rather than
// taking it down. Ready is the probe that fails on an unreachable node.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string),
	}

	if err := h.rpc.HealthCheck(ctx); err != nil {
		response.Status = "degraded"
		response.Services["solana_rpc"] = "unhealthy: " + err.Error()
	} else {
		response.Services["solana_rpc"] = "healthy"
	}

	if h.cache != nil {
		if err := h.cache.HealthCheck(ctx); err != nil {
			response.Status = "degraded"
			response.Services["cache"] = "unhealthy: " + err.Error()
		} else {
			response.Services["cache"] = "healthy"
		}
	}

	respondJSON(w, http.StatusOK, response)
}

// Ready handles GET /ready (Kubernetes readiness probe)
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.rpc.HealthCheck(ctx); err != nil {
		http.Error(w, "not ready", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}

// Live handles GET /live (Kubernetes liveness probe)
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("alive"))
}
