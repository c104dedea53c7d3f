package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"mirrorbot-hq/tgmirror/pkg/cache"
)

// HealthHandler handles health check requests for liveness probes.
type HealthHandler struct{}

// NewHealthHandler creates a new health check handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// ServeHTTP implements http.Handler for liveness checks.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// ReadyHandler handles readiness check requests. The service is ready when
// the cache store answers a ping.
type ReadyHandler struct {
	Store cache.Store
}

// NewReadyHandler creates a new readiness check handler.
func NewReadyHandler(store cache.Store) *ReadyHandler {
	return &ReadyHandler{Store: store}
}

// ServeHTTP implements http.Handler for readiness checks.
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status := "ready"
	statusCode := http.StatusOK
	var storeErr interface{}
	if err := h.Store.Ping(r.Context()); err != nil {
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
		storeErr = err.Error()
	}

	response := map[string]interface{}{
		"status":    status,
		"store":     map[string]interface{}{"error": storeErr},
		"timestamp": time.Now().Unix(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}
