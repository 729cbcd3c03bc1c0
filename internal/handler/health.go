package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/keijiban-dev/keijiban/internal/logger"
)

// Health reports liveness as JSON: 200 when the database answers a trivial
// round-trip, 500 otherwise. No retry here, see service.Health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	// Use a short timeout for health checks
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status, healthy := h.health.Check(ctx)

	code := http.StatusOK
	if !healthy {
		code = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(status); err != nil {
		logger.Log.Error("failed to encode health status", "error", err)
	}
}
