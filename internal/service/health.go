package service

import (
	"context"

	"github.com/keijiban-dev/keijiban/internal/logger"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Health struct {
	storage Pinger
}

func NewHealth(storage Pinger) *Health {
	return &Health{storage}
}

type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

// Check runs a single round-trip against storage. Deliberately no retry:
// a failed ping is reported immediately so monitoring sees the blips the
// write path hides from users.
func (h *Health) Check(ctx context.Context) (HealthStatus, bool) {
	if err := h.storage.Ping(ctx); err != nil {
		logger.Log.Error("health check failed", "error", err)
		return HealthStatus{Status: "unhealthy", Database: "disconnected", Error: err.Error()}, false
	}
	return HealthStatus{Status: "healthy", Database: "connected"}, true
}
