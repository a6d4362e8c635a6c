package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Pinger is satisfied by the database.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler answers liveness and readiness probes.
type HealthHandler struct {
	db     Pinger
	logger *slog.Logger
}

func NewHealthHandler(db Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

// HandleHome is the liveness message.
//
// HTTP: GET /
func (h *HealthHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Wellness API is running"})
}

// HandleReady reports whether the database answers within two seconds.
//
// HTTP: GET /readyz
func (h *HealthHandler) HandleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Warn("readiness check failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{
			Error:   "unavailable",
			Message: "database unavailable",
		})
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "ready"})
}
