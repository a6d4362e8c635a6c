package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/wellness-tracker/internal/service"
)

// StatsHandler serves the weekly progress summary.
type StatsHandler struct {
	stats  *service.StatsService
	logger *slog.Logger
}

func NewStatsHandler(stats *service.StatsService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{stats: stats, logger: logger}
}

// HandleWeekly returns {exercise, sleep, meditation}, each with current,
// goal and percentage for the week so far.
//
// HTTP: GET /api/stats/{user_id}
func (h *StatsHandler) HandleWeekly(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	stats, err := h.stats.Weekly(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
