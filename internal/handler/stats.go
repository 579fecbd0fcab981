package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/epping-food-court/api/internal/model"
)

// StatsProvider serves dashboard snapshots. Satisfied by *bus.Bus.
type StatsProvider interface {
	Snapshot(ctx context.Context) (*model.StatsSnapshot, error)
}

// StatsHandler handles dashboard statistics endpoints.
type StatsHandler struct {
	stats StatsProvider
	log   *slog.Logger
}

func NewStatsHandler(stats StatsProvider, log *slog.Logger) *StatsHandler {
	return &StatsHandler{stats: stats, log: log}
}

// RegisterRoutes registers statistics endpoints on the given Chi router.
func (h *StatsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Get)
}

// Get handles GET /stats. Serves the cached snapshot when one exists,
// computing on demand otherwise.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	snap, err := h.stats.Snapshot(r.Context())
	if err != nil {
		writeServiceError(w, h.log, "stats snapshot", err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
