// Package handler exposes the admin dashboard HTTP surface.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/epping-food-court/api/internal/lifecycle"
	"github.com/epping-food-court/api/internal/service"
	"github.com/epping-food-court/api/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps domain errors onto HTTP statuses: validation
// failures are the caller's fault, invalid transitions are conflicts,
// missing resources are 404s, and everything else is an opaque 500 with
// the detail logged server-side.
func writeServiceError(w http.ResponseWriter, log *slog.Logger, op string, err error) {
	switch {
	case service.ValidationError(err), errors.Is(err, lifecycle.ErrUnknownStatus):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		writeError(w, http.StatusConflict, err.Error())
	case store.NotFound(err):
		writeError(w, http.StatusNotFound, "not found")
	default:
		log.Error(op, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
