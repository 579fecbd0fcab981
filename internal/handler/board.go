package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/epping-food-court/api/internal/board"
)

// BoardController is the kanban operations the handlers need.
// Satisfied by *board.Board.
type BoardController interface {
	Load(ctx context.Context) (*board.Columns, error)
	MoveOrder(ctx context.Context, orderID, from, to string) (*board.Columns, error)
}

// BoardHandler handles fulfillment board endpoints.
type BoardHandler struct {
	board BoardController
	log   *slog.Logger
}

func NewBoardHandler(b BoardController, log *slog.Logger) *BoardHandler {
	return &BoardHandler{board: b, log: log}
}

// RegisterRoutes registers board endpoints on the given Chi router.
func (h *BoardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Get)
	r.Post("/move", h.Move)
}

type moveRequest struct {
	OrderID string `json:"orderId"`
	From    string `json:"from"`
	To      string `json:"to"`
}

// Get handles GET /board.
func (h *BoardHandler) Get(w http.ResponseWriter, r *http.Request) {
	cols, err := h.board.Load(r.Context())
	if err != nil {
		writeServiceError(w, h.log, "load board", err)
		return
	}
	writeJSON(w, http.StatusOK, cols)
}

// Move handles POST /board/move: a card drag between columns.
func (h *BoardHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.OrderID == "" || req.To == "" {
		writeError(w, http.StatusBadRequest, "orderId and to are required")
		return
	}

	cols, err := h.board.MoveOrder(r.Context(), req.OrderID, req.From, req.To)
	if err != nil {
		writeServiceError(w, h.log, "move order", err)
		return
	}
	writeJSON(w, http.StatusOK, cols)
}
