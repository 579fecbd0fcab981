package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/epping-food-court/api/internal/board"
	"github.com/epping-food-court/api/internal/enum"
	"github.com/epping-food-court/api/internal/lifecycle"
	"github.com/epping-food-court/api/internal/model"
)

type mockBoard struct {
	cols    *board.Columns
	moveErr error
	moves   [][3]string
}

func (m *mockBoard) Load(ctx context.Context) (*board.Columns, error) {
	return m.cols, nil
}

func (m *mockBoard) MoveOrder(ctx context.Context, orderID, from, to string) (*board.Columns, error) {
	if m.moveErr != nil {
		return nil, m.moveErr
	}
	m.moves = append(m.moves, [3]string{orderID, from, to})
	return m.cols, nil
}

func emptyColumns() *board.Columns {
	cols := make(map[string][]model.Order)
	for _, status := range enum.BoardColumns {
		cols[status] = []model.Order{}
	}
	return &board.Columns{Order: enum.BoardColumns, Columns: cols}
}

func newBoardRouter(b BoardController) chi.Router {
	r := chi.NewRouter()
	h := NewBoardHandler(b, testLogger())
	r.Route("/board", h.RegisterRoutes)
	return r
}

func TestGetBoard(t *testing.T) {
	r := newBoardRouter(&mockBoard{cols: emptyColumns()})

	rec := doRequest(t, r, http.MethodGet, "/board", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got board.Columns
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(got.Order) != len(enum.BoardColumns) {
		t.Fatalf("column count = %d, want %d", len(got.Order), len(enum.BoardColumns))
	}
}

func TestMoveOrder(t *testing.T) {
	b := &mockBoard{cols: emptyColumns()}
	r := newBoardRouter(b)

	body := `{"orderId":"order-1","from":"pending","to":"confirmed"}`
	rec := doRequest(t, r, http.MethodPost, "/board/move", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}
	if len(b.moves) != 1 || b.moves[0] != [3]string{"order-1", "pending", "confirmed"} {
		t.Fatalf("moves = %v", b.moves)
	}
}

func TestMoveOrder_MissingFields(t *testing.T) {
	r := newBoardRouter(&mockBoard{cols: emptyColumns()})

	rec := doRequest(t, r, http.MethodPost, "/board/move", `{"from":"pending"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestMoveOrder_InvalidTransition(t *testing.T) {
	b := &mockBoard{
		cols:    emptyColumns(),
		moveErr: fmt.Errorf("pending to delivered: %w", lifecycle.ErrInvalidTransition),
	}
	r := newBoardRouter(b)

	body := `{"orderId":"order-1","from":"pending","to":"delivered"}`
	rec := doRequest(t, r, http.MethodPost, "/board/move", body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}
