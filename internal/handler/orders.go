package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/epping-food-court/api/internal/model"
	"github.com/epping-food-court/api/internal/service"
	"github.com/epping-food-court/api/internal/store"
	"github.com/epping-food-court/api/internal/ticket"
)

// OrderServicer defines the intake operations order handlers need.
// Satisfied by *service.OrderService; narrow interface for testability.
type OrderServicer interface {
	CreateOrder(ctx context.Context, req service.CreateOrderRequest) (*service.CreateOrderResult, error)
	EditOrder(ctx context.Context, id string, req service.EditOrderRequest) (*model.Order, error)
}

// OrderReader defines the read/delete access order handlers need.
// Satisfied by *store.Orders.
type OrderReader interface {
	List(ctx context.Context, f store.OrderFilter) ([]model.Order, error)
	Get(ctx context.Context, id string) (*model.Order, error)
	Delete(ctx context.Context, id string) error
	Recent(ctx context.Context, n int) ([]model.Order, error)
	Pending(ctx context.Context) ([]model.Order, error)
	Statistics(ctx context.Context) (*model.OrderStatistics, error)
}

// StatusTransitioner applies a status change through the state machine.
// Satisfied by *lifecycle.Service.
type StatusTransitioner interface {
	Transition(ctx context.Context, orderID, target string) (*model.Order, error)
}

// TicketRenderer produces the printable document for an order.
// Satisfied by *ticket.Renderer.
type TicketRenderer interface {
	RenderHTML(order *model.Order) ([]byte, error)
}

// OrderHandler handles order endpoints.
type OrderHandler struct {
	svc      OrderServicer
	store    OrderReader
	status   StatusTransitioner
	renderer TicketRenderer
	log      *slog.Logger
}

func NewOrderHandler(svc OrderServicer, store OrderReader, status StatusTransitioner,
	renderer TicketRenderer, log *slog.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, store: store, status: status, renderer: renderer, log: log}
}

// RegisterRoutes registers order endpoints on the given Chi router.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/recent", h.Recent)
	r.Get("/pending", h.Pending)
	r.Get("/stats", h.Statistics)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Patch("/{id}/status", h.UpdateStatus)
	r.Delete("/{id}", h.Delete)
	r.Get("/{id}/tickets", h.Tickets)
	r.Get("/{id}/tickets/print", h.PrintTickets)
}

// --- Request / Response types ---

type orderPayload struct {
	OrderType           string             `json:"orderType"`
	CustomerInfo        model.CustomerInfo `json:"customerInfo"`
	Items               []model.OrderItem  `json:"items"`
	SpecialInstructions string             `json:"specialInstructions"`
}

type createOrderResponse struct {
	Order         *model.Order `json:"order"`
	PaymentSecret string       `json:"paymentSecret,omitempty"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// --- Handlers ---

// List handles GET /orders with optional status/type/date filters.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.OrderFilter{
		Status:    r.URL.Query().Get("status"),
		OrderType: r.URL.Query().Get("type"),
	}
	if s := r.URL.Query().Get("start_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid start_date format, use YYYY-MM-DD")
			return
		}
		filter.StartDate = t
	}
	if s := r.URL.Query().Get("end_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid end_date format, use YYYY-MM-DD")
			return
		}
		// end_date is inclusive for callers
		filter.EndDate = t.AddDate(0, 0, 1)
	}

	orders, err := h.store.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, h.log, "list orders", err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// Create handles POST /orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req orderPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.CreateOrder(r.Context(), service.CreateOrderRequest{
		OrderType:           req.OrderType,
		Customer:            req.CustomerInfo,
		Items:               req.Items,
		SpecialInstructions: req.SpecialInstructions,
	})
	if err != nil {
		writeServiceError(w, h.log, "create order", err)
		return
	}

	writeJSON(w, http.StatusCreated, createOrderResponse{
		Order:         result.Order,
		PaymentSecret: result.PaymentSecret,
	})
}

// Get handles GET /orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, "get order", err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// Update handles PUT /orders/{id}: the admin "edit order" operation.
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req orderPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.svc.EditOrder(r.Context(), chi.URLParam(r, "id"), service.EditOrderRequest{
		OrderType:           req.OrderType,
		Customer:            req.CustomerInfo,
		Items:               req.Items,
		SpecialInstructions: req.SpecialInstructions,
	})
	if err != nil {
		writeServiceError(w, h.log, "edit order", err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// UpdateStatus handles PATCH /orders/{id}/status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Status == "" {
		writeError(w, http.StatusBadRequest, "status is required")
		return
	}

	order, err := h.status.Transition(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeServiceError(w, h.log, "update order status", err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// Delete handles DELETE /orders/{id}, the administrative escape hatch.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.log, "delete order", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Recent handles GET /orders/recent?limit=N.
func (h *OrderHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > 100 {
		limit = 100
	}

	orders, err := h.store.Recent(r.Context(), limit)
	if err != nil {
		writeServiceError(w, h.log, "recent orders", err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// Pending handles GET /orders/pending.
func (h *OrderHandler) Pending(w http.ResponseWriter, r *http.Request) {
	orders, err := h.store.Pending(r.Context())
	if err != nil {
		writeServiceError(w, h.log, "pending orders", err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// Statistics handles GET /orders/stats, the data API's own order
// aggregates (as opposed to the computed dashboard snapshot at /stats).
func (h *OrderHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Statistics(r.Context())
	if err != nil {
		writeServiceError(w, h.log, "order statistics", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Tickets handles GET /orders/{id}/tickets, the aggregated document set
// as JSON.
func (h *OrderHandler) Tickets(w http.ResponseWriter, r *http.Request) {
	order, err := h.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, "order tickets", err)
		return
	}
	writeJSON(w, http.StatusOK, ticket.Generate(order))
}

// PrintTickets handles GET /orders/{id}/tickets/print, the printable
// HTML document.
func (h *OrderHandler) PrintTickets(w http.ResponseWriter, r *http.Request) {
	order, err := h.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, "print order tickets", err)
		return
	}

	doc, err := h.renderer.RenderHTML(order)
	if err != nil {
		h.log.Error("render tickets", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}
