package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epping-food-court/api/internal/enum"
	"github.com/epping-food-court/api/internal/model"
)

// fakeDataAPI serves canned envelope responses and records requests.
type fakeDataAPI struct {
	t        *testing.T
	mux      *http.ServeMux
	requests []string
}

func newFakeDataAPI(t *testing.T) (*fakeDataAPI, *httptest.Server) {
	t.Helper()
	f := &fakeDataAPI{t: t, mux: http.NewServeMux()}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests = append(f.requests, r.Method+" "+r.URL.String())
		f.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeDataAPI) respond(pattern string, data any) {
	f.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
	})
}

func (f *fakeDataAPI) fail(pattern string, status int, msg string) {
	f.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": msg})
	})
}

func testClient(srv *httptest.Server) *Client {
	return NewClient(srv.URL, 5*time.Second)
}

func TestOrders_List(t *testing.T) {
	api, srv := newFakeDataAPI(t)
	api.respond("GET /orders", []model.Order{
		{ID: "order-1", Status: enum.OrderStatusPending, Total: 20.50},
		{ID: "order-2", Status: enum.OrderStatusReady, Total: 12.00},
	})

	orders := NewOrders(testClient(srv), nil)
	got, err := orders.List(context.Background(), OrderFilter{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "order-1", got[0].ID)
	assert.Equal(t, 20.50, got[0].Total)
}

func TestOrders_ListFilterQuery(t *testing.T) {
	api, srv := newFakeDataAPI(t)
	api.respond("GET /orders", []model.Order{})

	orders := NewOrders(testClient(srv), nil)
	_, err := orders.List(context.Background(), OrderFilter{
		Status:    enum.OrderStatusPending,
		OrderType: enum.OrderTypeDelivery,
	})
	require.NoError(t, err)

	require.Len(t, api.requests, 1)
	assert.Contains(t, api.requests[0], "status=pending")
	assert.Contains(t, api.requests[0], "orderType=delivery")
}

func TestOrders_Get(t *testing.T) {
	api, srv := newFakeDataAPI(t)
	api.respond("GET /orders/order-1", model.Order{ID: "order-1", Status: enum.OrderStatusConfirmed})

	orders := NewOrders(testClient(srv), nil)
	got, err := orders.Get(context.Background(), "order-1")
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusConfirmed, got.Status)
}

func TestOrders_GetNotFound(t *testing.T) {
	api, srv := newFakeDataAPI(t)
	api.fail("GET /orders/missing", http.StatusNotFound, "order not found")

	orders := NewOrders(testClient(srv), nil)
	_, err := orders.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, NotFound(err), "a 404 must map to NotFound")
	assert.Contains(t, err.Error(), "order not found")
}

func TestOrders_Create(t *testing.T) {
	api, srv := newFakeDataAPI(t)
	api.mux.HandleFunc("POST /orders", func(w http.ResponseWriter, r *http.Request) {
		var in model.Order
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, enum.OrderStatusPending, in.Status)
		in.ID = "order-new"
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": in})
	})

	orders := NewOrders(testClient(srv), nil)
	created, err := orders.Create(context.Background(), model.Order{
		Status: enum.OrderStatusPending,
		Total:  20.50,
	})
	require.NoError(t, err)
	assert.Equal(t, "order-new", created.ID)
}

func TestOrders_PatchStatus(t *testing.T) {
	api, srv := newFakeDataAPI(t)
	api.mux.HandleFunc("PATCH /orders/order-1/status", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, enum.OrderStatusConfirmed, body["status"])
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    model.Order{ID: "order-1", Status: body["status"]},
		})
	})

	orders := NewOrders(testClient(srv), nil)
	updated, err := orders.PatchStatus(context.Background(), "order-1", enum.OrderStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusConfirmed, updated.Status)
}

func TestClient_EnvelopeFailureWithoutHTTPError(t *testing.T) {
	// The data API sometimes reports failure in the envelope with a 200.
	api, srv := newFakeDataAPI(t)
	api.mux.HandleFunc("GET /orders/pending", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "database busy"})
	})

	orders := NewOrders(testClient(srv), nil)
	_, err := orders.Pending(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database busy")
	assert.False(t, NotFound(err))
}

func TestClient_ContextCancellation(t *testing.T) {
	_, srv := newFakeDataAPI(t)

	orders := NewOrders(testClient(srv), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := orders.List(ctx, OrderFilter{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSettings_Get(t *testing.T) {
	api, srv := newFakeDataAPI(t)
	api.respond("GET /settings", model.Settings{DeliveryFee: 2.50, ServiceFee: 1.50})

	settings := NewSettings(testClient(srv))
	got, err := settings.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2.50, got.DeliveryFee)
	assert.Equal(t, 1.50, got.ServiceFee)
}

func TestPayments_CreateIntent(t *testing.T) {
	api, srv := newFakeDataAPI(t)
	api.mux.HandleFunc("POST /payments/create-payment-intent", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		// 20.50 pounds arrives as 2050 pence
		assert.Equal(t, float64(2050), body["amount"])
		assert.Equal(t, "gbp", body["currency"])
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]string{"clientSecret": "pi_secret_123"},
		})
	})

	payments := NewPayments(testClient(srv))
	secret, err := payments.CreateIntent(context.Background(), 20.50, "gbp")
	require.NoError(t, err)
	assert.Equal(t, "pi_secret_123", secret)
}

func TestInventory_Statistics(t *testing.T) {
	api, srv := newFakeDataAPI(t)
	api.respond("GET /inventory/stats", model.InventoryStatistics{LowStockItems: 3})

	inventory := NewInventory(testClient(srv))
	got, err := inventory.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, got.LowStockItems)
}
