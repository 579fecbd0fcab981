package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/epping-food-court/api/internal/model"
)

// Event is a message pushed to dashboard panels.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// EventStatsUpdated carries a fresh stats snapshot.
const EventStatsUpdated = "stats.updated"

// Hub maintains the set of connected dashboard panels and broadcasts
// events to all of them.
type Hub struct {
	// Registered panels
	clients map[*Client]bool

	// Inbound register/unregister requests from connections
	register   chan *Client
	unregister chan *Client

	// Outbound messages to broadcast
	broadcast chan []byte

	// last holds the most recent broadcast; new panels get it on
	// register so they never start from an empty screen.
	last []byte

	mu  sync.RWMutex
	log *slog.Logger
}

// NewHub creates a new Hub instance.
func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		log:        log,
	}
}

// Run drives the hub's main loop until ctx is cancelled.
// This should be called as a goroutine: go hub.Run(ctx)
func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			if h.last != nil {
				select {
				case client.send <- h.last:
				default:
				}
			}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.Lock()
			h.last = message
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Client's send buffer is full, close and unregister
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast sends an event to all connected panels.
func (h *Hub) Broadcast(event Event) {
	message, err := json.Marshal(event)
	if err != nil {
		h.log.Warn("drop unencodable event", "type", event.Type, "error", err)
		return
	}
	h.broadcast <- message
}

// BroadcastStats pushes a snapshot as a stats.updated event. Its
// signature matches the bus subscriber callback, so the hub plugs
// straight into bus.Subscribe.
func (h *Hub) BroadcastStats(snap model.StatsSnapshot) {
	payload, err := json.Marshal(snap)
	if err != nil {
		h.log.Warn("drop unencodable snapshot", "error", err)
		return
	}
	h.Broadcast(Event{Type: EventStatsUpdated, Payload: payload})
}
