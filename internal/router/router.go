package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/epping-food-court/api/internal/config"
	"github.com/epping-food-court/api/internal/handler"
	"github.com/epping-food-court/api/internal/ws"
)

// Handlers carries the constructed handlers the router mounts.
type Handlers struct {
	Orders    *handler.OrderHandler
	Board     *handler.BoardHandler
	Stats     *handler.StatsHandler
	Menu      *handler.MenuHandler
	Inventory *handler.InventoryHandler
	Settings  *handler.SettingsHandler
}

// New creates a Chi router with all application routes wired up.
func New(cfg *config.Config, h Handlers, hub *ws.Hub) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// WebSocket feed for dashboard panels
	r.Get("/ws/stats", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, w, r)
	})

	r.Route("/orders", h.Orders.RegisterRoutes)
	r.Route("/board", h.Board.RegisterRoutes)
	r.Route("/stats", h.Stats.RegisterRoutes)
	r.Route("/menu", h.Menu.RegisterRoutes)
	r.Route("/inventory", h.Inventory.RegisterRoutes)
	r.Route("/settings", h.Settings.RegisterRoutes)

	return r
}
