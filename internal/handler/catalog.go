package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/epping-food-court/api/internal/model"
	"github.com/epping-food-court/api/internal/store"
)

// MenuHandler proxies menu management for the admin dashboard.
type MenuHandler struct {
	menu *store.Menu
	log  *slog.Logger
}

func NewMenuHandler(menu *store.Menu, log *slog.Logger) *MenuHandler {
	return &MenuHandler{menu: menu, log: log}
}

func (h *MenuHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Add)
	r.Get("/categories", h.Categories)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Patch("/{id}/stock", h.SetStock)
}

func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.menu.List(r.Context(), store.MenuFilter{
		Restaurant: r.URL.Query().Get("restaurant"),
		Category:   r.URL.Query().Get("category"),
	})
	if err != nil {
		writeServiceError(w, h.log, "list menu", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.menu.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, "get menu item", err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *MenuHandler) Add(w http.ResponseWriter, r *http.Request) {
	var item model.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	created, err := h.menu.Add(r.Context(), item)
	if err != nil {
		writeServiceError(w, h.log, "add menu item", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	var item model.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	updated, err := h.menu.Update(r.Context(), chi.URLParam(r, "id"), item)
	if err != nil {
		writeServiceError(w, h.log, "update menu item", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.menu.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.log, "delete menu item", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *MenuHandler) SetStock(w http.ResponseWriter, r *http.Request) {
	var body struct {
		InStock bool `json:"inStock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.menu.SetStock(r.Context(), chi.URLParam(r, "id"), body.InStock); err != nil {
		writeServiceError(w, h.log, "set menu stock", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"inStock": body.InStock})
}

func (h *MenuHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.menu.Categories(r.Context())
	if err != nil {
		writeServiceError(w, h.log, "menu categories", err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// InventoryHandler proxies inventory management for the admin dashboard.
type InventoryHandler struct {
	inventory *store.Inventory
	log       *slog.Logger
}

func NewInventoryHandler(inventory *store.Inventory, log *slog.Logger) *InventoryHandler {
	return &InventoryHandler{inventory: inventory, log: log}
}

func (h *InventoryHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Add)
	r.Get("/low-stock", h.LowStock)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Patch("/{id}/stock", h.PatchStock)
}

func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventory.List(r.Context(), store.InventoryFilter{
		Category: r.URL.Query().Get("category"),
		LowStock: r.URL.Query().Get("lowStock") == "true",
	})
	if err != nil {
		writeServiceError(w, h.log, "list inventory", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.inventory.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, "get inventory item", err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *InventoryHandler) Add(w http.ResponseWriter, r *http.Request) {
	var item model.InventoryItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	created, err := h.inventory.Add(r.Context(), item)
	if err != nil {
		writeServiceError(w, h.log, "add inventory item", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var item model.InventoryItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	updated, err := h.inventory.Update(r.Context(), chi.URLParam(r, "id"), item)
	if err != nil {
		writeServiceError(w, h.log, "update inventory item", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.inventory.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.log, "delete inventory item", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *InventoryHandler) PatchStock(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CurrentStock float64 `json:"currentStock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.inventory.PatchStock(r.Context(), chi.URLParam(r, "id"), body.CurrentStock); err != nil {
		writeServiceError(w, h.log, "patch inventory stock", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"currentStock": body.CurrentStock})
}

func (h *InventoryHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventory.LowStockList(r.Context())
	if err != nil {
		writeServiceError(w, h.log, "low stock list", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// SettingsHandler proxies the single business settings document.
type SettingsHandler struct {
	settings *store.Settings
	log      *slog.Logger
}

func NewSettingsHandler(settings *store.Settings, log *slog.Logger) *SettingsHandler {
	return &SettingsHandler{settings: settings, log: log}
}

func (h *SettingsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Get)
	r.Put("/", h.Replace)
	r.Post("/reset", h.Reset)
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	doc, err := h.settings.Get(r.Context())
	if err != nil {
		writeServiceError(w, h.log, "get settings", err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *SettingsHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var doc model.Settings
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	updated, err := h.settings.Replace(r.Context(), doc)
	if err != nil {
		writeServiceError(w, h.log, "replace settings", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *SettingsHandler) Reset(w http.ResponseWriter, r *http.Request) {
	doc, err := h.settings.Reset(r.Context())
	if err != nil {
		writeServiceError(w, h.log, "reset settings", err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}
