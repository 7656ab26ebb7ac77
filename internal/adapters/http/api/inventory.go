// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	service "github.com/okian/futpack/internal/app"
	"github.com/okian/futpack/internal/domain/model"
)

// InventoryDependencies defines the interface for inventory handlers.
type InventoryDependencies interface {
	Inventory(ctx context.Context, userID string) ([]model.Instance, error)
	GetCard(ctx context.Context, userID, id string) (*service.Card, error)
}

// InventoryHandler handles inventory requests.
type InventoryHandler struct {
	deps InventoryDependencies
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(deps InventoryDependencies) *InventoryHandler {
	return &InventoryHandler{deps: deps}
}

// HandleInventory handles GET /inventory requests.
func (h *InventoryHandler) HandleInventory(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_inventory"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	instances, err := h.deps.Inventory(r.Context(), uid)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, instances)
}

// HandleGetCard handles GET /cards/{id} requests: a unified lookup across
// the caller's inventory and the catalog.
func (h *InventoryHandler) HandleGetCard(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_card"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/cards/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	card, err := h.deps.GetCard(r.Context(), uid, id)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}
