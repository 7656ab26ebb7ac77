// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/okian/futpack/internal/domain/model"
)

// CatalogDependencies defines the interface for catalog handlers.
type CatalogDependencies interface {
	ListCatalog(ctx context.Context) ([]model.Player, error)
	GetPlayer(ctx context.Context, playerID string) (*model.Player, error)
	SavePlayer(ctx context.Context, actorID string, player model.Player) error
	DeletePlayer(ctx context.Context, actorID, playerID string) error
}

// CatalogHandler handles catalog requests.
type CatalogHandler struct {
	deps CatalogDependencies
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(deps CatalogDependencies) *CatalogHandler {
	return &CatalogHandler{deps: deps}
}

// HandleCatalog handles GET /catalog and PUT /catalog requests.
func (h *CatalogHandler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPut:
		h.save(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *CatalogHandler) list(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_catalog"
	players, err := h.deps.ListCatalog(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, players)
}

func (h *CatalogHandler) save(w http.ResponseWriter, r *http.Request) {
	const op = "api.save_player"
	actorID, ok := userID(w, r)
	if !ok {
		return
	}
	var player model.Player
	if err := json.NewDecoder(r.Body).Decode(&player); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(player.ID) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	if err := h.deps.SavePlayer(r.Context(), actorID, player); err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, player)
}

// HandleCatalogEntry handles GET /catalog/{id} and DELETE /catalog/{id}.
func (h *CatalogHandler) HandleCatalogEntry(w http.ResponseWriter, r *http.Request) {
	const op = "api.catalog_entry"
	id := strings.TrimPrefix(r.URL.Path, "/catalog/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		player, err := h.deps.GetPlayer(r.Context(), id)
		if err != nil {
			writeServiceError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, player)
	case http.MethodDelete:
		actorID, ok := userID(w, r)
		if !ok {
			return
		}
		if err := h.deps.DeletePlayer(r.Context(), actorID, id); err != nil {
			writeServiceError(w, op, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}
