// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/okian/futpack/internal/domain/model"
)

// PackDependencies defines the interface for pack handlers.
type PackDependencies interface {
	OpenPack(ctx context.Context, userID string) (*model.Instance, error)
	QuickSell(ctx context.Context, userID, instanceID string) (float64, error)
}

// PackHandler handles pack draw and resale requests.
type PackHandler struct {
	deps PackDependencies
}

// NewPackHandler creates a new pack handler.
func NewPackHandler(deps PackDependencies) *PackHandler {
	return &PackHandler{deps: deps}
}

type openPackResponse struct {
	Drawn    bool            `json:"drawn"`
	Instance *model.Instance `json:"instance,omitempty"`
}

type quickSellRequest struct {
	InstanceID string `json:"instanceId"`
}

type quickSellResponse struct {
	Refund float64 `json:"refund"`
}

// HandleOpenPack handles POST /packs/open requests. A declined draw is a
// normal 200 response with drawn=false.
func (h *PackHandler) HandleOpenPack(w http.ResponseWriter, r *http.Request) {
	const op = "api.open_pack"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	instance, err := h.deps.OpenPack(r.Context(), uid)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, openPackResponse{Drawn: instance != nil, Instance: instance})
}

// HandleQuickSell handles POST /packs/sell requests.
func (h *PackHandler) HandleQuickSell(w http.ResponseWriter, r *http.Request) {
	const op = "api.quick_sell"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req quickSellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.InstanceID) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	refund, err := h.deps.QuickSell(r.Context(), uid, req.InstanceID)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, quickSellResponse{Refund: refund})
}
