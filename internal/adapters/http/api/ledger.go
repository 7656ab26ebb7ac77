// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// LedgerDependencies defines the interface for ledger handlers.
type LedgerDependencies interface {
	Balance(ctx context.Context, userID string) (float64, error)
	ClaimDailyBonus(ctx context.Context, userID string) (bool, error)
	AdjustBalance(ctx context.Context, actorID, userID string, delta float64) error
	RecordMatchPlayed(ctx context.Context, userID string) error
}

// LedgerHandler handles balance and bonus requests.
type LedgerHandler struct {
	deps LedgerDependencies
}

// NewLedgerHandler creates a new ledger handler.
func NewLedgerHandler(deps LedgerDependencies) *LedgerHandler {
	return &LedgerHandler{deps: deps}
}

type balanceResponse struct {
	Balance float64 `json:"balance"`
}

type bonusResponse struct {
	Granted bool    `json:"granted"`
	Balance float64 `json:"balance"`
}

// HandleBalance handles GET /balance requests.
func (h *LedgerHandler) HandleBalance(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_balance"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	balance, err := h.deps.Balance(r.Context(), uid)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{Balance: balance})
}

// HandleClaimBonus handles POST /bonus requests. A denied claim is a normal
// 200 response with granted=false, not an error.
func (h *LedgerHandler) HandleClaimBonus(w http.ResponseWriter, r *http.Request) {
	const op = "api.claim_bonus"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	granted, err := h.deps.ClaimDailyBonus(r.Context(), uid)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	balance, err := h.deps.Balance(r.Context(), uid)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, bonusResponse{Granted: granted, Balance: balance})
}

// HandleMatchPlayed handles POST /matches/played requests. Credits the
// caller's per-match participation reward and returns the new balance.
func (h *LedgerHandler) HandleMatchPlayed(w http.ResponseWriter, r *http.Request) {
	const op = "api.match_played"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	if err := h.deps.RecordMatchPlayed(r.Context(), uid); err != nil {
		writeServiceError(w, op, err)
		return
	}
	balance, err := h.deps.Balance(r.Context(), uid)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{Balance: balance})
}

type adjustRequest struct {
	UserID string  `json:"userId"`
	Delta  float64 `json:"delta"`
}

// HandleAdjustBalance handles POST /balance/adjust requests. Adjusting
// another user's balance requires the admin role; the service enforces it.
func (h *LedgerHandler) HandleAdjustBalance(w http.ResponseWriter, r *http.Request) {
	const op = "api.adjust_balance"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	actorID, ok := userID(w, r)
	if !ok {
		return
	}
	var req adjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if req.UserID == "" {
		req.UserID = actorID
	}
	if err := h.deps.AdjustBalance(r.Context(), actorID, req.UserID, req.Delta); err != nil {
		writeServiceError(w, op, err)
		return
	}
	balance, err := h.deps.Balance(r.Context(), req.UserID)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{Balance: balance})
}
