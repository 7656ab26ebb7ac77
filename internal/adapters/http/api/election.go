// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/okian/futpack/internal/domain/model"
)

// ElectionDependencies defines the interface for election handlers.
type ElectionDependencies interface {
	StartRound(ctx context.Context, actorID, roundLabel string) error
	CastBallot(ctx context.Context, voterID, targetID string) error
	EndRound(ctx context.Context, actorID string) (*model.PotmHistoryEntry, error)
	CurrentRound(ctx context.Context) (model.PotmState, error)
	History(ctx context.Context) ([]model.PotmHistoryEntry, error)
}

// ElectionHandler handles player-of-the-match round requests.
type ElectionHandler struct {
	deps ElectionDependencies
}

// NewElectionHandler creates a new election handler.
func NewElectionHandler(deps ElectionDependencies) *ElectionHandler {
	return &ElectionHandler{deps: deps}
}

type startRoundRequest struct {
	RoundLabel string `json:"roundLabel"`
}

type ballotRequest struct {
	TargetID string `json:"targetId"`
}

type endRoundResponse struct {
	Decided bool                    `json:"decided"`
	Entry   *model.PotmHistoryEntry `json:"entry,omitempty"`
}

// HandleCurrentRound handles GET /election requests.
func (h *ElectionHandler) HandleCurrentRound(w http.ResponseWriter, r *http.Request) {
	const op = "api.current_round"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	state, err := h.deps.CurrentRound(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// HandleStartRound handles POST /election/start requests.
func (h *ElectionHandler) HandleStartRound(w http.ResponseWriter, r *http.Request) {
	const op = "api.start_round"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	actorID, ok := userID(w, r)
	if !ok {
		return
	}
	var req startRoundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.RoundLabel) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	if err := h.deps.StartRound(r.Context(), actorID, req.RoundLabel); err != nil {
		writeServiceError(w, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleCastBallot handles POST /election/ballot requests.
func (h *ElectionHandler) HandleCastBallot(w http.ResponseWriter, r *http.Request) {
	const op = "api.cast_ballot"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	voterID, ok := userID(w, r)
	if !ok {
		return
	}
	var req ballotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.TargetID) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	if err := h.deps.CastBallot(r.Context(), voterID, req.TargetID); err != nil {
		writeServiceError(w, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleEndRound handles POST /election/end requests.
func (h *ElectionHandler) HandleEndRound(w http.ResponseWriter, r *http.Request) {
	const op = "api.end_round"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	actorID, ok := userID(w, r)
	if !ok {
		return
	}
	entry, err := h.deps.EndRound(r.Context(), actorID)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, endRoundResponse{Decided: entry != nil, Entry: entry})
}

// HandleHistory handles GET /election/history requests.
func (h *ElectionHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	const op = "api.round_history"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	history, err := h.deps.History(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}
