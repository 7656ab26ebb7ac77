// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/okian/futpack/internal/domain/model"
)

// VoteDependencies defines the interface for the stat-vote handler.
type VoteDependencies interface {
	CastVote(ctx context.Context, playerID, attribute, voterID string, dir model.Direction) (*model.Player, error)
}

// VoteHandler handles stat-vote requests.
type VoteHandler struct {
	deps VoteDependencies
}

// NewVoteHandler creates a new vote handler.
func NewVoteHandler(deps VoteDependencies) *VoteHandler {
	return &VoteHandler{deps: deps}
}

type voteRequest struct {
	PlayerID  string `json:"playerId"`
	Attribute string `json:"attribute"`
	Direction string `json:"direction"`
}

func (v voteRequest) validate() error {
	switch {
	case strings.TrimSpace(v.PlayerID) == "":
		return NewKind("missing playerId", ErrBadRequest)
	case strings.TrimSpace(v.Attribute) == "":
		return NewKind("missing attribute", ErrBadRequest)
	case strings.TrimSpace(v.Direction) == "":
		return NewKind("missing direction", ErrBadRequest)
	}
	return nil
}

// HandleCastVote handles POST /votes requests.
func (h *VoteHandler) HandleCastVote(w http.ResponseWriter, r *http.Request) {
	const op = "api.cast_vote"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	voterID, ok := userID(w, r)
	if !ok {
		return
	}
	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	player, err := h.deps.CastVote(r.Context(), req.PlayerID, req.Attribute, voterID, model.Direction(req.Direction))
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, player)
}
