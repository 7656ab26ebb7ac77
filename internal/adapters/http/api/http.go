// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	repository "github.com/okian/futpack/internal/adapters/repository"
	service "github.com/okian/futpack/internal/app"
	"github.com/okian/futpack/internal/domain/votes"
)

// userIDHeader carries the acting user's id. The surrounding deployment
// terminates authentication; by the time a request reaches this API the
// header is trusted.
const userIDHeader = "X-User-ID"

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	CatalogDependencies
	LedgerDependencies
	VoteDependencies
	PackDependencies
	InventoryDependencies
	ElectionDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	catalogHandler   *CatalogHandler
	ledgerHandler    *LedgerHandler
	voteHandler      *VoteHandler
	packHandler      *PackHandler
	inventoryHandler *InventoryHandler
	electionHandler  *ElectionHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		catalogHandler:   NewCatalogHandler(deps),
		ledgerHandler:    NewLedgerHandler(deps),
		voteHandler:      NewVoteHandler(deps),
		packHandler:      NewPackHandler(deps),
		inventoryHandler: NewInventoryHandler(deps),
		electionHandler:  NewElectionHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/catalog", MetricsMiddleware(s.catalogHandler.HandleCatalog, "catalog"))
	mux.HandleFunc("/catalog/", MetricsMiddleware(s.catalogHandler.HandleCatalogEntry, "catalog_entry"))
	mux.HandleFunc("/cards/", MetricsMiddleware(s.inventoryHandler.HandleGetCard, "cards"))
	mux.HandleFunc("/balance", MetricsMiddleware(s.ledgerHandler.HandleBalance, "balance"))
	mux.HandleFunc("/balance/adjust", MetricsMiddleware(s.ledgerHandler.HandleAdjustBalance, "balance_adjust"))
	mux.HandleFunc("/bonus", MetricsMiddleware(s.ledgerHandler.HandleClaimBonus, "bonus"))
	mux.HandleFunc("/matches/played", MetricsMiddleware(s.ledgerHandler.HandleMatchPlayed, "matches_played"))
	mux.HandleFunc("/votes", MetricsMiddleware(s.voteHandler.HandleCastVote, "votes"))
	mux.HandleFunc("/packs/open", MetricsMiddleware(s.packHandler.HandleOpenPack, "packs_open"))
	mux.HandleFunc("/packs/sell", MetricsMiddleware(s.packHandler.HandleQuickSell, "packs_sell"))
	mux.HandleFunc("/inventory", MetricsMiddleware(s.inventoryHandler.HandleInventory, "inventory"))
	mux.HandleFunc("/election", MetricsMiddleware(s.electionHandler.HandleCurrentRound, "election"))
	mux.HandleFunc("/election/start", MetricsMiddleware(s.electionHandler.HandleStartRound, "election_start"))
	mux.HandleFunc("/election/ballot", MetricsMiddleware(s.electionHandler.HandleCastBallot, "election_ballot"))
	mux.HandleFunc("/election/end", MetricsMiddleware(s.electionHandler.HandleEndRound, "election_end"))
	mux.HandleFunc("/election/history", MetricsMiddleware(s.electionHandler.HandleHistory, "election_history"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// userID extracts the acting user from the request, or writes a 401 and
// returns false.
func userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.Header.Get(userIDHeader)
	if id == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized", ErrMissingUser)
		return "", false
	}
	return id, true
}

// writeServiceError translates service sentinels to HTTP statuses.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", NewKind(op, err))
	case errors.Is(err, service.ErrNotAuthorized):
		writeError(w, http.StatusForbidden, "forbidden", NewKind(op, err))
	case errors.Is(err, service.ErrRoundNotActive):
		writeError(w, http.StatusConflict, "round_not_active", NewKind(op, err))
	case errors.Is(err, service.ErrNoLinkedPlayer),
		errors.Is(err, service.ErrInvalidBallotTarget),
		errors.Is(err, service.ErrUnknownAttribute),
		errors.Is(err, votes.ErrInvalidDirection):
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal", WrapKind(op, ErrInternal, err))
	}
}
