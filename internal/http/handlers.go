package http

import (
	"context"
	"encoding/json"
	"log/slog"
	nethttp "net/http"
	"strconv"

	"github.com/gofrs/uuid/v5"
	"github.com/gorilla/mux"

	"github.com/sjounng/team-draft-lol/internal/app/draft"
	"github.com/sjounng/team-draft-lol/internal/app/matches"
	"github.com/sjounng/team-draft-lol/internal/app/players"
	"github.com/sjounng/team-draft-lol/internal/app/pools"
	"github.com/sjounng/team-draft-lol/internal/app/profiles"
	"github.com/sjounng/team-draft-lol/internal/domain"
)

// Handler wires HTTP routes to the application services.
type Handler struct {
	profiles *profiles.Service
	players  *players.Service
	pools    *pools.Service
	draft    *draft.Service
	matches  *matches.Service
	logger   *slog.Logger
}

// NewHandler constructs a Handler over the application services.
func NewHandler(
	profilesSvc *profiles.Service,
	playersSvc *players.Service,
	poolsSvc *pools.Service,
	draftSvc *draft.Service,
	matchesSvc *matches.Service,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		profiles: profilesSvc,
		players:  playersSvc,
		pools:    poolsSvc,
		draft:    draftSvc,
		matches:  matchesSvc,
		logger:   logger,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"})
}

// Ready reports readiness to serve traffic.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"})
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new profile.
func (h *Handler) Register(w nethttp.ResponseWriter, r *nethttp.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeBadRequest(w, r, "invalid request body")
		return
	}
	profile, err := h.profiles.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, nethttp.StatusCreated, profile)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token   string         `json:"token"`
	Profile domain.Profile `json:"profile"`
}

// Login verifies credentials and returns an access token.
func (h *Handler) Login(w nethttp.ResponseWriter, r *nethttp.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeBadRequest(w, r, "invalid request body")
		return
	}
	token, profile, err := h.profiles.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, nethttp.StatusOK, loginResponse{Token: token, Profile: profile})
}

// Me returns the calling profile.
func (h *Handler) Me(w nethttp.ResponseWriter, r *nethttp.Request) {
	profile, err := h.profiles.Get(r.Context(), profileIDFromContext(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, nethttp.StatusOK, profile)
}

// CreatePlayer registers a new player for the caller.
func (h *Handler) CreatePlayer(w nethttp.ResponseWriter, r *nethttp.Request) {
	var p domain.Player
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		h.writeBadRequest(w, r, "invalid request body")
		return
	}
	created, err := h.players.Create(r.Context(), profileIDFromContext(r.Context()), p)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, nethttp.StatusCreated, created)
}

// ListPlayers returns the caller's players.
func (h *Handler) ListPlayers(w nethttp.ResponseWriter, r *nethttp.Request) {
	list, err := h.players.List(r.Context(), profileIDFromContext(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, nethttp.StatusOK, list)
}

// GetPlayer returns one of the caller's players.
func (h *Handler) GetPlayer(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	p, err := h.players.Get(r.Context(), profileIDFromContext(r.Context()), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, nethttp.StatusOK, p)
}

// UpdatePlayer replaces a player's profile fields.
func (h *Handler) UpdatePlayer(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var p domain.Player
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		h.writeBadRequest(w, r, "invalid request body")
		return
	}
	p.ID = id
	updated, err := h.players.Update(r.Context(), profileIDFromContext(r.Context()), p)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, nethttp.StatusOK, updated)
}

// DeletePlayer removes one of the caller's players.
func (h *Handler) DeletePlayer(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.players.Delete(r.Context(), profileIDFromContext(r.Context()), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(nethttp.StatusNoContent)
}

// CreatePool creates a player pool.
func (h *Handler) CreatePool(w nethttp.ResponseWriter, r *nethttp.Request) {
	var p domain.Pool
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		h.writeBadRequest(w, r, "invalid request body")
		return
	}
	created, err := h.pools.Create(r.Context(), profileIDFromContext(r.Context()), p)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, nethttp.StatusCreated, created)
}

// ListPools returns pools the caller owns or is a member of.
func (h *Handler) ListPools(w nethttp.ResponseWriter, r *nethttp.Request) {
	list, err := h.pools.List(r.Context(), profileIDFromContext(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, nethttp.StatusOK, list)
}

// GetPool returns one pool.
func (h *Handler) GetPool(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	p, err := h.pools.Get(r.Context(), profileIDFromContext(r.Context()), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, nethttp.StatusOK, p)
}

// UpdatePool replaces a pool's name, players, and members.
func (h *Handler) UpdatePool(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var p domain.Pool
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		h.writeBadRequest(w, r, "invalid request body")
		return
	}
	p.ID = id
	updated, err := h.pools.Update(r.Context(), profileIDFromContext(r.Context()), p)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, nethttp.StatusOK, updated)
}

// DeletePool removes a pool.
func (h *Handler) DeletePool(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.pools.Delete(r.Context(), profileIDFromContext(r.Context()), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(nethttp.StatusNoContent)
}

type addPlayersRequest struct {
	PlayerIDs []int64 `json:"playerIds"`
}

// AddPoolPlayers appends players to a pool.
func (h *Handler) AddPoolPlayers(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req addPlayersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeBadRequest(w, r, "invalid request body")
		return
	}
	updated, err := h.pools.AddPlayers(r.Context(), profileIDFromContext(r.Context()), id, req.PlayerIDs)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, nethttp.StatusOK, updated)
}

// RemovePoolPlayer drops one player from a pool.
func (h *Handler) RemovePoolPlayer(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	playerID, err := strconv.ParseInt(mux.Vars(r)["playerId"], 10, 64)
	if err != nil {
		h.writeBadRequest(w, r, "invalid player id")
		return
	}
	updated, err := h.pools.RemovePlayer(r.Context(), profileIDFromContext(r.Context()), id, playerID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, nethttp.StatusOK, updated)
}

type generateRequest struct {
	PlayerIDs []int64 `json:"playerIds"`
	Index     int     `json:"combinationIndex"`
}

// GenerateTeams ranks balanced team splits for a 10-player roster and
// returns the combination at the requested index.
func (h *Handler) GenerateTeams(w nethttp.ResponseWriter, r *nethttp.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeBadRequest(w, r, "invalid request body")
		return
	}
	sel, err := h.draft.Generate(r.Context(), req.PlayerIDs, req.Index)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, nethttp.StatusOK, sel)
}

type rerollRequest struct {
	RosterKey string `json:"rosterKey"`
	Index     int    `json:"combinationIndex"`
}

// RerollTeams serves another combination from an already ranked roster.
func (h *Handler) RerollTeams(w nethttp.ResponseWriter, r *nethttp.Request) {
	var req rerollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeBadRequest(w, r, "invalid request body")
		return
	}
	sel, ok := h.draft.Select(req.RosterKey, req.Index)
	if !ok {
		h.writeJSON(w, nethttp.StatusNotFound, map[string]string{
			"error": "roster not ranked or expired, generate again",
		})
		return
	}
	h.writeJSON(w, nethttp.StatusOK, sel)
}

// CreateMatch records a finished game.
func (h *Handler) CreateMatch(w nethttp.ResponseWriter, r *nethttp.Request) {
	var m domain.Match
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		h.writeBadRequest(w, r, "invalid request body")
		return
	}
	created, err := h.matches.Create(r.Context(), profileIDFromContext(r.Context()), m)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, nethttp.StatusCreated, created)
}

// ListMatches returns the caller's match history, oldest first.
func (h *Handler) ListMatches(w nethttp.ResponseWriter, r *nethttp.Request) {
	list, err := h.matches.List(r.Context(), profileIDFromContext(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, nethttp.StatusOK, list)
}

// GetMatch returns one match.
func (h *Handler) GetMatch(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	m, err := h.matches.Get(r.Context(), profileIDFromContext(r.Context()), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, nethttp.StatusOK, m)
}

// UpdateMatch replaces a match's statistics, unwinding any applied
// rating effect first.
func (h *Handler) UpdateMatch(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var m domain.Match
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		h.writeBadRequest(w, r, "invalid request body")
		return
	}
	m.ID = id
	updated, err := h.matches.Update(r.Context(), profileIDFromContext(r.Context()), m)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, nethttp.StatusOK, updated)
}

// DeleteMatch removes a match, unwinding any applied rating effect.
func (h *Handler) DeleteMatch(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.matches.Delete(r.Context(), profileIDFromContext(r.Context()), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(nethttp.StatusNoContent)
}

// ApplyMatch commits the match's rating effect.
func (h *Handler) ApplyMatch(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.matchEffect(w, r, h.matches.Apply)
}

// CancelMatch reverses a previously applied match.
func (h *Handler) CancelMatch(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.matchEffect(w, r, h.matches.Cancel)
}

// SimulateMatch previews the rating effect without committing it.
func (h *Handler) SimulateMatch(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.matchEffect(w, r, h.matches.Simulate)
}

// RecalculateMatches replays the caller's whole history with the
// current formula.
func (h *Handler) RecalculateMatches(w nethttp.ResponseWriter, r *nethttp.Request) {
	all, err := h.matches.Recalculate(r.Context(), profileIDFromContext(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, nethttp.StatusOK, map[string]any{"matches": all})
}

func (h *Handler) matchEffect(
	w nethttp.ResponseWriter,
	r *nethttp.Request,
	op func(ctx context.Context, ownerID uuid.UUID, id int64) ([]domain.Outcome, error),
) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	outcomes, err := op(r.Context(), profileIDFromContext(r.Context()), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, nethttp.StatusOK, map[string]any{"players": outcomes})
}

func (h *Handler) pathID(w nethttp.ResponseWriter, r *nethttp.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.writeBadRequest(w, r, "invalid id")
		return 0, false
	}
	return id, true
}
