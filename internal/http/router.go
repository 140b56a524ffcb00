package http

import (
	nethttp "net/http"

	"github.com/gorilla/mux"

	"github.com/sjounng/team-draft-lol/internal/auth"
)

// NewRouter registers all HTTP routes behind the auth middleware.
func NewRouter(handler *Handler, tokens *auth.TokenIssuer) nethttp.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", handler.Health).Methods(nethttp.MethodGet)
	r.HandleFunc("/ready", handler.Ready).Methods(nethttp.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/register", handler.Register).Methods(nethttp.MethodPost)
	api.HandleFunc("/auth/login", handler.Login).Methods(nethttp.MethodPost)
	api.HandleFunc("/profiles/me", handler.Me).Methods(nethttp.MethodGet)

	api.HandleFunc("/players", handler.CreatePlayer).Methods(nethttp.MethodPost)
	api.HandleFunc("/players", handler.ListPlayers).Methods(nethttp.MethodGet)
	api.HandleFunc("/players/{id}", handler.GetPlayer).Methods(nethttp.MethodGet)
	api.HandleFunc("/players/{id}", handler.UpdatePlayer).Methods(nethttp.MethodPut)
	api.HandleFunc("/players/{id}", handler.DeletePlayer).Methods(nethttp.MethodDelete)

	api.HandleFunc("/pools", handler.CreatePool).Methods(nethttp.MethodPost)
	api.HandleFunc("/pools", handler.ListPools).Methods(nethttp.MethodGet)
	api.HandleFunc("/pools/{id}", handler.GetPool).Methods(nethttp.MethodGet)
	api.HandleFunc("/pools/{id}", handler.UpdatePool).Methods(nethttp.MethodPut)
	api.HandleFunc("/pools/{id}", handler.DeletePool).Methods(nethttp.MethodDelete)
	api.HandleFunc("/pools/{id}/players", handler.AddPoolPlayers).Methods(nethttp.MethodPost)
	api.HandleFunc("/pools/{id}/players/{playerId}", handler.RemovePoolPlayer).Methods(nethttp.MethodDelete)

	api.HandleFunc("/draft/generate", handler.GenerateTeams).Methods(nethttp.MethodPost)
	api.HandleFunc("/draft/reroll", handler.RerollTeams).Methods(nethttp.MethodPost)

	api.HandleFunc("/matches", handler.CreateMatch).Methods(nethttp.MethodPost)
	api.HandleFunc("/matches", handler.ListMatches).Methods(nethttp.MethodGet)
	api.HandleFunc("/matches/recalculate", handler.RecalculateMatches).Methods(nethttp.MethodPost)
	api.HandleFunc("/matches/{id}", handler.GetMatch).Methods(nethttp.MethodGet)
	api.HandleFunc("/matches/{id}", handler.UpdateMatch).Methods(nethttp.MethodPut)
	api.HandleFunc("/matches/{id}", handler.DeleteMatch).Methods(nethttp.MethodDelete)
	api.HandleFunc("/matches/{id}/apply", handler.ApplyMatch).Methods(nethttp.MethodPost)
	api.HandleFunc("/matches/{id}/cancel", handler.CancelMatch).Methods(nethttp.MethodPost)
	api.HandleFunc("/matches/{id}/simulate", handler.SimulateMatch).Methods(nethttp.MethodPost)

	return AuthMiddleware(tokens, r)
}
