package httpapi

import (
	"net/http"

	"github.com/riskibarqy/football-dashboard/internal/platform/logging"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerFootballRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/competitions", handler.ListCompetitions)
	mux.HandleFunc("GET /api/competitions/{id}", handler.GetCompetition)
	mux.HandleFunc("GET /api/competitions/{id}/standings", handler.GetCompetitionStandings)
	mux.HandleFunc("GET /api/competitions/{id}/scorers", handler.ListCompetitionScorers)
	mux.HandleFunc("GET /api/competitions/{id}/teams", handler.ListCompetitionTeams)
	mux.HandleFunc("GET /api/competitions/{id}/matches", handler.ListCompetitionMatches)
	mux.HandleFunc("GET /api/matches", handler.ListMatches)
	mux.HandleFunc("GET /api/teams", handler.ListTeams)
	mux.HandleFunc("GET /api/teams/popular", handler.ListPopularTeams)
	mux.HandleFunc("GET /api/teams/{id}", handler.GetTeam)
	mux.HandleFunc("GET /api/teams/{id}/matches", handler.ListTeamMatches)
	mux.HandleFunc("GET /api/players", handler.ListPlayers)
	mux.HandleFunc("GET /api/players/popular", handler.ListPopularPlayers)
	mux.HandleFunc("GET /api/fixtures", handler.ListFixtures)
	mux.HandleFunc("GET /api/standings", handler.ListStandings)
	mux.HandleFunc("GET /api/transfers", handler.ListTransfers)
	mux.HandleFunc("GET /api/areas", handler.ListAreas)
	mux.HandleFunc("GET /api/highlights", handler.ListHighlights)
}

func registerAuthRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier, cfg RouterConfig, logger *logging.Logger) {
	limited := func(next http.HandlerFunc) http.Handler {
		if cfg.AuthLimiter == nil {
			return next
		}
		return RateLimit(cfg.AuthLimiter, cfg.TrustedProxyHeader, logger, next)
	}

	mux.Handle("POST /api/auth/signup", limited(handler.Signup))
	mux.Handle("POST /api/auth/login", limited(handler.Login))
	mux.Handle("GET /api/auth/me", RequireAuth(verifier, http.HandlerFunc(handler.Me)))
}
