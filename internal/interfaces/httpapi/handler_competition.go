package httpapi

import (
	"net/http"

	"github.com/riskibarqy/football-dashboard/internal/domain/competition"
	"github.com/riskibarqy/football-dashboard/internal/domain/match"
	"github.com/riskibarqy/football-dashboard/internal/domain/standing"
	"github.com/riskibarqy/football-dashboard/internal/domain/team"
)

type competitionListQuery struct {
	Areas string `validate:"omitempty,max=200"`
}

type competitionsResponse struct {
	Competitions []competition.Competition `json:"competitions"`
	Count        int                       `json:"count"`
}

type scorersResponse struct {
	Scorers []competition.Scorer `json:"scorers"`
	Count   int                  `json:"count"`
}

type competitionTeamsResponse struct {
	Teams []team.Team `json:"teams"`
	Count int         `json:"count"`
}

type matchListResponse struct {
	Matches []match.Match `json:"matches"`
	Count   int           `json:"count"`
}

func (h *Handler) ListCompetitions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCompetitions")
	defer span.End()

	query := competitionListQuery{Areas: queryString(r.URL.Query(), "areas")}
	if err := h.validateRequest(ctx, query); err != nil {
		h.fail(ctx, w, "invalid request", err, "path", r.URL.Path)
		return
	}

	items, err := h.competitions.ListCompetitions(ctx, query.Areas)
	if err != nil {
		h.fail(ctx, w, "list competitions failed", err, "areas", query.Areas)
		return
	}

	items = nonNil(items)
	writeCached(ctx, w, defaultCache, competitionsResponse{Competitions: items, Count: len(items)})
}

func (h *Handler) GetCompetition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCompetition")
	defer span.End()

	id := r.PathValue("id")
	item, err := h.competitions.GetCompetition(ctx, id)
	if err != nil {
		h.fail(ctx, w, "get competition failed", err, "competition_id", id)
		return
	}

	writeCached(ctx, w, defaultCache, item)
}

func (h *Handler) GetCompetitionStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCompetitionStandings")
	defer span.End()

	id := r.PathValue("id")
	values := r.URL.Query()
	table, err := h.competitions.GetStandings(ctx, id, standing.Query{
		Matchday: queryString(values, "matchday"),
		Season:   queryString(values, "season"),
		Date:     queryString(values, "date"),
	})
	if err != nil {
		h.fail(ctx, w, "get competition standings failed", err, "competition_id", id)
		return
	}

	writeCached(ctx, w, competitionStandingCache, table)
}

func (h *Handler) ListCompetitionScorers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCompetitionScorers")
	defer span.End()

	id := r.PathValue("id")
	values := r.URL.Query()
	limit, err := queryInt(values, "limit")
	if err != nil {
		h.fail(ctx, w, "invalid request", err, "path", r.URL.Path)
		return
	}

	items, err := h.competitions.ListScorers(ctx, id, limit, queryString(values, "season"))
	if err != nil {
		h.fail(ctx, w, "list competition scorers failed", err, "competition_id", id)
		return
	}

	items = nonNil(items)
	writeCached(ctx, w, defaultCache, scorersResponse{Scorers: items, Count: len(items)})
}

func (h *Handler) ListCompetitionTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCompetitionTeams")
	defer span.End()

	id := r.PathValue("id")
	items, err := h.competitions.ListTeams(ctx, id, queryString(r.URL.Query(), "season"))
	if err != nil {
		h.fail(ctx, w, "list competition teams failed", err, "competition_id", id)
		return
	}

	items = nonNil(items)
	writeCached(ctx, w, defaultCache, competitionTeamsResponse{Teams: items, Count: len(items)})
}

func (h *Handler) ListCompetitionMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCompetitionMatches")
	defer span.End()

	id := r.PathValue("id")
	values := r.URL.Query()
	items, err := h.competitions.ListMatches(ctx, id, match.Query{
		DateFrom: queryString(values, "dateFrom"),
		DateTo:   queryString(values, "dateTo"),
		Stage:    queryString(values, "stage"),
		Status:   queryString(values, "status"),
		Matchday: queryString(values, "matchday"),
		Group:    queryString(values, "group"),
		Season:   queryString(values, "season"),
	})
	if err != nil {
		h.fail(ctx, w, "list competition matches failed", err, "competition_id", id)
		return
	}

	items = nonNil(items)
	writeCached(ctx, w, matchesCache, matchListResponse{Matches: items, Count: len(items)})
}
