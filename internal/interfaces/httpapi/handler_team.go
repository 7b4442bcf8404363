package httpapi

import (
	"net/http"

	"github.com/riskibarqy/football-dashboard/internal/domain/match"
	"github.com/riskibarqy/football-dashboard/internal/domain/team"
	"github.com/riskibarqy/football-dashboard/internal/usecase"
)

type teamListQuery struct {
	Search      string `validate:"omitempty,max=100"`
	Competition string `validate:"omitempty,max=20"`
	Limit       int
}

type teamsResponse struct {
	Teams         []team.Team          `json:"teams"`
	Total         int                  `json:"total"`
	Competitions  []string             `json:"competitions"`
	Countries     []string             `json:"countries"`
	Status        usecase.ResultStatus `json:"status"`
	FailedSources []string             `json:"failedSources"`
}

type popularTeamsResponse struct {
	Teams         []team.Team          `json:"teams"`
	Count         int                  `json:"count"`
	Status        usecase.ResultStatus `json:"status"`
	FailedSources []string             `json:"failedSources"`
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	values := r.URL.Query()
	limit, err := queryInt(values, "limit")
	if err != nil {
		h.fail(ctx, w, "invalid request", err, "path", r.URL.Path)
		return
	}
	query := teamListQuery{
		Search:      queryString(values, "search"),
		Competition: queryString(values, "competition"),
		Limit:       limit,
	}
	if err := h.validateRequest(ctx, query); err != nil {
		h.fail(ctx, w, "invalid request", err, "path", r.URL.Path)
		return
	}

	out, err := h.teams.SearchTeams(ctx, usecase.TeamSearchInput{
		Search:      query.Search,
		Competition: query.Competition,
		Limit:       query.Limit,
	})
	if err != nil {
		h.fail(ctx, w, "list teams failed", err, "search", query.Search, "competition", query.Competition)
		return
	}

	writeCached(ctx, w, defaultCache, teamsResponse{
		Teams:         nonNil(out.Teams),
		Total:         out.Total,
		Competitions:  nonNil(out.Competitions),
		Countries:     nonNil(out.Countries),
		Status:        out.Status,
		FailedSources: nonNil(out.FailedSources),
	})
}

func (h *Handler) ListPopularTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPopularTeams")
	defer span.End()

	out, err := h.teams.PopularTeams(ctx)
	if err != nil {
		h.fail(ctx, w, "list popular teams failed", err)
		return
	}

	writeCached(ctx, w, defaultCache, popularTeamsResponse{
		Teams:         nonNil(out.Teams),
		Count:         out.Count,
		Status:        out.Status,
		FailedSources: nonNil(out.FailedSources),
	})
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	id, err := pathInt64(r, "id")
	if err != nil {
		h.fail(ctx, w, "invalid request", err, "path", r.URL.Path)
		return
	}

	item, err := h.teams.GetTeam(ctx, id)
	if err != nil {
		h.fail(ctx, w, "get team failed", err, "team_id", id)
		return
	}

	writeCached(ctx, w, defaultCache, item)
}

func (h *Handler) ListTeamMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamMatches")
	defer span.End()

	id, err := pathInt64(r, "id")
	if err != nil {
		h.fail(ctx, w, "invalid request", err, "path", r.URL.Path)
		return
	}
	values := r.URL.Query()
	limit, err := queryInt(values, "limit")
	if err != nil {
		h.fail(ctx, w, "invalid request", err, "path", r.URL.Path)
		return
	}

	items, err := h.teams.ListTeamMatches(ctx, id, match.Query{
		DateFrom:     queryString(values, "dateFrom"),
		DateTo:       queryString(values, "dateTo"),
		Status:       queryString(values, "status"),
		Competitions: queryString(values, "competitions"),
		Season:       queryString(values, "season"),
		Venue:        queryString(values, "venue"),
		Limit:        limit,
	})
	if err != nil {
		h.fail(ctx, w, "list team matches failed", err, "team_id", id)
		return
	}

	items = nonNil(items)
	writeCached(ctx, w, matchesCache, matchListResponse{Matches: items, Count: len(items)})
}
