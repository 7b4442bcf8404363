package httpapi

import (
	"net/http"

	"github.com/riskibarqy/football-dashboard/internal/domain/fixture"
	"github.com/riskibarqy/football-dashboard/internal/domain/standing"
	"github.com/riskibarqy/football-dashboard/internal/domain/transfer"
	"github.com/riskibarqy/football-dashboard/internal/usecase"
)

type fixtureListQuery struct {
	Live   string `validate:"omitempty,max=200"`
	Date   string `validate:"omitempty,max=32"`
	League string `validate:"omitempty,numeric"`
	Team   string `validate:"omitempty,numeric"`
	Next   string `validate:"omitempty,numeric"`
	Last   string `validate:"omitempty,numeric"`
	Status string `validate:"omitempty,max=40"`
	Season string `validate:"omitempty,numeric,len=4"`
}

type standingsQuery struct {
	League string `validate:"omitempty,numeric"`
	Season string `validate:"omitempty,numeric,len=4"`
}

type transferListQuery struct {
	Team   string `validate:"omitempty,numeric"`
	Player string `validate:"omitempty,numeric"`
}

type fixturesResponse struct {
	Fixtures      []fixture.Fixture    `json:"fixtures"`
	Total         int                  `json:"total"`
	Leagues       []string             `json:"leagues"`
	Status        usecase.ResultStatus `json:"status"`
	FailedSources []string             `json:"failedSources"`
	Message       string               `json:"message,omitempty"`
}

type standingsResponse struct {
	Standings []standing.Row          `json:"standings"`
	Total     int                     `json:"total"`
	League    usecase.StandingsLeague `json:"league"`
}

type transfersResponse struct {
	Transfers     []transfer.Item      `json:"transfers"`
	Total         int                  `json:"total"`
	Status        usecase.ResultStatus `json:"status"`
	FailedSources []string             `json:"failedSources"`
	Message       string               `json:"message,omitempty"`
}

func (h *Handler) ListFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixtures")
	defer span.End()

	values := r.URL.Query()
	query := fixtureListQuery{
		Live:   queryString(values, "live"),
		Date:   queryString(values, "date"),
		League: queryString(values, "league"),
		Team:   queryString(values, "team"),
		Next:   queryString(values, "next"),
		Last:   queryString(values, "last"),
		Status: queryString(values, "status"),
		Season: queryString(values, "season"),
	}
	if err := h.validateRequest(ctx, query); err != nil {
		h.fail(ctx, w, "invalid request", err, "path", r.URL.Path)
		return
	}

	out, err := h.fixtures.ListFixtures(ctx, fixture.Query{
		Live:   query.Live,
		Date:   query.Date,
		League: query.League,
		Team:   query.Team,
		Next:   query.Next,
		Last:   query.Last,
		Status: query.Status,
		Season: query.Season,
	})
	if err != nil {
		h.fail(ctx, w, "list fixtures failed", err, "league", query.League, "team", query.Team)
		return
	}

	writeCached(ctx, w, fixturesCache, fixturesResponse{
		Fixtures:      nonNil(out.Fixtures),
		Total:         out.Total,
		Leagues:       nonNil(out.Leagues),
		Status:        out.Status,
		FailedSources: nonNil(out.FailedSources),
		Message:       out.Message,
	})
}

func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStandings")
	defer span.End()

	values := r.URL.Query()
	query := standingsQuery{
		League: queryString(values, "league"),
		Season: queryString(values, "season"),
	}
	if err := h.validateRequest(ctx, query); err != nil {
		h.fail(ctx, w, "invalid request", err, "path", r.URL.Path)
		return
	}

	out, err := h.standings.ListStandings(ctx, query.League, query.Season)
	if err != nil {
		h.fail(ctx, w, "list standings failed", err, "league", query.League, "season", query.Season)
		return
	}

	writeCached(ctx, w, standingsCache, standingsResponse{
		Standings: nonNil(out.Standings),
		Total:     out.Total,
		League:    out.League,
	})
}

func (h *Handler) ListTransfers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTransfers")
	defer span.End()

	values := r.URL.Query()
	query := transferListQuery{
		Team:   queryString(values, "team"),
		Player: queryString(values, "player"),
	}
	if err := h.validateRequest(ctx, query); err != nil {
		h.fail(ctx, w, "invalid request", err, "path", r.URL.Path)
		return
	}

	out, err := h.transfers.ListTransfers(ctx, transfer.Query{Team: query.Team, Player: query.Player})
	if err != nil {
		h.fail(ctx, w, "list transfers failed", err, "team", query.Team, "player", query.Player)
		return
	}

	writeCached(ctx, w, defaultCache, transfersResponse{
		Transfers:     nonNil(out.Transfers),
		Total:         out.Total,
		Status:        out.Status,
		FailedSources: nonNil(out.FailedSources),
		Message:       out.Message,
	})
}
