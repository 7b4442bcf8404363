package httpapi

import (
	"net/http"

	"github.com/riskibarqy/football-dashboard/internal/domain/match"
	"github.com/riskibarqy/football-dashboard/internal/usecase"
)

type matchListQuery struct {
	DateFrom      string `validate:"omitempty,max=32"`
	DateTo        string `validate:"omitempty,max=32"`
	Status        string `validate:"omitempty,max=20"`
	CompetitionID string `validate:"omitempty,max=64"`
}

type matchesMeta struct {
	Params    map[string]string `json:"params"`
	Count     int               `json:"count"`
	DateRange *match.DateRange  `json:"dateRange,omitempty"`
}

type matchesResponse struct {
	Matches []match.Match `json:"matches"`
	Meta    matchesMeta   `json:"meta"`
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	values := r.URL.Query()
	query := matchListQuery{
		DateFrom:      queryString(values, "dateFrom"),
		DateTo:        queryString(values, "dateTo"),
		Status:        queryString(values, "status"),
		CompetitionID: queryString(values, "competitionId"),
	}
	if err := h.validateRequest(ctx, query); err != nil {
		h.fail(ctx, w, "invalid request", err, "path", r.URL.Path)
		return
	}

	out, err := h.matches.ListMatches(ctx, usecase.MatchListInput{
		DateFrom:      query.DateFrom,
		DateTo:        query.DateTo,
		Status:        query.Status,
		CompetitionID: query.CompetitionID,
	})
	if err != nil {
		h.fail(ctx, w, "list matches failed", err, "params", query)
		return
	}

	matches := nonNil(out.Matches)
	params := out.Params
	if params == nil {
		params = map[string]string{}
	}
	writeCached(ctx, w, matchesCache, matchesResponse{
		Matches: matches,
		Meta: matchesMeta{
			Params:    params,
			Count:     len(matches),
			DateRange: out.DateRange,
		},
	})
}
