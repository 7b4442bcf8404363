package httpapi

import (
	"net/http"

	"github.com/riskibarqy/football-dashboard/internal/domain/player"
	"github.com/riskibarqy/football-dashboard/internal/usecase"
)

type playerListQuery struct {
	Search      string `validate:"omitempty,max=100"`
	Position    string `validate:"omitempty,max=40"`
	Nationality string `validate:"omitempty,max=60"`
	Limit       int
}

type popularPlayerQuery struct {
	Search string `validate:"omitempty,max=100"`
}

type playersResponse struct {
	Players       []player.Player      `json:"players"`
	Total         int                  `json:"total"`
	Positions     []string             `json:"positions"`
	Nationalities []string             `json:"nationalities"`
	Teams         []string             `json:"teams"`
	Skipped       int                  `json:"skipped"`
	Status        usecase.ResultStatus `json:"status"`
	FailedSources []string             `json:"failedSources"`
}

type popularPlayersResponse struct {
	Players       []player.SquadMember `json:"players"`
	Count         int                  `json:"count"`
	Status        usecase.ResultStatus `json:"status"`
	FailedSources []string             `json:"failedSources"`
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	values := r.URL.Query()
	limit, err := queryInt(values, "limit")
	if err != nil {
		h.fail(ctx, w, "invalid request", err, "path", r.URL.Path)
		return
	}
	query := playerListQuery{
		Search:      queryString(values, "search"),
		Position:    queryString(values, "position"),
		Nationality: queryString(values, "nationality"),
		Limit:       limit,
	}
	if err := h.validateRequest(ctx, query); err != nil {
		h.fail(ctx, w, "invalid request", err, "path", r.URL.Path)
		return
	}

	out, err := h.players.SearchPlayers(ctx, usecase.PlayerSearchInput{
		Search:      query.Search,
		Position:    query.Position,
		Nationality: query.Nationality,
		Limit:       query.Limit,
	})
	if err != nil {
		h.fail(ctx, w, "list players failed", err, "search", query.Search, "position", query.Position)
		return
	}

	writeCached(ctx, w, defaultCache, playersResponse{
		Players:       nonNil(out.Players),
		Total:         out.Total,
		Positions:     nonNil(out.Positions),
		Nationalities: nonNil(out.Nationalities),
		Teams:         nonNil(out.Teams),
		Skipped:       out.Skipped,
		Status:        out.Status,
		FailedSources: nonNil(out.FailedSources),
	})
}

func (h *Handler) ListPopularPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPopularPlayers")
	defer span.End()

	query := popularPlayerQuery{Search: queryString(r.URL.Query(), "search")}
	if err := h.validateRequest(ctx, query); err != nil {
		h.fail(ctx, w, "invalid request", err, "path", r.URL.Path)
		return
	}

	out, err := h.players.PopularPlayers(ctx, query.Search)
	if err != nil {
		h.fail(ctx, w, "list popular players failed", err, "search", query.Search)
		return
	}

	writeCached(ctx, w, defaultCache, popularPlayersResponse{
		Players:       nonNil(out.Players),
		Count:         out.Count,
		Status:        out.Status,
		FailedSources: nonNil(out.FailedSources),
	})
}
