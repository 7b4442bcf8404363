package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/riskibarqy/football-dashboard/internal/domain/standing"
)

const DefaultStandingsLeague = "39"

type StandingsResult struct {
	Standings []standing.Row
	Total     int
	League    StandingsLeague
}

type StandingsLeague struct {
	ID     string `json:"id"`
	Season string `json:"season"`
}

type StandingService struct {
	provider      StandingProvider
	defaultSeason int
}

func NewStandingService(provider StandingProvider, defaultSeason int) *StandingService {
	return &StandingService{provider: provider, defaultSeason: defaultSeason}
}

func (s *StandingService) ListStandings(ctx context.Context, league, season string) (StandingsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.ListStandings")
	defer span.End()

	league, err := positiveIntParam("league", league)
	if err != nil {
		return StandingsResult{}, err
	}
	if league == "" {
		league = DefaultStandingsLeague
	}
	if season, err = seasonParam(season); err != nil {
		return StandingsResult{}, err
	}
	if season == "" {
		season = strconv.Itoa(s.defaultSeason)
	}

	rows, err := s.provider.ListStandings(ctx, league, season)
	if err != nil {
		return StandingsResult{}, fmt.Errorf("list standings league=%s season=%s: %w", league, season, err)
	}
	if rows == nil {
		rows = []standing.Row{}
	}

	return StandingsResult{
		Standings: rows,
		Total:     len(rows),
		League:    StandingsLeague{ID: league, Season: season},
	}, nil
}
