package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/riskibarqy/football-dashboard/internal/domain/competition"
	"github.com/riskibarqy/football-dashboard/internal/domain/match"
	"github.com/riskibarqy/football-dashboard/internal/domain/standing"
	"github.com/riskibarqy/football-dashboard/internal/domain/team"
)

const (
	defaultScorersLimit = 10
	maxScorersLimit     = 100
)

type CompetitionService struct {
	provider CompetitionProvider
}

func NewCompetitionService(provider CompetitionProvider) *CompetitionService {
	return &CompetitionService{provider: provider}
}

// ListCompetitions returns the TIER_ONE competitions, optionally narrowed to area ids.
func (s *CompetitionService) ListCompetitions(ctx context.Context, areas string) ([]competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.ListCompetitions")
	defer span.End()

	areas, err := normalizeIDList(areas)
	if err != nil {
		return nil, fmt.Errorf("%w: areas: %v", ErrInvalidInput, err)
	}

	items, err := s.provider.ListCompetitions(ctx, competition.PlanTierOne, areas)
	if err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}
	return items, nil
}

func (s *CompetitionService) GetCompetition(ctx context.Context, id string) (competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.GetCompetition")
	defer span.End()

	id, err := competitionID(id)
	if err != nil {
		return competition.Competition{}, err
	}

	item, err := s.provider.GetCompetition(ctx, id)
	if err != nil {
		return competition.Competition{}, fmt.Errorf("get competition %s: %w", id, err)
	}
	return item, nil
}

func (s *CompetitionService) GetStandings(ctx context.Context, id string, query standing.Query) (standing.Table, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.GetStandings")
	defer span.End()

	id, err := competitionID(id)
	if err != nil {
		return standing.Table{}, err
	}
	if query.Matchday, err = positiveIntParam("matchday", query.Matchday); err != nil {
		return standing.Table{}, err
	}
	if query.Season, err = seasonParam(query.Season); err != nil {
		return standing.Table{}, err
	}
	if query.Date, err = dateParam("date", query.Date); err != nil {
		return standing.Table{}, err
	}

	table, err := s.provider.GetCompetitionStandings(ctx, id, query)
	if err != nil {
		return standing.Table{}, fmt.Errorf("get standings %s: %w", id, err)
	}
	if table.Standings == nil {
		table.Standings = []standing.Group{}
	}
	return table, nil
}

func (s *CompetitionService) ListScorers(ctx context.Context, id string, limit int, season string) ([]competition.Scorer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.ListScorers")
	defer span.End()

	id, err := competitionID(id)
	if err != nil {
		return nil, err
	}
	if limit, err = limitParam(limit, defaultScorersLimit, maxScorersLimit); err != nil {
		return nil, err
	}
	if season, err = seasonParam(season); err != nil {
		return nil, err
	}

	items, err := s.provider.ListCompetitionScorers(ctx, id, limit, season)
	if err != nil {
		return nil, fmt.Errorf("list scorers %s: %w", id, err)
	}
	return items, nil
}

func (s *CompetitionService) ListTeams(ctx context.Context, id, season string) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.ListTeams")
	defer span.End()

	id, err := competitionID(id)
	if err != nil {
		return nil, err
	}
	if season, err = seasonParam(season); err != nil {
		return nil, err
	}

	items, err := s.provider.ListCompetitionTeams(ctx, id, season)
	if err != nil {
		return nil, fmt.Errorf("list competition teams %s: %w", id, err)
	}
	return items, nil
}

func (s *CompetitionService) ListMatches(ctx context.Context, id string, query match.Query) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.ListMatches")
	defer span.End()

	id, err := competitionID(id)
	if err != nil {
		return nil, err
	}
	if query.DateFrom, err = dateParam("dateFrom", query.DateFrom); err != nil {
		return nil, err
	}
	if query.DateTo, err = dateParam("dateTo", query.DateTo); err != nil {
		return nil, err
	}
	if query.Matchday, err = positiveIntParam("matchday", query.Matchday); err != nil {
		return nil, err
	}
	if query.Season, err = seasonParam(query.Season); err != nil {
		return nil, err
	}
	if query.Status, err = statusParam(query.Status); err != nil {
		return nil, err
	}
	query.Stage = strings.ToUpper(strings.TrimSpace(query.Stage))
	query.Group = strings.ToUpper(strings.TrimSpace(query.Group))

	items, err := s.provider.ListCompetitionMatches(ctx, id, query)
	if err != nil {
		return nil, fmt.Errorf("list competition matches %s: %w", id, err)
	}
	return items, nil
}

func competitionID(raw string) (string, error) {
	id := strings.ToUpper(strings.TrimSpace(raw))
	if id == "" {
		return "", fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}
	if unescaped, err := url.PathUnescape(id); err != nil || unescaped != id || strings.ContainsAny(id, "/?#") {
		return "", fmt.Errorf("%w: invalid competition id %q", ErrInvalidInput, raw)
	}
	return id, nil
}

func positiveIntParam(name, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return "", fmt.Errorf("%w: %s must be a positive integer", ErrInvalidInput, name)
	}
	return strconv.Itoa(v), nil
}

func seasonParam(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1900 || v > 2999 {
		return "", fmt.Errorf("%w: season must be a four digit year", ErrInvalidInput)
	}
	return raw, nil
}

func dateParam(name, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	t, err := ParseDate(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidInput, name, err)
	}
	return FormatDate(t), nil
}

func statusParam(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	status := match.NormalizeStatus(raw)
	if !status.Valid() {
		return "", fmt.Errorf("%w: unknown match status %q", ErrInvalidInput, raw)
	}
	return string(status), nil
}

// normalizeIDList trims a comma separated id list and rejects non-numeric entries.
func normalizeIDList(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, err := strconv.ParseInt(part, 10, 64); err != nil {
			return "", fmt.Errorf("invalid id %q", part)
		}
		out = append(out, part)
	}
	return strings.Join(out, ","), nil
}
