package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/football-dashboard/internal/domain/match"
	"github.com/riskibarqy/football-dashboard/internal/domain/team"
)

const (
	defaultTeamLimit    = 50
	maxTeamLimit        = 500
	popularTeamLimit    = 50
	maxTeamMatchesLimit = 500
)

type TeamServiceConfig struct {
	CompetitionCodes        []string
	PopularCompetitionCodes []string
	Delay                   time.Duration
	PopularDelay            time.Duration
}

type TeamSearchInput struct {
	Search      string
	Competition string
	Limit       int
}

type TeamSearchResult struct {
	Teams         []team.Team
	Total         int
	Competitions  []string
	Countries     []string
	Status        ResultStatus
	FailedSources []string
}

// PopularTeams holds at most fifty teams; Count is the size of the whole aggregated set.
type PopularTeams struct {
	Teams         []team.Team
	Count         int
	Status        ResultStatus
	FailedSources []string
}

type TeamService struct {
	provider   TeamProvider
	aggregator *Aggregator
	cfg        TeamServiceConfig
}

func NewTeamService(provider TeamProvider, aggregator *Aggregator, cfg TeamServiceConfig) *TeamService {
	return &TeamService{
		provider:   provider,
		aggregator: aggregator,
		cfg:        cfg,
	}
}

// SearchTeams aggregates the configured competitions, then filters and truncates.
// Facets are computed over the whole deduplicated set.
func (s *TeamService) SearchTeams(ctx context.Context, input TeamSearchInput) (TeamSearchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.SearchTeams")
	defer span.End()

	limit, err := limitParam(input.Limit, defaultTeamLimit, maxTeamLimit)
	if err != nil {
		return TeamSearchResult{}, err
	}

	result, err := s.aggregator.TeamsAcrossCompetitions(ctx, s.provider, s.cfg.CompetitionCodes, s.cfg.Delay)
	if err != nil {
		return TeamSearchResult{}, fmt.Errorf("aggregate teams: %w", err)
	}
	if result.Unavailable() {
		return TeamSearchResult{}, unavailableError("teams", result.FailedSources)
	}

	competitionFilter := strings.ToUpper(strings.TrimSpace(input.Competition))
	filtered := make([]team.Team, 0, len(result.Items))
	for _, item := range result.Items {
		if !item.MatchesSearch(input.Search) {
			continue
		}
		if competitionFilter != "" && competitionFilter != "ALL" {
			if item.PrimaryCompetition == nil || !strings.EqualFold(item.PrimaryCompetition.ID, competitionFilter) {
				continue
			}
		}
		filtered = append(filtered, item)
	}

	return TeamSearchResult{
		Teams:         truncate(filtered, limit),
		Total:         len(filtered),
		Competitions:  uniqueValues(result.Items, team.Team.PrimaryCompetitionName),
		Countries:     uniqueValues(result.Items, team.Team.AreaName),
		Status:        result.Status,
		FailedSources: result.FailedSourceList(),
	}, nil
}

func (s *TeamService) PopularTeams(ctx context.Context) (PopularTeams, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.PopularTeams")
	defer span.End()

	result, err := s.aggregator.TeamsAcrossCompetitions(ctx, s.provider, s.cfg.PopularCompetitionCodes, s.cfg.PopularDelay)
	if err != nil {
		return PopularTeams{}, fmt.Errorf("aggregate popular teams: %w", err)
	}
	if result.Unavailable() {
		return PopularTeams{}, unavailableError("popular teams", result.FailedSources)
	}

	return PopularTeams{
		Teams:         truncate(result.Items, popularTeamLimit),
		Count:         result.Total,
		Status:        result.Status,
		FailedSources: result.FailedSourceList(),
	}, nil
}

func (s *TeamService) GetTeam(ctx context.Context, id int64) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetTeam")
	defer span.End()

	if id <= 0 {
		return team.Team{}, fmt.Errorf("%w: team id must be > 0", ErrInvalidInput)
	}
	item, err := s.provider.GetTeam(ctx, id)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team %d: %w", id, err)
	}
	return item, nil
}

func (s *TeamService) ListTeamMatches(ctx context.Context, id int64, query match.Query) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListTeamMatches")
	defer span.End()

	if id <= 0 {
		return nil, fmt.Errorf("%w: team id must be > 0", ErrInvalidInput)
	}

	var err error
	if query.DateFrom, err = dateParam("dateFrom", query.DateFrom); err != nil {
		return nil, err
	}
	if query.DateTo, err = dateParam("dateTo", query.DateTo); err != nil {
		return nil, err
	}
	if query.Status, err = statusParam(query.Status); err != nil {
		return nil, err
	}
	if query.Season, err = seasonParam(query.Season); err != nil {
		return nil, err
	}
	query.Competitions = strings.ToUpper(strings.TrimSpace(query.Competitions))
	query.Venue = strings.ToUpper(strings.TrimSpace(query.Venue))
	if query.Venue != "" && query.Venue != "HOME" && query.Venue != "AWAY" {
		return nil, fmt.Errorf("%w: venue must be HOME or AWAY", ErrInvalidInput)
	}
	if query.Limit < 0 || query.Limit > maxTeamMatchesLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, maxTeamMatchesLimit)
	}

	items, err := s.provider.ListTeamMatches(ctx, id, query)
	if err != nil {
		return nil, fmt.Errorf("list team matches %d: %w", id, err)
	}
	return items, nil
}

func limitParam(limit, def, max int) (int, error) {
	switch {
	case limit == 0:
		return def, nil
	case limit < 0 || limit > max:
		return 0, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, max)
	default:
		return limit, nil
	}
}

func unavailableError(kind string, failed []string) error {
	return fmt.Errorf("%w: every %s source failed (%s)", ErrDependencyUnavailable, kind, strings.Join(failed, ","))
}
