package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/football-dashboard/internal/domain/player"
	"github.com/riskibarqy/football-dashboard/internal/platform/logging"
)

const (
	defaultPlayerLimit    = 500
	maxPlayerLimit        = 5000
	popularPlayerLimit    = 50
	noPlayersFoundMessage = "No players found"
)

type PlayerServiceConfig struct {
	LeagueIDs      []int64
	Season         int
	PageDelay      time.Duration
	PopularTeamIDs []int64
	PopularDelay   time.Duration
}

type PlayerSearchInput struct {
	Search      string
	Position    string
	Nationality string
	Limit       int
}

type PlayerSearchResult struct {
	Players       []player.Player
	Total         int
	Positions     []string
	Nationalities []string
	Teams         []string
	Skipped       int
	Status        ResultStatus
	FailedSources []string
}

type PopularPlayers struct {
	Players       []player.SquadMember
	Count         int
	Status        ResultStatus
	FailedSources []string
}

type PlayerService struct {
	players    PlayerProvider
	squads     TeamProvider
	aggregator *Aggregator
	logger     *logging.Logger
	cfg        PlayerServiceConfig
}

func NewPlayerService(players PlayerProvider, squads TeamProvider, aggregator *Aggregator, logger *logging.Logger, cfg PlayerServiceConfig) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerService{
		players:    players,
		squads:     squads,
		aggregator: aggregator,
		logger:     logger,
		cfg:        cfg,
	}
}

// SearchPlayers pages through the configured leagues until limit raw players are held,
// then dedups, filters, sorts by name and truncates.
func (s *PlayerService) SearchPlayers(ctx context.Context, input PlayerSearchInput) (PlayerSearchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.SearchPlayers")
	defer span.End()

	limit, err := limitParam(input.Limit, defaultPlayerLimit, maxPlayerLimit)
	if err != nil {
		return PlayerSearchResult{}, err
	}
	if len(s.cfg.LeagueIDs) == 0 {
		return PlayerSearchResult{}, fmt.Errorf("%w: %s", ErrNotFound, noPlayersFoundMessage)
	}

	if err := s.players.ProbeLeague(ctx, s.cfg.LeagueIDs[0], s.cfg.Season); err != nil {
		s.logger.WarnContext(ctx, "player provider probe failed", "league_id", s.cfg.LeagueIDs[0], "season", s.cfg.Season, "error", err)
		return PlayerSearchResult{}, fmt.Errorf("%w: player provider unreachable: %v", ErrDependencyUnavailable, err)
	}

	var (
		raw       []player.Player
		failed    []string
		attempted int
	)
	for _, leagueID := range s.cfg.LeagueIDs {
		if attempted > 0 && len(raw) >= limit {
			break
		}
		attempted++

		players, err := s.aggregator.PlayersByLeague(ctx, s.players, leagueID, s.cfg.Season, s.cfg.PageDelay)
		raw = append(raw, players...)
		if err != nil {
			if ctx.Err() != nil {
				return PlayerSearchResult{}, ctx.Err()
			}
			s.logger.WarnContext(ctx, "league players incomplete", "league_id", leagueID, "collected", len(players), "error", err)
			failed = append(failed, strconv.FormatInt(leagueID, 10))
		}
	}

	status := statusFor(attempted, len(failed))
	if len(raw) == 0 {
		if status == ResultUnavailable {
			return PlayerSearchResult{}, unavailableError("player league", failed)
		}
		return PlayerSearchResult{}, fmt.Errorf("%w: %s", ErrNotFound, noPlayersFoundMessage)
	}
	if status == ResultUnavailable {
		status = ResultPartial
	}

	unique, skipped := dedupPlayers(raw)
	if skipped > 0 {
		s.logger.InfoContext(ctx, "skipped player entries without id", "count", skipped)
	}

	filtered := make([]player.Player, 0, len(unique))
	for _, item := range unique {
		if item.MatchesSearch(input.Search) && item.MatchesPosition(input.Position) && item.MatchesNationality(input.Nationality) {
			filtered = append(filtered, item)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return strings.ToLower(filtered[i].Name) < strings.ToLower(filtered[j].Name)
	})

	if failed == nil {
		failed = []string{}
	}
	return PlayerSearchResult{
		Players:       truncate(filtered, limit),
		Total:         len(filtered),
		Positions:     sortedUniqueValues(unique, func(p player.Player) string { return p.Position }),
		Nationalities: sortedUniqueValues(unique, func(p player.Player) string { return p.Nationality }),
		Teams:         sortedUniqueValues(unique, player.Player.TeamName),
		Skipped:       skipped,
		Status:        status,
		FailedSources: failed,
	}, nil
}

// PopularPlayers aggregates the squads of the configured clubs. A search term keeps
// the first fifty matches by name, nationality or team.
func (s *PlayerService) PopularPlayers(ctx context.Context, search string) (PopularPlayers, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.PopularPlayers")
	defer span.End()

	result, err := s.aggregator.PlayersAcrossTeams(ctx, s.squads, s.cfg.PopularTeamIDs, s.cfg.PopularDelay)
	if err != nil {
		return PopularPlayers{}, fmt.Errorf("aggregate squads: %w", err)
	}
	if result.Unavailable() {
		return PopularPlayers{}, unavailableError("squad", result.FailedSources)
	}

	items := result.Items
	if strings.TrimSpace(search) != "" {
		filtered := make([]player.SquadMember, 0)
		for _, item := range items {
			if item.MatchesSearch(search) {
				filtered = append(filtered, item)
			}
		}
		items = truncate(filtered, popularPlayerLimit)
	}

	return PopularPlayers{
		Players:       items,
		Count:         len(items),
		Status:        result.Status,
		FailedSources: result.FailedSourceList(),
	}, nil
}

// dedupPlayers drops entries without a provider id and keeps the first of each id.
func dedupPlayers(raw []player.Player) ([]player.Player, int) {
	out := make([]player.Player, 0, len(raw))
	seen := make(map[int64]struct{}, len(raw))
	skipped := 0
	for _, item := range raw {
		if item.ID <= 0 {
			skipped++
			continue
		}
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		out = append(out, item)
	}
	return out, skipped
}
