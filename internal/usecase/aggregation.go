package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/football-dashboard/internal/domain/competition"
	"github.com/riskibarqy/football-dashboard/internal/domain/player"
	"github.com/riskibarqy/football-dashboard/internal/domain/team"
	"github.com/riskibarqy/football-dashboard/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// Aggregator scans upstream sources one after another with a fixed pause between
// calls. A failing source is logged and skipped; it never aborts the scan.
type Aggregator struct {
	clock  clockwork.Clock
	logger *logging.Logger
	names  competition.Names
}

func NewAggregator(clock clockwork.Clock, logger *logging.Logger, names competition.Names) *Aggregator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if names == nil {
		names = competition.Names{}
	}
	return &Aggregator{clock: clock, logger: logger, names: names}
}

func (a *Aggregator) Clock() clockwork.Clock {
	return a.clock
}

func (a *Aggregator) Names() competition.Names {
	return a.names
}

// Aggregate fetches every source in order, keeping the first item seen for each key.
// The only error it returns is the context error when the scan is cancelled.
func Aggregate[T any, K comparable](
	ctx context.Context,
	a *Aggregator,
	kind string,
	sources []string,
	delay time.Duration,
	fetch func(ctx context.Context, source string) ([]T, error),
	key func(T) K,
) (Result[T], error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.Aggregate."+kind, attribute.Int("aggregate.sources", len(sources)))
	defer span.End()

	items := make([]T, 0)
	seen := make(map[K]struct{})
	var failed []string

	for i, source := range sources {
		if i > 0 {
			if err := sleepContext(ctx, a.clock, delay); err != nil {
				return Result[T]{}, err
			}
		}

		batch, err := fetch(ctx, source)
		if err != nil {
			if ctx.Err() != nil {
				return Result[T]{}, ctx.Err()
			}
			a.logger.WarnContext(ctx, "aggregation source failed, skipping", "kind", kind, "source", source, "error", err)
			failed = append(failed, source)
			continue
		}

		for _, item := range batch {
			k := key(item)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			items = append(items, item)
		}
	}

	return Result[T]{
		Status:        statusFor(len(sources), len(failed)),
		Items:         items,
		FailedSources: failed,
		Total:         len(items),
	}, nil
}

type competitionTeamLister interface {
	ListCompetitionTeams(ctx context.Context, id, season string) ([]team.Team, error)
}

// TeamsAcrossCompetitions collects the teams of every competition code, tagging each
// team with the competition it was first found in.
func (a *Aggregator) TeamsAcrossCompetitions(ctx context.Context, provider competitionTeamLister, codes []string, delay time.Duration) (Result[team.Team], error) {
	return Aggregate(ctx, a, "teams", codes, delay,
		func(ctx context.Context, code string) ([]team.Team, error) {
			teams, err := provider.ListCompetitionTeams(ctx, code, "")
			if err != nil {
				return nil, err
			}
			ref := a.names.Ref(code)
			out := make([]team.Team, 0, len(teams))
			for _, item := range teams {
				tag := ref
				item.PrimaryCompetition = &tag
				out = append(out, item)
			}
			return out, nil
		},
		func(item team.Team) int64 { return item.ID },
	)
}

type teamGetter interface {
	GetTeam(ctx context.Context, id int64) (team.Team, error)
}

// PlayersAcrossTeams collects the squads of teamIDs. The same person listed by two
// clubs is kept once.
func (a *Aggregator) PlayersAcrossTeams(ctx context.Context, provider teamGetter, teamIDs []int64, delay time.Duration) (Result[player.SquadMember], error) {
	sources := make([]string, 0, len(teamIDs))
	for _, id := range teamIDs {
		sources = append(sources, strconv.FormatInt(id, 10))
	}

	return Aggregate(ctx, a, "squads", sources, delay,
		func(ctx context.Context, source string) ([]player.SquadMember, error) {
			id, err := strconv.ParseInt(source, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid team id %q", ErrInvalidInput, source)
			}
			detail, err := provider.GetTeam(ctx, id)
			if err != nil {
				return nil, err
			}
			tag := player.TeamTag{
				ID:        detail.ID,
				Name:      detail.Name,
				ShortName: detail.ShortName,
				Crest:     detail.Crest,
				Area:      detail.Area,
			}
			out := make([]player.SquadMember, 0, len(detail.Squad))
			for _, person := range detail.Squad {
				out = append(out, player.SquadMember{Person: person, Team: tag})
			}
			return out, nil
		},
		func(item player.SquadMember) string { return item.DedupKey() },
	)
}

type playerPager interface {
	ListPlayersPage(ctx context.Context, leagueID int64, season, page int) (PlayerPage, error)
}

// PlayersByLeague walks the provider pages of one league. It pauses for pageDelay after
// every odd page. On a page error it returns what was collected so far with the error.
func (a *Aggregator) PlayersByLeague(ctx context.Context, provider playerPager, leagueID int64, season int, pageDelay time.Duration) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.Aggregator.PlayersByLeague", attribute.Int64("league.id", leagueID))
	defer span.End()

	collected := make([]player.Player, 0)
	for page := 1; ; page++ {
		result, err := provider.ListPlayersPage(ctx, leagueID, season, page)
		if err != nil {
			return collected, fmt.Errorf("league %d page %d: %w", leagueID, page, err)
		}
		if len(result.Players) == 0 {
			return collected, nil
		}
		collected = append(collected, result.Players...)
		if result.Current >= result.Total {
			return collected, nil
		}

		if page%2 == 1 {
			if err := sleepContext(ctx, a.clock, pageDelay); err != nil {
				return collected, err
			}
		}
	}
}

func sleepContext(ctx context.Context, clock clockwork.Clock, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.Chan():
		return nil
	}
}
