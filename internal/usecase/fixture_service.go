package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/football-dashboard/internal/domain/fixture"
)

const noFixturesMessage = "No fixtures found for the specified criteria"

type FixtureServiceConfig struct {
	LeagueIDs []int64
	Season    int
	Delay     time.Duration
}

type FixtureListResult struct {
	Fixtures      []fixture.Fixture
	Total         int
	Leagues       []string
	Status        ResultStatus
	FailedSources []string
	Message       string
}

type FixtureService struct {
	provider   FixtureProvider
	aggregator *Aggregator
	clock      clockwork.Clock
	cfg        FixtureServiceConfig
}

func NewFixtureService(provider FixtureProvider, aggregator *Aggregator, cfg FixtureServiceConfig) *FixtureService {
	return &FixtureService{
		provider:   provider,
		aggregator: aggregator,
		clock:      aggregator.Clock(),
		cfg:        cfg,
	}
}

// ListFixtures picks one request mode in order: live, date, next, last. Without any of
// them it lists today's fixtures, across the configured leagues when no league or team
// is given.
func (s *FixtureService) ListFixtures(ctx context.Context, input fixture.Query) (FixtureListResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.ListFixtures")
	defer span.End()

	input, err := normalizeFixtureQuery(input)
	if err != nil {
		return FixtureListResult{}, err
	}

	var result Result[fixture.Fixture]
	switch {
	case input.Live == fixture.LiveAll || fixture.IsLiveLeagues(input.Live):
		result, err = s.single(ctx, fixture.Query{Live: input.Live})
	case input.Date != "":
		result, err = s.single(ctx, fixture.Query{Date: input.Date, League: input.League, Team: input.Team, Status: input.Status, Season: input.Season})
	case input.Next != "":
		result, err = s.single(ctx, fixture.Query{Next: input.Next, League: input.League, Team: input.Team})
	case input.Last != "":
		result, err = s.single(ctx, fixture.Query{Last: input.Last, League: input.League, Team: input.Team, Status: input.Status})
	default:
		today := FormatDate(s.clock.Now())
		season := input.Season
		if season == "" {
			season = strconv.Itoa(s.cfg.Season)
		}
		if input.League == "" && input.Team == "" {
			result, err = s.acrossLeagues(ctx, today, season)
		} else {
			result, err = s.single(ctx, fixture.Query{Date: today, League: input.League, Team: input.Team, Season: season})
		}
	}
	if err != nil {
		return FixtureListResult{}, err
	}
	if result.Unavailable() {
		return FixtureListResult{}, unavailableError("fixture league", result.FailedSources)
	}

	items := make([]fixture.Fixture, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, item.WithDefaults())
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Timestamp < items[j].Timestamp })

	out := FixtureListResult{
		Fixtures:      items,
		Total:         len(items),
		Leagues:       sortedUniqueValues(items, func(f fixture.Fixture) string { return f.League.Name }),
		Status:        result.Status,
		FailedSources: result.FailedSourceList(),
	}
	if len(items) == 0 {
		out.Message = noFixturesMessage
	}
	return out, nil
}

func (s *FixtureService) single(ctx context.Context, query fixture.Query) (Result[fixture.Fixture], error) {
	items, err := s.provider.ListFixtures(ctx, query)
	if err != nil {
		return Result[fixture.Fixture]{}, fmt.Errorf("list fixtures: %w", err)
	}
	if items == nil {
		items = []fixture.Fixture{}
	}
	return Result[fixture.Fixture]{Status: ResultOK, Items: items, Total: len(items)}, nil
}

func (s *FixtureService) acrossLeagues(ctx context.Context, date, season string) (Result[fixture.Fixture], error) {
	sources := make([]string, 0, len(s.cfg.LeagueIDs))
	for _, id := range s.cfg.LeagueIDs {
		sources = append(sources, strconv.FormatInt(id, 10))
	}

	result, err := Aggregate(ctx, s.aggregator, "fixtures", sources, s.cfg.Delay,
		func(ctx context.Context, league string) ([]fixture.Fixture, error) {
			return s.provider.ListFixtures(ctx, fixture.Query{Date: date, League: league, Season: season})
		},
		func(item fixture.Fixture) int64 { return item.ID },
	)
	if err != nil {
		return Result[fixture.Fixture]{}, fmt.Errorf("aggregate fixtures: %w", err)
	}
	return result, nil
}

func normalizeFixtureQuery(q fixture.Query) (fixture.Query, error) {
	var err error
	q.Live = strings.TrimSpace(q.Live)
	q.Status = strings.ToUpper(strings.TrimSpace(q.Status))
	if q.Date, err = dateParam("date", q.Date); err != nil {
		return fixture.Query{}, err
	}
	if q.League, err = positiveIntParam("league", q.League); err != nil {
		return fixture.Query{}, err
	}
	if q.Team, err = positiveIntParam("team", q.Team); err != nil {
		return fixture.Query{}, err
	}
	if q.Next, err = positiveIntParam("next", q.Next); err != nil {
		return fixture.Query{}, err
	}
	if q.Last, err = positiveIntParam("last", q.Last); err != nil {
		return fixture.Query{}, err
	}
	if q.Season, err = seasonParam(q.Season); err != nil {
		return fixture.Query{}, err
	}
	return q, nil
}
