package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/football-dashboard/internal/domain/fixture"
)

func newFixtureService(provider *fakeFixtureProvider, leagues ...int64) *FixtureService {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 19, 9, 0, 0, 0, time.UTC))
	return NewFixtureService(provider, NewAggregator(clock, nil, nil), FixtureServiceConfig{
		LeagueIDs: leagues,
		Season:    2023,
	})
}

func TestFixtureService_ListFixtures_Modes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input fixture.Query
		want  fixture.Query
	}{
		{name: "live all", input: fixture.Query{Live: "all", League: "39"}, want: fixture.Query{Live: "all"}},
		{name: "live leagues", input: fixture.Query{Live: "39-140"}, want: fixture.Query{Live: "39-140"}},
		{name: "date", input: fixture.Query{Date: "2024-05-01", League: "39", Status: "ft"}, want: fixture.Query{Date: "2024-05-01", League: "39", Status: "FT"}},
		{name: "next", input: fixture.Query{Next: "5", Team: "33", Status: "NS"}, want: fixture.Query{Next: "5", Team: "33"}},
		{name: "last", input: fixture.Query{Last: "3", League: "78"}, want: fixture.Query{Last: "3", League: "78"}},
		{name: "today for one league", input: fixture.Query{League: "39"}, want: fixture.Query{Date: "2024-05-19", League: "39", Season: "2023"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			provider := &fakeFixtureProvider{}
			service := newFixtureService(provider, 39, 140)

			got, err := service.ListFixtures(context.Background(), tc.input)
			if err != nil {
				t.Fatalf("list fixtures: %v", err)
			}
			if len(provider.queries) != 1 || provider.queries[0] != tc.want {
				t.Fatalf("unexpected provider queries: %+v", provider.queries)
			}
			if got.Message != noFixturesMessage || got.Fixtures == nil {
				t.Fatalf("expected empty result with message, got %+v", got)
			}
		})
	}
}

func TestFixtureService_ListFixtures_AcrossLeagues(t *testing.T) {
	t.Parallel()

	provider := &fakeFixtureProvider{
		byLeague: map[string][]fixture.Fixture{
			"39": {
				{ID: 2, Timestamp: 300, League: fixture.League{Name: "Premier League"}},
				{ID: 1, Timestamp: 100, League: fixture.League{Name: "Premier League"}},
			},
			"78": {
				{ID: 3, Timestamp: 200, League: fixture.League{Name: "Bundesliga"}},
			},
		},
		failing: map[string]bool{"140": true},
	}
	service := NewFixtureService(provider, NewAggregator(clockwork.NewFakeClock(), nil, nil), FixtureServiceConfig{
		LeagueIDs: []int64{39, 140, 78},
		Season:    2023,
	})

	got, err := service.ListFixtures(context.Background(), fixture.Query{})
	if err != nil {
		t.Fatalf("list fixtures: %v", err)
	}
	if len(provider.queries) != 3 {
		t.Fatalf("expected one call per league, got %+v", provider.queries)
	}
	if got.Total != 3 || got.Fixtures[0].ID != 1 || got.Fixtures[1].ID != 3 || got.Fixtures[2].ID != 2 {
		t.Fatalf("expected fixtures sorted by timestamp, got %+v", got.Fixtures)
	}
	if got.Fixtures[0].Venue.Name != fixture.DefaultVenueName || got.Fixtures[0].Status.Short != fixture.DefaultStatusShort {
		t.Fatalf("expected defaults to be applied, got %+v", got.Fixtures[0])
	}
	if len(got.Leagues) != 2 || got.Leagues[0] != "Bundesliga" {
		t.Fatalf("unexpected leagues facet: %v", got.Leagues)
	}
	if got.Status != ResultPartial || got.FailedSources[0] != "140" {
		t.Fatalf("expected partial status, got %s %v", got.Status, got.FailedSources)
	}
}

func TestFixtureService_ListFixtures_AllLeaguesFailed(t *testing.T) {
	t.Parallel()

	provider := &fakeFixtureProvider{failing: map[string]bool{"39": true}}
	service := newFixtureService(provider, 39)

	if _, err := service.ListFixtures(context.Background(), fixture.Query{}); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestFixtureService_ListFixtures_InvalidInput(t *testing.T) {
	t.Parallel()

	service := newFixtureService(&fakeFixtureProvider{}, 39)
	for name, input := range map[string]fixture.Query{
		"bad date":   {Date: "someday"},
		"bad league": {League: "premier"},
		"bad next":   {Next: "-1"},
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := service.ListFixtures(context.Background(), input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}
