package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/football-dashboard/internal/domain/competition"
	"github.com/riskibarqy/football-dashboard/internal/domain/player"
	"github.com/riskibarqy/football-dashboard/internal/domain/team"
)

type fakeTeamSource struct {
	byCode map[string][]team.Team
	byID   map[int64]team.Team
	fail   map[string]bool
	calls  atomic.Int32
}

func (f *fakeTeamSource) ListCompetitionTeams(_ context.Context, id, _ string) ([]team.Team, error) {
	f.calls.Add(1)
	if f.fail[id] {
		return nil, errors.New("upstream down")
	}
	return f.byCode[id], nil
}

func (f *fakeTeamSource) GetTeam(_ context.Context, id int64) (team.Team, error) {
	f.calls.Add(1)
	item, ok := f.byID[id]
	if !ok {
		return team.Team{}, ErrNotFound
	}
	return item, nil
}

func newTestAggregator() *Aggregator {
	return NewAggregator(clockwork.NewFakeClock(), nil, competition.Names{"PL": "Premier League", "CL": "Champions League"})
}

func TestTeamsAcrossCompetitions_DedupsAndTagsFirstCompetition(t *testing.T) {
	t.Parallel()

	src := &fakeTeamSource{byCode: map[string][]team.Team{
		"PL": {{ID: 57, Name: "Arsenal FC"}, {ID: 65, Name: "Manchester City FC"}},
		"CL": {{ID: 57, Name: "Arsenal FC"}, {ID: 86, Name: "Real Madrid CF"}},
	}}

	result, err := newTestAggregator().TeamsAcrossCompetitions(context.Background(), src, []string{"PL", "CL"}, 0)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if result.Status != ResultOK || len(result.FailedSources) != 0 {
		t.Fatalf("unexpected status %s failed=%v", result.Status, result.FailedSources)
	}
	if len(result.Items) != 3 || result.Total != 3 {
		t.Fatalf("expected 3 unique teams, got %d (total %d)", len(result.Items), result.Total)
	}
	if result.Items[0].PrimaryCompetition.ID != "PL" || result.Items[0].PrimaryCompetition.Name != "Premier League" {
		t.Fatalf("expected first occurrence tag, got %+v", result.Items[0].PrimaryCompetition)
	}
	if result.Items[2].PrimaryCompetitionName() != "Champions League" {
		t.Fatalf("unexpected tag for CL-only team: %+v", result.Items[2].PrimaryCompetition)
	}
}

func TestTeamsAcrossCompetitions_PartialAndUnavailable(t *testing.T) {
	t.Parallel()

	src := &fakeTeamSource{
		byCode: map[string][]team.Team{
			"PL": {{ID: 57, Name: "Arsenal FC"}},
			"SA": {{ID: 108, Name: "FC Internazionale Milano"}},
		},
		fail: map[string]bool{"BL1": true},
	}

	result, err := newTestAggregator().TeamsAcrossCompetitions(context.Background(), src, []string{"PL", "BL1", "SA"}, 0)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if result.Status != ResultPartial {
		t.Fatalf("expected partial, got %s", result.Status)
	}
	if len(result.FailedSources) != 1 || result.FailedSources[0] != "BL1" {
		t.Fatalf("unexpected failed sources %v", result.FailedSources)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected teams from healthy sources, got %d", len(result.Items))
	}
	if result.Items[0].PrimaryCompetition.Name != "Premier League" {
		t.Fatalf("unexpected name %q", result.Items[0].PrimaryCompetition.Name)
	}
	if result.Items[1].PrimaryCompetition.Name != "SA" {
		t.Fatalf("expected code fallback for unknown name, got %q", result.Items[1].PrimaryCompetition.Name)
	}

	allDown := &fakeTeamSource{fail: map[string]bool{"PL": true, "SA": true}}
	result, err = newTestAggregator().TeamsAcrossCompetitions(context.Background(), allDown, []string{"PL", "SA"}, 0)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if !result.Unavailable() || len(result.Items) != 0 {
		t.Fatalf("expected unavailable with no items, got %s (%d)", result.Status, len(result.Items))
	}
}

func TestAggregate_ZeroResultsFromHealthySourcesIsOK(t *testing.T) {
	t.Parallel()

	src := &fakeTeamSource{byCode: map[string][]team.Team{}}
	result, err := newTestAggregator().TeamsAcrossCompetitions(context.Background(), src, []string{"PL"}, 0)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if result.Status != ResultOK || result.Items == nil || len(result.Items) != 0 {
		t.Fatalf("expected ok with empty non-nil items, got %s %#v", result.Status, result.Items)
	}
	if got := result.FailedSourceList(); got == nil || len(got) != 0 {
		t.Fatalf("expected empty failed source list, got %#v", got)
	}
}

func TestAggregate_WaitsBetweenSources(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	agg := NewAggregator(clock, nil, nil)
	src := &fakeTeamSource{byCode: map[string][]team.Team{
		"PL": {{ID: 1}},
		"SA": {{ID: 2}},
	}}

	done := make(chan Result[team.Team], 1)
	go func() {
		result, _ := agg.TeamsAcrossCompetitions(context.Background(), src, []string{"PL", "SA"}, 200*time.Millisecond)
		done <- result
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := clock.BlockUntilContext(ctx, 1); err != nil {
		t.Fatalf("waiting for delay timer: %v", err)
	}
	if got := src.calls.Load(); got != 1 {
		t.Fatalf("expected second source to wait for the delay, got %d calls", got)
	}
	clock.Advance(200 * time.Millisecond)

	result := <-done
	if len(result.Items) != 2 || src.calls.Load() != 2 {
		t.Fatalf("expected both sources fetched, got %d items after %d calls", len(result.Items), src.calls.Load())
	}
}

func TestAggregate_CancelledContextStopsScan(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &fakeTeamSource{byCode: map[string][]team.Team{"PL": {{ID: 1}}, "SA": {{ID: 2}}}}
	_, err := newTestAggregator().TeamsAcrossCompetitions(ctx, src, []string{"PL", "SA"}, time.Second)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}

func TestPlayersAcrossTeams_DedupsByNameAndBirthDate(t *testing.T) {
	t.Parallel()

	src := &fakeTeamSource{byID: map[int64]team.Team{
		57: {ID: 57, Name: "Arsenal FC", Squad: []competition.Person{
			{ID: 1, Name: "Bukayo Saka", DateOfBirth: "2001-09-05"},
			{ID: 2, Name: "Declan Rice", DateOfBirth: "1999-01-14"},
		}},
		61: {ID: 61, Name: "Chelsea FC", Squad: []competition.Person{
			{ID: 3, Name: "bukayo saka", DateOfBirth: "2001-09-05"},
			{ID: 4, Name: "Declan Rice", DateOfBirth: "2000-01-01"},
		}},
	}}

	result, err := newTestAggregator().PlayersAcrossTeams(context.Background(), src, []int64{57, 61, 99}, 0)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(result.Items) != 3 {
		t.Fatalf("expected 3 unique players, got %d", len(result.Items))
	}
	if result.Items[0].Team.Name != "Arsenal FC" {
		t.Fatalf("expected team tag on squad member, got %+v", result.Items[0].Team)
	}
	if result.Status != ResultPartial || result.FailedSources[0] != "99" {
		t.Fatalf("expected missing team to be a failed source, got %s %v", result.Status, result.FailedSources)
	}
}

type fakePlayerPager struct {
	pages   map[int]PlayerPage
	failAt  int
	fetched []int
}

func (f *fakePlayerPager) ListPlayersPage(_ context.Context, _ int64, _ int, page int) (PlayerPage, error) {
	f.fetched = append(f.fetched, page)
	if page == f.failAt {
		return PlayerPage{}, errors.New("page failed")
	}
	return f.pages[page], nil
}

func TestPlayersByLeague_StopsWhenCurrentReachesTotal(t *testing.T) {
	t.Parallel()

	pager := &fakePlayerPager{pages: map[int]PlayerPage{
		1: {Players: []player.Player{{ID: 1}, {ID: 2}}, Current: 1, Total: 2},
		2: {Players: []player.Player{{ID: 3}}, Current: 2, Total: 2},
		3: {Players: []player.Player{{ID: 4}}, Current: 3, Total: 3},
	}}

	players, err := newTestAggregator().PlayersByLeague(context.Background(), pager, 39, 2023, 0)
	if err != nil {
		t.Fatalf("players by league: %v", err)
	}
	if len(players) != 3 {
		t.Fatalf("expected 3 players from two pages, got %d", len(players))
	}
	if len(pager.fetched) != 2 {
		t.Fatalf("expected pagination to stop at page 2, fetched %v", pager.fetched)
	}
}

func TestPlayersByLeague_StopsOnEmptyPage(t *testing.T) {
	t.Parallel()

	pager := &fakePlayerPager{pages: map[int]PlayerPage{
		1: {Players: []player.Player{{ID: 1}}, Current: 1, Total: 5},
		2: {Current: 2, Total: 5},
	}}

	players, err := newTestAggregator().PlayersByLeague(context.Background(), pager, 39, 2023, 0)
	if err != nil {
		t.Fatalf("players by league: %v", err)
	}
	if len(players) != 1 || len(pager.fetched) != 2 {
		t.Fatalf("expected stop after empty page 2, got %d players fetched %v", len(players), pager.fetched)
	}
}

func TestPlayersByLeague_ReturnsCollectedOnPageError(t *testing.T) {
	t.Parallel()

	pager := &fakePlayerPager{
		pages: map[int]PlayerPage{
			1: {Players: []player.Player{{ID: 1}}, Current: 1, Total: 3},
			2: {Players: []player.Player{{ID: 2}}, Current: 2, Total: 3},
		},
		failAt: 3,
	}

	players, err := newTestAggregator().PlayersByLeague(context.Background(), pager, 39, 2023, 0)
	if err == nil {
		t.Fatalf("expected page error")
	}
	if len(players) != 2 {
		t.Fatalf("expected players from pages 1-2, got %d", len(players))
	}
}

func TestPlayersByLeague_PausesAfterOddPages(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	agg := NewAggregator(clock, nil, nil)
	pager := &fakePlayerPager{pages: map[int]PlayerPage{
		1: {Players: []player.Player{{ID: 1}}, Current: 1, Total: 3},
		2: {Players: []player.Player{{ID: 2}}, Current: 2, Total: 3},
		3: {Players: []player.Player{{ID: 3}}, Current: 3, Total: 3},
	}}

	done := make(chan []player.Player, 1)
	go func() {
		players, _ := agg.PlayersByLeague(context.Background(), pager, 39, 2023, time.Second)
		done <- players
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := clock.BlockUntilContext(ctx, 1); err != nil {
		t.Fatalf("waiting for page delay: %v", err)
	}
	clock.Advance(time.Second)

	players := <-done
	if len(players) != 3 {
		t.Fatalf("expected 3 players, got %d", len(players))
	}
}
