package usecase

import (
	"context"
	"strconv"
	"sync"

	"github.com/riskibarqy/football-dashboard/internal/domain/competition"
	"github.com/riskibarqy/football-dashboard/internal/domain/fixture"
	"github.com/riskibarqy/football-dashboard/internal/domain/match"
	"github.com/riskibarqy/football-dashboard/internal/domain/standing"
	"github.com/riskibarqy/football-dashboard/internal/domain/team"
	"github.com/riskibarqy/football-dashboard/internal/domain/transfer"
	"github.com/riskibarqy/football-dashboard/internal/domain/user"
	"github.com/riskibarqy/football-dashboard/internal/platform/cache"
)

func (f *fakeTeamSource) ListTeamMatches(_ context.Context, id int64, query match.Query) ([]match.Match, error) {
	f.calls.Add(1)
	return []match.Match{{ID: id}}, nil
}

type fakeMatchProvider struct {
	got   match.Query
	items []match.Match
	err   error
}

func (f *fakeMatchProvider) ListMatches(_ context.Context, query match.Query) ([]match.Match, error) {
	f.got = query
	return f.items, f.err
}

type fakePlayerProvider struct {
	probeErr error
	leagues  map[int64]*fakePlayerPager
	probed   []int64
	order    []int64
}

func (f *fakePlayerProvider) ProbeLeague(_ context.Context, leagueID int64, _ int) error {
	f.probed = append(f.probed, leagueID)
	return f.probeErr
}

func (f *fakePlayerProvider) ListPlayersPage(ctx context.Context, leagueID int64, season, page int) (PlayerPage, error) {
	if page == 1 {
		f.order = append(f.order, leagueID)
	}
	pager, ok := f.leagues[leagueID]
	if !ok {
		return PlayerPage{}, nil
	}
	return pager.ListPlayersPage(ctx, leagueID, season, page)
}

type fakeFixtureProvider struct {
	mu       sync.Mutex
	queries  []fixture.Query
	byLeague map[string][]fixture.Fixture
	failing  map[string]bool
	items    []fixture.Fixture
}

func (f *fakeFixtureProvider) ListFixtures(_ context.Context, query fixture.Query) ([]fixture.Fixture, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	if f.failing[query.League] {
		return nil, &UpstreamError{Provider: "api-football", StatusCode: 500}
	}
	if f.byLeague != nil {
		return f.byLeague[query.League], nil
	}
	return f.items, nil
}

type fakeTransferProvider struct {
	queries []transfer.Query
	byTeam  map[string][]transfer.Item
	failing map[string]bool
}

func (f *fakeTransferProvider) ListTransfers(_ context.Context, query transfer.Query) ([]transfer.Item, error) {
	f.queries = append(f.queries, query)
	if f.failing[query.Team] {
		return nil, &UpstreamError{Provider: "api-football", StatusCode: 502}
	}
	if query.Player != "" {
		return f.byTeam["player:"+query.Player], nil
	}
	return f.byTeam[query.Team], nil
}

type fakeCatalogProvider struct {
	mu        sync.Mutex
	calls     []string
	refreshed int
	failTeams map[string]bool
}

func (f *fakeCatalogProvider) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeCatalogProvider) noteRefresh(ctx context.Context) {
	if !cache.IsRefresh(ctx) {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshed++
}

func (f *fakeCatalogProvider) ListCompetitions(ctx context.Context, plan, areas string) ([]competition.Competition, error) {
	f.noteRefresh(ctx)
	f.record("competitions:" + plan + ":" + areas)
	return []competition.Competition{{ID: 2021, Code: "PL", Name: "Premier League"}}, nil
}

func (f *fakeCatalogProvider) GetCompetition(_ context.Context, id string) (competition.Competition, error) {
	f.record("competition:" + id)
	return competition.Competition{Code: id}, nil
}

func (f *fakeCatalogProvider) GetCompetitionStandings(_ context.Context, id string, query standing.Query) (standing.Table, error) {
	f.record("standings:" + id + ":" + query.Matchday + ":" + query.Season + ":" + query.Date)
	return standing.Table{}, nil
}

func (f *fakeCatalogProvider) ListCompetitionScorers(_ context.Context, id string, limit int, season string) ([]competition.Scorer, error) {
	f.record("scorers:" + id + ":" + strconv.Itoa(limit) + ":" + season)
	return []competition.Scorer{}, nil
}

func (f *fakeCatalogProvider) ListCompetitionTeams(ctx context.Context, id, season string) ([]team.Team, error) {
	f.noteRefresh(ctx)
	f.record("teams:" + id)
	if f.failTeams[id] {
		return nil, ErrDependencyUnavailable
	}
	return []team.Team{{ID: 1}}, nil
}

func (f *fakeCatalogProvider) ListCompetitionMatches(_ context.Context, id string, query match.Query) ([]match.Match, error) {
	f.record("matches:" + id + ":" + query.DateFrom + ":" + query.Status)
	return []match.Match{}, nil
}

func (f *fakeCatalogProvider) ListAreas(ctx context.Context) ([]competition.Area, error) {
	f.noteRefresh(ctx)
	f.record("areas")
	return nil, nil
}

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Matches(hash, password string) (bool, error) {
	return hash == "hashed:"+password, nil
}

type fakeTokenIssuer struct {
	issued []user.Principal
}

func (f *fakeTokenIssuer) IssueAccessToken(_ context.Context, principal user.Principal) (AccessToken, error) {
	f.issued = append(f.issued, principal)
	return AccessToken{Token: "token-" + principal.UserID}, nil
}
