package usecase

import (
	"context"

	"github.com/riskibarqy/football-dashboard/internal/domain/competition"
	"github.com/riskibarqy/football-dashboard/internal/domain/fixture"
	"github.com/riskibarqy/football-dashboard/internal/domain/highlight"
	"github.com/riskibarqy/football-dashboard/internal/domain/match"
	"github.com/riskibarqy/football-dashboard/internal/domain/player"
	"github.com/riskibarqy/football-dashboard/internal/domain/standing"
	"github.com/riskibarqy/football-dashboard/internal/domain/team"
	"github.com/riskibarqy/football-dashboard/internal/domain/transfer"
)

// CompetitionProvider is the football-data competitions surface.
type CompetitionProvider interface {
	ListCompetitions(ctx context.Context, plan, areas string) ([]competition.Competition, error)
	GetCompetition(ctx context.Context, id string) (competition.Competition, error)
	GetCompetitionStandings(ctx context.Context, id string, query standing.Query) (standing.Table, error)
	ListCompetitionScorers(ctx context.Context, id string, limit int, season string) ([]competition.Scorer, error)
	ListCompetitionTeams(ctx context.Context, id, season string) ([]team.Team, error)
	ListCompetitionMatches(ctx context.Context, id string, query match.Query) ([]match.Match, error)
}

type MatchProvider interface {
	ListMatches(ctx context.Context, query match.Query) ([]match.Match, error)
}

type TeamProvider interface {
	ListCompetitionTeams(ctx context.Context, id, season string) ([]team.Team, error)
	GetTeam(ctx context.Context, id int64) (team.Team, error)
	ListTeamMatches(ctx context.Context, id int64, query match.Query) ([]match.Match, error)
}

type AreaProvider interface {
	ListAreas(ctx context.Context) ([]competition.Area, error)
}

// PlayerPage is one page of API-Football players. Current and Total come from the
// provider paging block.
type PlayerPage struct {
	Players []player.Player
	Current int
	Total   int
}

type PlayerProvider interface {
	ProbeLeague(ctx context.Context, leagueID int64, season int) error
	ListPlayersPage(ctx context.Context, leagueID int64, season, page int) (PlayerPage, error)
}

type FixtureProvider interface {
	ListFixtures(ctx context.Context, query fixture.Query) ([]fixture.Fixture, error)
}

type StandingProvider interface {
	ListStandings(ctx context.Context, league, season string) ([]standing.Row, error)
}

type TransferProvider interface {
	ListTransfers(ctx context.Context, query transfer.Query) ([]transfer.Item, error)
}

type HighlightProvider interface {
	ListHighlights(ctx context.Context) ([]highlight.Video, error)
}
