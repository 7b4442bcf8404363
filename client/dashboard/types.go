package dashboard

import (
	"net/url"
	"time"

	"github.com/riskibarqy/football-dashboard/internal/domain/fixture"
	"github.com/riskibarqy/football-dashboard/internal/domain/match"
	"github.com/riskibarqy/football-dashboard/internal/domain/player"
	"github.com/riskibarqy/football-dashboard/internal/domain/standing"
	"github.com/riskibarqy/football-dashboard/internal/domain/team"
	"github.com/riskibarqy/football-dashboard/internal/domain/transfer"
	"github.com/riskibarqy/football-dashboard/internal/domain/user"
)

type MatchQuery struct {
	DateFrom      string
	DateTo        string
	Status        string
	CompetitionID string
}

func (q MatchQuery) values() url.Values {
	values := url.Values{}
	setIfNotEmpty(values, "dateFrom", q.DateFrom)
	setIfNotEmpty(values, "dateTo", q.DateTo)
	setIfNotEmpty(values, "status", q.Status)
	setIfNotEmpty(values, "competitionId", q.CompetitionID)
	return values
}

type StandingsQuery struct {
	League string
	Season string
}

func (q StandingsQuery) values() url.Values {
	values := url.Values{}
	setIfNotEmpty(values, "league", q.League)
	setIfNotEmpty(values, "season", q.Season)
	return values
}

type TeamQuery struct {
	Search      string
	Competition string
	Limit       int
}

func (q TeamQuery) values() url.Values {
	values := url.Values{}
	setIfNotEmpty(values, "search", q.Search)
	setIfNotEmpty(values, "competition", q.Competition)
	setIfPositive(values, "limit", q.Limit)
	return values
}

type PlayerQuery struct {
	Search      string
	Position    string
	Nationality string
	Limit       int
}

func (q PlayerQuery) values() url.Values {
	values := url.Values{}
	setIfNotEmpty(values, "search", q.Search)
	setIfNotEmpty(values, "position", q.Position)
	setIfNotEmpty(values, "nationality", q.Nationality)
	setIfPositive(values, "limit", q.Limit)
	return values
}

type FixtureQuery struct {
	Live   string
	Date   string
	League string
	Team   string
	Next   string
	Last   string
	Status string
	Season string
}

func (q FixtureQuery) values() url.Values {
	values := url.Values{}
	setIfNotEmpty(values, "live", q.Live)
	setIfNotEmpty(values, "date", q.Date)
	setIfNotEmpty(values, "league", q.League)
	setIfNotEmpty(values, "team", q.Team)
	setIfNotEmpty(values, "next", q.Next)
	setIfNotEmpty(values, "last", q.Last)
	setIfNotEmpty(values, "status", q.Status)
	setIfNotEmpty(values, "season", q.Season)
	return values
}

type TransferQuery struct {
	Team   string
	Player string
}

func (q TransferQuery) values() url.Values {
	values := url.Values{}
	setIfNotEmpty(values, "team", q.Team)
	setIfNotEmpty(values, "player", q.Player)
	return values
}

type MatchesMeta struct {
	Params    map[string]string `json:"params"`
	Count     int               `json:"count"`
	DateRange *match.DateRange  `json:"dateRange,omitempty"`
}

type Matches struct {
	Matches []match.Match `json:"matches"`
	Meta    MatchesMeta   `json:"meta"`
}

type Standings struct {
	Standings []standing.Row `json:"standings"`
	Total     int            `json:"total"`
	League    struct {
		ID     string `json:"id"`
		Season string `json:"season"`
	} `json:"league"`
}

// Aggregate reports how complete a multi-source answer is.
type Aggregate struct {
	Status        string   `json:"status"`
	FailedSources []string `json:"failedSources"`
}

func (a Aggregate) Partial() bool {
	return a.Status == "partial"
}

type Teams struct {
	Aggregate
	Teams        []team.Team `json:"teams"`
	Total        int         `json:"total"`
	Competitions []string    `json:"competitions"`
	Countries    []string    `json:"countries"`
}

type Players struct {
	Aggregate
	Players       []player.Player `json:"players"`
	Total         int             `json:"total"`
	Positions     []string        `json:"positions"`
	Nationalities []string        `json:"nationalities"`
	Teams         []string        `json:"teams"`
	Skipped       int             `json:"skipped"`
}

type Fixtures struct {
	Aggregate
	Fixtures []fixture.Fixture `json:"fixtures"`
	Total    int               `json:"total"`
	Leagues  []string          `json:"leagues"`
	Message  string            `json:"message,omitempty"`
}

type Transfers struct {
	Aggregate
	Transfers []transfer.Item `json:"transfers"`
	Total     int             `json:"total"`
	Message   string          `json:"message,omitempty"`
}

type Session struct {
	Token     string         `json:"token"`
	TokenType string         `json:"tokenType"`
	ExpiresAt time.Time      `json:"expiresAt"`
	User      user.Principal `json:"user"`
}
