package standing

import "github.com/riskibarqy/football-dashboard/internal/domain/competition"

type GoalTotals struct {
	For     int `json:"for"`
	Against int `json:"against"`
}

type Record struct {
	Played int        `json:"played"`
	Win    int        `json:"win"`
	Draw   int        `json:"draw"`
	Lose   int        `json:"lose"`
	Goals  GoalTotals `json:"goals"`
}

type TeamTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

// Row is one API-Football league table position.
type Row struct {
	Rank        int     `json:"rank"`
	Team        TeamTag `json:"team"`
	Points      int     `json:"points"`
	GoalsDiff   int     `json:"goalsDiff"`
	Group       string  `json:"group"`
	Form        string  `json:"form"`
	Status      string  `json:"status"`
	Description *string `json:"description"`
	All         Record  `json:"all"`
	Home        Record  `json:"home"`
	Away        Record  `json:"away"`
	Update      string  `json:"update"`
}

// TableEntry is one football-data table position.
type TableEntry struct {
	Position       int                     `json:"position"`
	Team           competition.TeamSummary `json:"team"`
	PlayedGames    int                     `json:"playedGames"`
	Form           *string                 `json:"form"`
	Won            int                     `json:"won"`
	Draw           int                     `json:"draw"`
	Lost           int                     `json:"lost"`
	Points         int                     `json:"points"`
	GoalsFor       int                     `json:"goalsFor"`
	GoalsAgainst   int                     `json:"goalsAgainst"`
	GoalDifference int                     `json:"goalDifference"`
}

type Group struct {
	Stage string       `json:"stage"`
	Type  string       `json:"type"`
	Group *string      `json:"group"`
	Table []TableEntry `json:"table"`
}

// Table is the football-data competition standings payload.
type Table struct {
	Filters     map[string]any           `json:"filters,omitempty"`
	Area        *competition.Area        `json:"area,omitempty"`
	Competition *competition.Competition `json:"competition,omitempty"`
	Season      *competition.Season      `json:"season,omitempty"`
	Standings   []Group                  `json:"standings"`
}

// Query filters competition standings.
type Query struct {
	Matchday string
	Season   string
	Date     string
}
