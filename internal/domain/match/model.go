package match

import (
	"strings"

	"github.com/riskibarqy/football-dashboard/internal/domain/competition"
)

// Status is the football-data match lifecycle state.
type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusTimed     Status = "TIMED"
	StatusInPlay    Status = "IN_PLAY"
	StatusPaused    Status = "PAUSED"
	StatusFinished  Status = "FINISHED"
	StatusPostponed Status = "POSTPONED"
	StatusSuspended Status = "SUSPENDED"
	StatusCancelled Status = "CANCELLED"
	StatusLive      Status = "LIVE"
)

var allStatuses = map[Status]struct{}{
	StatusScheduled: {},
	StatusTimed:     {},
	StatusInPlay:    {},
	StatusPaused:    {},
	StatusFinished:  {},
	StatusPostponed: {},
	StatusSuspended: {},
	StatusCancelled: {},
	StatusLive:      {},
}

func NormalizeStatus(value string) Status {
	return Status(strings.ToUpper(strings.TrimSpace(value)))
}

func (s Status) Valid() bool {
	_, ok := allStatuses[s]
	return ok
}

type ScoreDetail struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type Score struct {
	Winner    *string      `json:"winner"`
	Duration  string       `json:"duration"`
	FullTime  ScoreDetail  `json:"fullTime"`
	HalfTime  ScoreDetail  `json:"halfTime"`
	ExtraTime *ScoreDetail `json:"extraTime,omitempty"`
	Penalties *ScoreDetail `json:"penalties,omitempty"`
}

type Referee struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Nationality string `json:"nationality"`
}

// Match is one football-data fixture with its score.
type Match struct {
	ID          int64                    `json:"id"`
	UTCDate     string                   `json:"utcDate"`
	Status      Status                   `json:"status"`
	Matchday    *int                     `json:"matchday"`
	Stage       string                   `json:"stage"`
	Group       *string                  `json:"group"`
	LastUpdated string                   `json:"lastUpdated"`
	HomeTeam    competition.TeamSummary  `json:"homeTeam"`
	AwayTeam    competition.TeamSummary  `json:"awayTeam"`
	Score       Score                    `json:"score"`
	Competition *competition.Competition `json:"competition,omitempty"`
	Area        *competition.Area        `json:"area,omitempty"`
	Season      *competition.Season      `json:"season,omitempty"`
	Referees    []Referee                `json:"referees"`
}

// DateRange is a from/to window after the date-range policy has been applied.
type DateRange struct {
	From         string `json:"fromDate"`
	To           string `json:"toDate"`
	Adjusted     bool   `json:"adjusted"`
	OriginalDays int    `json:"originalDays"`
	Warning      string `json:"warning,omitempty"`
}

// Query filters the football-data match list.
type Query struct {
	DateFrom     string
	DateTo       string
	Status       string
	Competitions string
	Stage        string
	Matchday     string
	Group        string
	Season       string
	Venue        string
	Limit        int
}
