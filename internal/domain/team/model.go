package team

import (
	"strings"

	"github.com/riskibarqy/football-dashboard/internal/domain/competition"
)

// Team is a football-data club with its squad when requested by id.
type Team struct {
	ID                  int64                     `json:"id"`
	Name                string                    `json:"name"`
	ShortName           string                    `json:"shortName"`
	TLA                 string                    `json:"tla"`
	Crest               string                    `json:"crest"`
	Address             string                    `json:"address,omitempty"`
	Website             string                    `json:"website,omitempty"`
	Founded             *int                      `json:"founded,omitempty"`
	ClubColors          string                    `json:"clubColors,omitempty"`
	Venue               string                    `json:"venue,omitempty"`
	Area                *competition.Area         `json:"area,omitempty"`
	RunningCompetitions []competition.Competition `json:"runningCompetitions,omitempty"`
	Coach               *competition.Person       `json:"coach,omitempty"`
	Squad               []competition.Person      `json:"squad,omitempty"`
	LastUpdated         string                    `json:"lastUpdated,omitempty"`
	PrimaryCompetition  *competition.Ref          `json:"primaryCompetition,omitempty"`
}

// MatchesSearch reports whether term occurs in the name, short name or TLA, ignoring case.
func (t Team) MatchesSearch(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Name), term) ||
		strings.Contains(strings.ToLower(t.ShortName), term) ||
		strings.Contains(strings.ToLower(t.TLA), term)
}

func (t Team) AreaName() string {
	if t.Area == nil {
		return ""
	}
	return t.Area.Name
}

func (t Team) PrimaryCompetitionName() string {
	if t.PrimaryCompetition == nil {
		return ""
	}
	return t.PrimaryCompetition.Name
}
