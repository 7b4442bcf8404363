package player

import (
	"strings"

	"github.com/riskibarqy/football-dashboard/internal/domain/competition"
)

const (
	StatusActive  = "Active"
	StatusInjured = "Injured"

	UnknownName     = "Unknown Player"
	UnknownPosition = "Unknown"
)

// TeamTag is the club a player is listed under.
type TeamTag struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	ShortName string            `json:"shortName,omitempty"`
	Crest     string            `json:"crest,omitempty"`
	Area      *competition.Area `json:"area,omitempty"`
}

// Player is the API-Football player view. ID is zero when the provider omitted it.
type Player struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Position    string   `json:"position"`
	DateOfBirth string   `json:"dateOfBirth,omitempty"`
	Nationality string   `json:"nationality,omitempty"`
	Team        *TeamTag `json:"team"`
	Photo       string   `json:"photo,omitempty"`
	Status      string   `json:"status"`
	Age         *int     `json:"age,omitempty"`
	Height      string   `json:"height,omitempty"`
	Weight      string   `json:"weight,omitempty"`
}

func (p Player) TeamName() string {
	if p.Team == nil {
		return ""
	}
	return p.Team.Name
}

// MatchesSearch looks for term in the name, nationality and team name.
func (p Player) MatchesSearch(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Nationality), term) ||
		strings.Contains(strings.ToLower(p.TeamName()), term)
}

// MatchesPosition maps the dashboard position filter onto API-Football position labels.
// "forward" selects attackers; an empty filter or "all" matches everything.
func (p Player) MatchesPosition(filter string) bool {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" || filter == "all" {
		return true
	}
	if p.Position == "" {
		return false
	}

	pos := strings.ToLower(p.Position)
	switch filter {
	case "forward":
		return strings.Contains(pos, "attacker")
	default:
		return strings.Contains(pos, filter)
	}
}

// MatchesNationality is an exact match; an empty filter or "all" matches everything.
func (p Player) MatchesNationality(filter string) bool {
	filter = strings.TrimSpace(filter)
	if filter == "" || filter == "all" {
		return true
	}
	return p.Nationality == filter
}

// SquadMember is a football-data squad entry tagged with its club.
type SquadMember struct {
	competition.Person
	Team TeamTag `json:"team"`
}

// DedupKey identifies the same person listed under several clubs.
func (m SquadMember) DedupKey() string {
	return strings.ToLower(m.Name) + "|" + m.DateOfBirth
}

func (m SquadMember) MatchesSearch(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(m.Name), term) ||
		strings.Contains(strings.ToLower(m.Nationality), term) ||
		strings.Contains(strings.ToLower(m.Team.Name), term)
}
