package competition

import "strings"

// PlanTierOne is the football-data plan that the free tier can query.
const PlanTierOne = "TIER_ONE"

// Area is a country or continent a competition belongs to.
type Area struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Code         string `json:"code,omitempty"`
	CountryCode  string `json:"countryCode,omitempty"`
	Flag         string `json:"flag,omitempty"`
	ParentAreaID *int64 `json:"parentAreaId,omitempty"`
	ParentArea   string `json:"parentArea,omitempty"`
}

// TeamSummary is the short club shape embedded in matches, tables and seasons.
type TeamSummary struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName,omitempty"`
	TLA       string `json:"tla,omitempty"`
	Crest     string `json:"crest,omitempty"`
}

type Season struct {
	ID              int64        `json:"id"`
	StartDate       string       `json:"startDate"`
	EndDate         string       `json:"endDate"`
	CurrentMatchday *int         `json:"currentMatchday"`
	Winner          *TeamSummary `json:"winner"`
}

// Competition is a league or cup as published by football-data.org.
type Competition struct {
	ID                       int64    `json:"id"`
	Name                     string   `json:"name"`
	Code                     string   `json:"code"`
	Type                     string   `json:"type"`
	Emblem                   string   `json:"emblem"`
	Plan                     string   `json:"plan,omitempty"`
	Area                     *Area    `json:"area,omitempty"`
	CurrentSeason            *Season  `json:"currentSeason,omitempty"`
	Seasons                  []Season `json:"seasons,omitempty"`
	NumberOfAvailableSeasons int      `json:"numberOfAvailableSeasons,omitempty"`
	LastUpdated              string   `json:"lastUpdated,omitempty"`
}

// Ref tags an aggregated entity with the competition it was collected from.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Person is a football-data player or coach record.
type Person struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Nationality string `json:"nationality,omitempty"`
	Position    string `json:"position,omitempty"`
	Section     string `json:"section,omitempty"`
	ShirtNumber *int   `json:"shirtNumber,omitempty"`
}

type Scorer struct {
	Player        Person      `json:"player"`
	Team          TeamSummary `json:"team"`
	PlayedMatches int         `json:"playedMatches"`
	Goals         int         `json:"goals"`
	Assists       *int        `json:"assists"`
	Penalties     *int        `json:"penalties"`
}

// Names resolves competition codes to display names.
type Names map[string]string

// Name returns the display name of code, or the code itself when unknown.
func (n Names) Name(code string) string {
	if name, ok := n[strings.ToUpper(strings.TrimSpace(code))]; ok && name != "" {
		return name
	}
	return code
}

func (n Names) Ref(code string) Ref {
	return Ref{ID: code, Name: n.Name(code)}
}
