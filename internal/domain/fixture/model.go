package fixture

import "strings"

const (
	DefaultVenueName   = "Unknown Venue"
	DefaultVenueCity   = "Unknown City"
	DefaultStatusLong  = "Unknown"
	DefaultStatusShort = "NS"

	LiveAll = "all"
)

type Periods struct {
	First  *int64 `json:"first"`
	Second *int64 `json:"second"`
}

type Venue struct {
	ID   *int64 `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

type Status struct {
	Long    string `json:"long"`
	Short   string `json:"short"`
	Elapsed *int   `json:"elapsed"`
	Extra   *int   `json:"extra"`
}

type League struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Logo    string `json:"logo"`
	Flag    string `json:"flag"`
	Season  int    `json:"season"`
	Round   string `json:"round"`
}

type Side struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Logo   string `json:"logo"`
	Winner *bool  `json:"winner"`
}

type Teams struct {
	Home Side `json:"home"`
	Away Side `json:"away"`
}

type Goals struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type Score struct {
	Halftime  Goals `json:"halftime"`
	Fulltime  Goals `json:"fulltime"`
	Extratime Goals `json:"extratime"`
	Penalty   Goals `json:"penalty"`
}

// Fixture is the API-Football fixture view.
type Fixture struct {
	ID        int64   `json:"id"`
	Referee   *string `json:"referee"`
	Timezone  string  `json:"timezone"`
	Date      string  `json:"date"`
	Timestamp int64   `json:"timestamp"`
	Periods   Periods `json:"periods"`
	Venue     Venue   `json:"venue"`
	Status    Status  `json:"status"`
	League    League  `json:"league"`
	Teams     Teams   `json:"teams"`
	Goals     Goals   `json:"goals"`
	Score     Score   `json:"score"`
}

// WithDefaults fills the venue and status labels the provider left blank.
func (f Fixture) WithDefaults() Fixture {
	if strings.TrimSpace(f.Venue.Name) == "" {
		f.Venue.Name = DefaultVenueName
	}
	if strings.TrimSpace(f.Venue.City) == "" {
		f.Venue.City = DefaultVenueCity
	}
	if strings.TrimSpace(f.Status.Long) == "" {
		f.Status.Long = DefaultStatusLong
	}
	if strings.TrimSpace(f.Status.Short) == "" {
		f.Status.Short = DefaultStatusShort
	}
	return f
}

// Query is an API-Football fixtures request. Exactly one mode is expected to be set.
type Query struct {
	Live   string
	Date   string
	League string
	Team   string
	Next   string
	Last   string
	Status string
	Season string
}

// IsLiveLeagues reports whether live carries a dash separated league id list.
func IsLiveLeagues(live string) bool {
	return strings.Contains(live, "-")
}
