package transfer

import (
	"strings"
	"time"
)

type PlayerTag struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Photo string `json:"photo,omitempty"`
}

type TeamTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

type Teams struct {
	In  TeamTag `json:"in"`
	Out TeamTag `json:"out"`
}

// Move is one club change of a player.
type Move struct {
	Date  string `json:"date"`
	Type  string `json:"type"`
	Teams Teams  `json:"teams"`
}

// Item is a player's transfer history reduced to the latest move.
type Item struct {
	Player   PlayerTag `json:"player"`
	Update   string    `json:"update"`
	Transfer *Move     `json:"transfer"`
}

// Date parses the latest move date. It reports false when there is no usable date.
func (i Item) Date() (time.Time, bool) {
	if i.Transfer == nil {
		return time.Time{}, false
	}
	raw := strings.TrimSpace(i.Transfer.Date)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// Query selects transfers by team or player id.
type Query struct {
	Team   string
	Player string
}
