package apifootball

import (
	"github.com/riskibarqy/football-dashboard/internal/domain/fixture"
	"github.com/riskibarqy/football-dashboard/internal/domain/player"
	"github.com/riskibarqy/football-dashboard/internal/domain/standing"
	"github.com/riskibarqy/football-dashboard/internal/domain/transfer"
)

type paging struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

type envelope[T any] struct {
	Results  int    `json:"results"`
	Paging   paging `json:"paging"`
	Response []T    `json:"response"`
}

type leagueItem struct {
	League struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"league"`
}

type playerItem struct {
	Player struct {
		ID    *int64 `json:"id"`
		Name  string `json:"name"`
		Age   *int   `json:"age"`
		Birth struct {
			Date string `json:"date"`
		} `json:"birth"`
		Nationality string `json:"nationality"`
		Height      string `json:"height"`
		Weight      string `json:"weight"`
		Injured     bool   `json:"injured"`
		Photo       string `json:"photo"`
	} `json:"player"`
	Statistics []struct {
		Team struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
			Logo string `json:"logo"`
		} `json:"team"`
		Games struct {
			Position string `json:"position"`
		} `json:"games"`
	} `json:"statistics"`
}

// toDomain maps one players entry. A missing provider id stays zero so callers can
// skip the entry.
func (p playerItem) toDomain() player.Player {
	out := player.Player{
		Name:        p.Player.Name,
		Position:    player.UnknownPosition,
		DateOfBirth: p.Player.Birth.Date,
		Nationality: p.Player.Nationality,
		Photo:       p.Player.Photo,
		Status:      player.StatusActive,
		Age:         p.Player.Age,
		Height:      p.Player.Height,
		Weight:      p.Player.Weight,
	}
	if p.Player.ID != nil {
		out.ID = *p.Player.ID
	}
	if out.Name == "" {
		out.Name = player.UnknownName
	}
	if p.Player.Injured {
		out.Status = player.StatusInjured
	}
	if len(p.Statistics) > 0 {
		stat := p.Statistics[0]
		if stat.Games.Position != "" {
			out.Position = stat.Games.Position
		}
		if stat.Team.ID > 0 || stat.Team.Name != "" {
			out.Team = &player.TeamTag{
				ID:        stat.Team.ID,
				Name:      stat.Team.Name,
				ShortName: stat.Team.Name,
				Crest:     stat.Team.Logo,
			}
		}
	}
	return out
}

type fixtureItem struct {
	Fixture struct {
		ID        int64           `json:"id"`
		Referee   *string         `json:"referee"`
		Timezone  string          `json:"timezone"`
		Date      string          `json:"date"`
		Timestamp int64           `json:"timestamp"`
		Periods   fixture.Periods `json:"periods"`
		Venue     struct {
			ID   *int64  `json:"id"`
			Name *string `json:"name"`
			City *string `json:"city"`
		} `json:"venue"`
		Status struct {
			Long    *string `json:"long"`
			Short   *string `json:"short"`
			Elapsed *int    `json:"elapsed"`
			Extra   *int    `json:"extra"`
		} `json:"status"`
	} `json:"fixture"`
	League fixture.League `json:"league"`
	Teams  fixture.Teams  `json:"teams"`
	Goals  fixture.Goals  `json:"goals"`
	Score  fixture.Score  `json:"score"`
}

func (f fixtureItem) toDomain() fixture.Fixture {
	return fixture.Fixture{
		ID:        f.Fixture.ID,
		Referee:   f.Fixture.Referee,
		Timezone:  f.Fixture.Timezone,
		Date:      f.Fixture.Date,
		Timestamp: f.Fixture.Timestamp,
		Periods:   f.Fixture.Periods,
		Venue: fixture.Venue{
			ID:   f.Fixture.Venue.ID,
			Name: deref(f.Fixture.Venue.Name),
			City: deref(f.Fixture.Venue.City),
		},
		Status: fixture.Status{
			Long:    deref(f.Fixture.Status.Long),
			Short:   deref(f.Fixture.Status.Short),
			Elapsed: f.Fixture.Status.Elapsed,
			Extra:   f.Fixture.Status.Extra,
		},
		League: f.League,
		Teams:  f.Teams,
		Goals:  f.Goals,
		Score:  f.Score,
	}.WithDefaults()
}

type standingsItem struct {
	League struct {
		ID        int64            `json:"id"`
		Season    int              `json:"season"`
		Standings [][]standing.Row `json:"standings"`
	} `json:"league"`
}

type transferItem struct {
	Player    transfer.PlayerTag `json:"player"`
	Update    string             `json:"update"`
	Transfers []transfer.Move    `json:"transfers"`
}

// toDomain keeps only the latest move, which API-Football lists first.
func (t transferItem) toDomain() transfer.Item {
	out := transfer.Item{
		Player: t.Player,
		Update: t.Update,
	}
	if len(t.Transfers) > 0 {
		latest := t.Transfers[0]
		out.Transfer = &latest
	}
	return out
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
