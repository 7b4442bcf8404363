package footballdata

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/football-dashboard/internal/domain/match"
	"github.com/riskibarqy/football-dashboard/internal/domain/standing"
	"github.com/riskibarqy/football-dashboard/internal/usecase"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(ClientConfig{BaseURL: srv.URL, Token: "fd-token"})
}

func TestClient_ListCompetitions(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Auth-Token") != "fd-token" {
			t.Errorf("missing token header")
		}
		if r.URL.Path != "/competitions" || r.URL.Query().Get("plan") != "TIER_ONE" {
			t.Errorf("unexpected request %s", r.URL.String())
		}
		_, _ = w.Write([]byte(`{"count":1,"competitions":[{"id":2021,"name":"Premier League","code":"PL","type":"LEAGUE","emblem":"pl.png","area":{"id":2072,"name":"England"},"currentSeason":{"id":1,"startDate":"2024-08-16","endDate":"2025-05-25","currentMatchday":20,"winner":null}}]}`))
	})

	items, err := client.ListCompetitions(context.Background(), "TIER_ONE", "")
	if err != nil {
		t.Fatalf("list competitions: %v", err)
	}
	if len(items) != 1 || items[0].Code != "PL" || items[0].Area.Name != "England" {
		t.Fatalf("unexpected competitions: %+v", items)
	}
	if items[0].CurrentSeason == nil || *items[0].CurrentSeason.CurrentMatchday != 20 {
		t.Fatalf("unexpected current season: %+v", items[0].CurrentSeason)
	}
}

func TestClient_ListMatchesSendsQuery(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("dateFrom") != "2024-01-01" || q.Get("dateTo") != "2024-01-08" || q.Get("status") != "SCHEDULED" || q.Get("competitions") != "2021" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		if q.Has("stage") {
			t.Errorf("empty params must be omitted")
		}
		_, _ = w.Write([]byte(`{"matches":[{"id":1,"utcDate":"2024-01-02T15:00:00Z","status":"SCHEDULED","homeTeam":{"id":57,"name":"Arsenal FC"},"awayTeam":{"id":61,"name":"Chelsea FC"},"score":{"winner":null,"duration":"REGULAR","fullTime":{"home":null,"away":null},"halfTime":{"home":null,"away":null}},"referees":[]}]}`))
	})

	items, err := client.ListMatches(context.Background(), match.Query{
		DateFrom:     "2024-01-01",
		DateTo:       "2024-01-08",
		Status:       "SCHEDULED",
		Competitions: "2021",
	})
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(items) != 1 || items[0].Status != match.StatusScheduled || items[0].HomeTeam.Name != "Arsenal FC" {
		t.Fatalf("unexpected matches: %+v", items)
	}
}

func TestClient_GetTeamDecodesSquad(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/teams/57" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"id":57,"name":"Arsenal FC","shortName":"Arsenal","tla":"ARS","crest":"a.png","area":{"id":2072,"name":"England"},"squad":[{"id":7,"name":"Bukayo Saka","dateOfBirth":"2001-09-05","nationality":"England","position":"Offence"}]}`))
	})

	got, err := client.GetTeam(context.Background(), 57)
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if len(got.Squad) != 1 || got.Squad[0].Name != "Bukayo Saka" {
		t.Fatalf("unexpected squad: %+v", got.Squad)
	}

	if _, err := client.GetTeam(context.Background(), 0); !stderrors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected invalid input for zero id, got %v", err)
	}
}

func TestClient_CompetitionNotFoundPassesStatus(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"The resource you are looking for does not exist.","errorCode":404}`))
	})

	_, err := client.GetCompetitionStandings(context.Background(), "XX", standing.Query{})
	upstream, ok := usecase.AsUpstreamError(err)
	if !ok || upstream.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 upstream error, got %v", err)
	}

	if _, err := client.GetCompetition(context.Background(), " "); !stderrors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank id, got %v", err)
	}
}

func TestClient_EmptyListsAreNotNil(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	areas, err := client.ListAreas(context.Background())
	if err != nil {
		t.Fatalf("list areas: %v", err)
	}
	if areas == nil || len(areas) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", areas)
	}
}
