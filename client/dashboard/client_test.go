package dashboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_TeamsDecodesEnvelope(t *testing.T) {
	t.Parallel()

	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/teams" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"apiVersion":"2.0","data":{"teams":[{"id":57,"name":"Arsenal FC"}],"total":1,"competitions":["Premier League"],"countries":["England"],"status":"partial","failedSources":["BL1"]}}`))
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL + "/"})
	out, err := client.Teams(context.Background(), TeamQuery{Search: "ars", Competition: "PL"})
	if err != nil {
		t.Fatalf("teams: %v", err)
	}
	if gotQuery != "competition=PL&search=ars" {
		t.Fatalf("unexpected query %q", gotQuery)
	}
	if len(out.Teams) != 1 || out.Teams[0].ID != 57 {
		t.Fatalf("unexpected teams %+v", out.Teams)
	}
	if !out.Partial() || len(out.FailedSources) != 1 || out.FailedSources[0] != "BL1" {
		t.Fatalf("unexpected aggregate %+v", out.Aggregate)
	}
}

func TestClient_ErrorEnvelopeBecomesAPIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"apiVersion":"2.0","error":{"code":503,"message":"every player league source failed (39)","status":"UNAVAILABLE","errors":[{"domain":"football-dashboard","reason":"dependencyUnavailable","message":"every player league source failed (39)"}]}}`))
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL})
	_, err := client.Players(context.Background(), PlayerQuery{})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T %v", err, err)
	}
	if apiErr.Status != http.StatusServiceUnavailable || apiErr.Reason != "dependencyUnavailable" {
		t.Fatalf("unexpected api error %+v", apiErr)
	}
}

func TestClient_LoginStoresBearerToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/auth/login":
			if r.Method != http.MethodPost {
				t.Errorf("login must be a POST, got %s", r.Method)
			}
			_, _ = w.Write([]byte(`{"apiVersion":"2.0","data":{"token":"abc","tokenType":"Bearer","expiresAt":"2024-03-02T12:00:00Z","user":{"id":"u-1","email":"fan@example.com","name":"Fan"}}}`))
		case "/api/auth/me":
			if got := r.Header.Get("Authorization"); got != "Bearer abc" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"apiVersion":"2.0","error":{"code":401,"message":"missing Authorization header","status":"UNAUTHENTICATED"}}`))
				return
			}
			_, _ = w.Write([]byte(`{"apiVersion":"2.0","data":{"id":"u-1","email":"fan@example.com","name":"Fan"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL})
	session, err := client.Login(context.Background(), "fan@example.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if session.Token != "abc" || client.Token() != "abc" {
		t.Fatalf("token was not stored: session=%q client=%q", session.Token, client.Token())
	}

	me, err := client.Me(context.Background())
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if me.UserID != "u-1" {
		t.Fatalf("unexpected principal %+v", me)
	}
}

func TestClient_NonJSONErrorBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream connect error"))
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL})
	_, err := client.Matches(context.Background(), MatchQuery{Status: "SCHEDULED"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusBadGateway || apiErr.Message != "upstream connect error" {
		t.Fatalf("unexpected error %v", err)
	}
}
