package upstream

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/football-dashboard/internal/platform/cache"
	"github.com/riskibarqy/football-dashboard/internal/platform/resilience"
	"github.com/riskibarqy/football-dashboard/internal/usecase"
)

func TestClient_GetSendsHeadersAndDecodes(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Auth-Token") != "secret-token" {
			t.Errorf("missing auth header")
		}
		if r.URL.Path != "/competitions" || r.URL.Query().Get("plan") != "TIER_ONE" {
			t.Errorf("unexpected request %s", r.URL.String())
		}
		_, _ = w.Write([]byte(`{"count":2}`))
	}))
	defer srv.Close()

	client := New(Config{
		Name:    "football-data",
		BaseURL: srv.URL + "/",
		Headers: map[string]string{"X-Auth-Token": "secret-token", "X-Empty": ""},
	})

	var out struct {
		Count int `json:"count"`
	}
	if err := client.GetJSON(context.Background(), "/competitions", url.Values{"plan": {"TIER_ONE"}}, 0, &out); err != nil {
		t.Fatalf("get json: %v", err)
	}
	if out.Count != 2 {
		t.Fatalf("unexpected count %d", out.Count)
	}
}

func TestClient_NonRetryableStatusReturnsUpstreamError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"token secret-token is restricted"}`))
	}))
	defer srv.Close()

	client := New(Config{Name: "football-data", BaseURL: srv.URL, MaxRetries: 3, Secrets: []string{"secret-token"}})
	_, err := client.Get(context.Background(), "/matches", nil, 0)

	upstream, ok := usecase.AsUpstreamError(err)
	if !ok {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if upstream.StatusCode != http.StatusForbidden || upstream.Provider != "football-data" {
		t.Fatalf("unexpected upstream error %+v", upstream)
	}
	if strings.Contains(upstream.Body, "secret-token") {
		t.Fatalf("expected secret to be redacted from body: %s", upstream.Body)
	}
	if IsTransient(err) {
		t.Fatalf("4xx must not be transient")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected no retries on 403, got %d calls", calls.Load())
	}
}

func TestClient_RetriesServerErrorsWithBackoff(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`ok`))
	}))
	defer srv.Close()

	clock := clockwork.NewFakeClock()
	client := New(Config{Name: "api-football", BaseURL: srv.URL, MaxRetries: 1, Clock: clock})

	type result struct {
		raw []byte
		err error
	}
	done := make(chan result, 1)
	go func() {
		raw, err := client.Get(context.Background(), "/players", nil, 0)
		done <- result{raw: raw, err: err}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := clock.BlockUntilContext(ctx, 1); err != nil {
		t.Fatalf("waiting for backoff timer: %v", err)
	}
	clock.Advance(time.Second)

	got := <-done
	if got.err != nil {
		t.Fatalf("expected retry to succeed, got %v", got.err)
	}
	if string(got.raw) != "ok" || calls.Load() != 2 {
		t.Fatalf("unexpected result %q after %d calls", got.raw, calls.Load())
	}
}

func TestClient_ExhaustedRetriesAreTransient(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := New(Config{Name: "api-football", BaseURL: srv.URL})
	_, err := client.Get(context.Background(), "/fixtures", nil, 0)
	if !IsTransient(err) {
		t.Fatalf("expected transient error, got %v", err)
	}
	upstream, ok := usecase.AsUpstreamError(err)
	if !ok || upstream.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected wrapped 500 upstream error, got %v", err)
	}
}

func TestClient_BreakerOpensAfterTransientFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := New(Config{
		Name:    "football-data",
		BaseURL: srv.URL,
		Breaker: resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Minute, HalfOpenMaxReq: 1}, nil),
	})

	if _, err := client.Get(context.Background(), "/areas", nil, 0); err == nil {
		t.Fatalf("expected first call to fail")
	}
	_, err := client.Get(context.Background(), "/areas", nil, 0)
	if !stderrors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected dependency unavailable from open breaker, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected breaker to short-circuit, got %d calls", calls.Load())
	}
}

func TestClient_CachesSuccessfulBodies(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"areas":[]}`))
	}))
	defer srv.Close()

	client := New(Config{Name: "football-data", BaseURL: srv.URL, Cache: cache.NewStore(time.Minute)})
	for i := 0; i < 3; i++ {
		if _, err := client.Get(context.Background(), "/areas", nil, time.Hour); err != nil {
			t.Fatalf("get: %v", err)
		}
	}
	if calls.Load() != 1 {
		t.Fatalf("expected one upstream call, got %d", calls.Load())
	}

	if _, err := client.Get(context.Background(), "/areas", nil, 0); err != nil {
		t.Fatalf("get uncached: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected zero ttl to bypass cache, got %d calls", calls.Load())
	}
}

func TestClient_RedactURL(t *testing.T) {
	t.Parallel()

	client := New(Config{Secrets: []string{"abc123"}})
	got := client.redactURL("https://example.com/v3/path-abc123?token=xyz&league=39")
	if strings.Contains(got, "abc123") || strings.Contains(got, "xyz") {
		t.Fatalf("expected secrets redacted, got %s", got)
	}
	if !strings.Contains(got, "league=39") {
		t.Fatalf("expected non-secret params kept, got %s", got)
	}
}
