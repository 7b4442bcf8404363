package httpapi

import "testing"

func TestShouldCreateHTTPAPISpan(t *testing.T) {
	cases := map[string]bool{
		"httpapi.Handler.ListTeams":  true,
		"httpapi.Handler.Signup":     true,
		"httpapi.RequestLogging":     false,
		"httpapi.RateLimit":          false,
		"usecase.TeamService.Search": false,
	}
	for name, want := range cases {
		if got := shouldCreateHTTPAPISpan(name); got != want {
			t.Fatalf("shouldCreateHTTPAPISpan(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestShouldTraceRequest(t *testing.T) {
	for _, path := range []string{"/healthz", "/health", "/livez", "/readyz", " /healthz "} {
		if shouldTraceRequest(path) {
			t.Fatalf("expected no tracing for probe path %q", path)
		}
	}
	for _, path := range []string{"/api/teams", "/api/fixtures", "/api/auth/login", "/docs"} {
		if !shouldTraceRequest(path) {
			t.Fatalf("expected tracing for %q", path)
		}
	}
}
