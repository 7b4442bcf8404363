package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/football-dashboard/internal/domain/match"
	"github.com/riskibarqy/football-dashboard/internal/domain/standing"
)

func TestCompetitionService_PassesNormalizedParams(t *testing.T) {
	t.Parallel()

	provider := &fakeCatalogProvider{}
	service := NewCompetitionService(provider)
	ctx := context.Background()

	if _, err := service.ListCompetitions(ctx, " 2072, 2088 "); err != nil {
		t.Fatalf("list competitions: %v", err)
	}
	if _, err := service.GetStandings(ctx, "pl", standing.Query{Matchday: "05", Date: "2024-03-01T10:00:00Z"}); err != nil {
		t.Fatalf("get standings: %v", err)
	}
	if _, err := service.ListScorers(ctx, "PL", 0, "2023"); err != nil {
		t.Fatalf("list scorers: %v", err)
	}
	if _, err := service.ListMatches(ctx, "CL", match.Query{DateFrom: "2024-03-01", Status: "finished"}); err != nil {
		t.Fatalf("list matches: %v", err)
	}

	want := []string{
		"competitions:TIER_ONE:2072,2088",
		"standings:PL:5::2024-03-01",
		"scorers:PL:10:2023",
		"matches:CL:2024-03-01:FINISHED",
	}
	if len(provider.calls) != len(want) {
		t.Fatalf("unexpected calls: %v", provider.calls)
	}
	for i := range want {
		if provider.calls[i] != want[i] {
			t.Fatalf("unexpected call %d: got=%q want=%q", i, provider.calls[i], want[i])
		}
	}
}

func TestCompetitionService_RejectsInvalidInput(t *testing.T) {
	t.Parallel()

	service := NewCompetitionService(&fakeCatalogProvider{})
	ctx := context.Background()

	checks := map[string]error{}
	_, checks["blank id"] = service.GetCompetition(ctx, "  ")
	_, checks["path in id"] = service.GetCompetition(ctx, "PL/../teams")
	_, checks["bad areas"] = service.ListCompetitions(ctx, "europe")
	_, checks["bad matchday"] = service.GetStandings(ctx, "PL", standing.Query{Matchday: "0"})
	_, checks["bad season"] = service.ListTeams(ctx, "PL", "1800")
	_, checks["scorer limit"] = service.ListScorers(ctx, "PL", 500, "")
	_, checks["bad status"] = service.ListMatches(ctx, "PL", match.Query{Status: "DONE"})

	for name, err := range checks {
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
}
