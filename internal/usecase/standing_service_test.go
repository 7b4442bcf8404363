package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/football-dashboard/internal/domain/standing"
)

type fakeStandingProvider struct {
	league string
	season string
	rows   []standing.Row
}

func (f *fakeStandingProvider) ListStandings(_ context.Context, league, season string) ([]standing.Row, error) {
	f.league, f.season = league, season
	return f.rows, nil
}

func TestStandingService_ListStandings_Defaults(t *testing.T) {
	t.Parallel()

	provider := &fakeStandingProvider{}
	service := NewStandingService(provider, 2023)

	got, err := service.ListStandings(context.Background(), "", "")
	if err != nil {
		t.Fatalf("list standings: %v", err)
	}
	if provider.league != "39" || provider.season != "2023" {
		t.Fatalf("unexpected defaults league=%s season=%s", provider.league, provider.season)
	}
	if got.Standings == nil || got.Total != 0 || got.League.ID != "39" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestStandingService_ListStandings_Validation(t *testing.T) {
	t.Parallel()

	service := NewStandingService(&fakeStandingProvider{}, 2023)
	if _, err := service.ListStandings(context.Background(), "abc", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for league, got %v", err)
	}
	if _, err := service.ListStandings(context.Background(), "140", "23"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for season, got %v", err)
	}
}
