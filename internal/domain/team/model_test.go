package team

import (
	"testing"

	"github.com/riskibarqy/football-dashboard/internal/domain/competition"
)

func TestTeam_MatchesSearch(t *testing.T) {
	t.Parallel()

	item := Team{ID: 57, Name: "Arsenal FC", ShortName: "Arsenal", TLA: "ARS"}
	for _, term := range []string{"", "arsenal", "FC", "ars", " Ars "} {
		if !item.MatchesSearch(term) {
			t.Fatalf("expected %q to match", term)
		}
	}
	if item.MatchesSearch("chelsea") {
		t.Fatalf("expected chelsea not to match")
	}
}

func TestTeam_NilSafeAccessors(t *testing.T) {
	t.Parallel()

	var item Team
	if item.AreaName() != "" || item.PrimaryCompetitionName() != "" {
		t.Fatalf("expected empty names for zero team")
	}
	item.Area = &competition.Area{Name: "England"}
	item.PrimaryCompetition = &competition.Ref{ID: "PL", Name: "Premier League"}
	if item.AreaName() != "England" || item.PrimaryCompetitionName() != "Premier League" {
		t.Fatalf("unexpected names: %q %q", item.AreaName(), item.PrimaryCompetitionName())
	}
}
