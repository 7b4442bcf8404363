package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/football-dashboard/internal/domain/transfer"
)

func transferOn(playerID int64, date string) transfer.Item {
	return transfer.Item{
		Player:   transfer.PlayerTag{ID: playerID},
		Transfer: &transfer.Move{Date: date, Type: "Loan"},
	}
}

func TestTransferService_ListTransfers_RecentAcrossDefaultTeams(t *testing.T) {
	t.Parallel()

	provider := &fakeTransferProvider{
		byTeam: map[string][]transfer.Item{
			"33": {transferOn(1, "2024-05-01"), transferOn(2, "2023-01-01"), {Player: transfer.PlayerTag{ID: 9}}},
			"40": {transferOn(3, "2024-06-01"), transferOn(1, "2024-05-01")},
			"42": {transferOn(4, "2024-02-15")},
		},
		failing: map[string]bool{},
	}
	clock := clockwork.NewFakeClockAt(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
	service := NewTransferService(provider, NewAggregator(clock, nil, nil), TransferServiceConfig{
		TeamIDs:          []int64{33, 40, 42, 49},
		DefaultTeamCount: 3,
	})

	got, err := service.ListTransfers(context.Background(), transfer.Query{})
	if err != nil {
		t.Fatalf("list transfers: %v", err)
	}
	if len(provider.queries) != 3 {
		t.Fatalf("expected the first three teams, got %+v", provider.queries)
	}
	if got.Total != 3 {
		t.Fatalf("expected three recent unique transfers, got %d: %+v", got.Total, got.Transfers)
	}
	wantOrder := []int64{3, 1, 4}
	for i, id := range wantOrder {
		if got.Transfers[i].Player.ID != id {
			t.Fatalf("unexpected order at %d: got=%d want=%d", i, got.Transfers[i].Player.ID, id)
		}
	}
}

func TestTransferService_ListTransfers_SingleTeamKeepsOlderMoves(t *testing.T) {
	t.Parallel()

	items := make([]transfer.Item, 0, 12)
	for i := 1; i <= 12; i++ {
		items = append(items, transferOn(int64(i), time.Date(2010+i, 1, 1, 0, 0, 0, 0, time.UTC).Format(time.DateOnly)))
	}
	provider := &fakeTransferProvider{byTeam: map[string][]transfer.Item{"541": items}}
	service := NewTransferService(provider, newTestAggregator(), TransferServiceConfig{})

	got, err := service.ListTransfers(context.Background(), transfer.Query{Team: "541"})
	if err != nil {
		t.Fatalf("list transfers: %v", err)
	}
	if got.Total != 12 || len(got.Transfers) != 10 {
		t.Fatalf("expected total 12 limited to 10, got total=%d len=%d", got.Total, len(got.Transfers))
	}
	if got.Transfers[0].Player.ID != 12 {
		t.Fatalf("expected newest first, got %d", got.Transfers[0].Player.ID)
	}
}

func TestTransferService_ListTransfers_EmptyHasMessage(t *testing.T) {
	t.Parallel()

	provider := &fakeTransferProvider{byTeam: map[string][]transfer.Item{}}
	service := NewTransferService(provider, newTestAggregator(), TransferServiceConfig{})

	got, err := service.ListTransfers(context.Background(), transfer.Query{Player: "276"})
	if err != nil {
		t.Fatalf("list transfers: %v", err)
	}
	if got.Message != noRecentTransfersMessage || got.Transfers == nil {
		t.Fatalf("unexpected empty result: %+v", got)
	}
	if provider.queries[0].Player != "276" || provider.queries[0].Team != "" {
		t.Fatalf("unexpected provider query: %+v", provider.queries[0])
	}
}

func TestTransferService_ListTransfers_AllTeamsFailed(t *testing.T) {
	t.Parallel()

	provider := &fakeTransferProvider{failing: map[string]bool{"33": true}}
	service := NewTransferService(provider, newTestAggregator(), TransferServiceConfig{TeamIDs: []int64{33}, DefaultTeamCount: 3})

	if _, err := service.ListTransfers(context.Background(), transfer.Query{}); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
