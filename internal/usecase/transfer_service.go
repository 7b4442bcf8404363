package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/football-dashboard/internal/domain/transfer"
)

const (
	transferLimit            = 10
	transferRecentMonths     = 6
	noRecentTransfersMessage = "No recent transfers found"
)

type TransferServiceConfig struct {
	TeamIDs          []int64
	DefaultTeamCount int
	Delay            time.Duration
}

type TransferListResult struct {
	Transfers     []transfer.Item
	Total         int
	Status        ResultStatus
	FailedSources []string
	Message       string
}

type TransferService struct {
	provider   TransferProvider
	aggregator *Aggregator
	clock      clockwork.Clock
	cfg        TransferServiceConfig
}

func NewTransferService(provider TransferProvider, aggregator *Aggregator, cfg TransferServiceConfig) *TransferService {
	return &TransferService{
		provider:   provider,
		aggregator: aggregator,
		clock:      aggregator.Clock(),
		cfg:        cfg,
	}
}

// ListTransfers returns the newest ten moves. A team or player query is a single call;
// otherwise the first configured clubs are scanned and only moves from the last six
// months are kept.
func (s *TransferService) ListTransfers(ctx context.Context, query transfer.Query) (TransferListResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TransferService.ListTransfers")
	defer span.End()

	var err error
	if query.Team, err = positiveIntParam("team", query.Team); err != nil {
		return TransferListResult{}, err
	}
	if query.Player, err = positiveIntParam("player", query.Player); err != nil {
		return TransferListResult{}, err
	}

	var result Result[transfer.Item]
	if query.Team != "" || query.Player != "" {
		single := transfer.Query{Team: query.Team}
		if single.Team == "" {
			single.Player = query.Player
		}
		items, err := s.provider.ListTransfers(ctx, single)
		if err != nil {
			return TransferListResult{}, fmt.Errorf("list transfers: %w", err)
		}
		result = Result[transfer.Item]{Status: ResultOK, Items: items}
	} else {
		result, err = s.recentAcrossTeams(ctx)
		if err != nil {
			return TransferListResult{}, err
		}
		if result.Unavailable() {
			return TransferListResult{}, unavailableError("transfer team", result.FailedSources)
		}
	}

	items := make([]transfer.Item, 0, len(result.Items))
	for _, item := range result.Items {
		if item.Transfer != nil {
			items = append(items, item)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, _ := items[i].Date()
		b, _ := items[j].Date()
		return a.After(b)
	})

	out := TransferListResult{
		Transfers:     truncate(items, transferLimit),
		Total:         len(items),
		Status:        result.Status,
		FailedSources: result.FailedSourceList(),
	}
	if len(items) == 0 {
		out.Message = noRecentTransfersMessage
	}
	return out, nil
}

func (s *TransferService) recentAcrossTeams(ctx context.Context) (Result[transfer.Item], error) {
	teamIDs := s.cfg.TeamIDs
	if s.cfg.DefaultTeamCount > 0 && len(teamIDs) > s.cfg.DefaultTeamCount {
		teamIDs = teamIDs[:s.cfg.DefaultTeamCount]
	}
	sources := make([]string, 0, len(teamIDs))
	for _, id := range teamIDs {
		sources = append(sources, strconv.FormatInt(id, 10))
	}
	cutoff := s.clock.Now().UTC().AddDate(0, -transferRecentMonths, 0)

	type key struct {
		player int64
		date   string
	}
	result, err := Aggregate(ctx, s.aggregator, "transfers", sources, s.cfg.Delay,
		func(ctx context.Context, team string) ([]transfer.Item, error) {
			items, err := s.provider.ListTransfers(ctx, transfer.Query{Team: team})
			if err != nil {
				return nil, err
			}
			recent := make([]transfer.Item, 0, len(items))
			for _, item := range items {
				if date, ok := item.Date(); ok && !date.Before(cutoff) {
					recent = append(recent, item)
				}
			}
			return recent, nil
		},
		func(item transfer.Item) key { return key{player: item.Player.ID, date: item.Transfer.Date} },
	)
	if err != nil {
		return Result[transfer.Item]{}, fmt.Errorf("aggregate transfers: %w", err)
	}
	return result, nil
}
