package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/football-dashboard/internal/domain/match"
)

const scheduledWindowDays = 7

type MatchListInput struct {
	DateFrom      string
	DateTo        string
	Status        string
	CompetitionID string
}

// MatchList is the match feed plus the provider parameters that produced it.
type MatchList struct {
	Matches   []match.Match
	Params    map[string]string
	DateRange *match.DateRange
}

type MatchService struct {
	provider MatchProvider
	clock    clockwork.Clock
}

func NewMatchService(provider MatchProvider, clock clockwork.Clock) *MatchService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MatchService{provider: provider, clock: clock}
}

func (s *MatchService) ListMatches(ctx context.Context, input MatchListInput) (MatchList, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListMatches")
	defer span.End()

	query, dateRange, err := s.buildQuery(input)
	if err != nil {
		return MatchList{}, err
	}

	items, err := s.provider.ListMatches(ctx, query)
	if err != nil {
		return MatchList{}, fmt.Errorf("list matches: %w", err)
	}
	if items == nil {
		items = []match.Match{}
	}

	return MatchList{
		Matches:   items,
		Params:    matchParams(query),
		DateRange: dateRange,
	}, nil
}

func (s *MatchService) buildQuery(input MatchListInput) (match.Query, *match.DateRange, error) {
	var (
		query     match.Query
		dateRange *match.DateRange
	)
	dateFrom := strings.TrimSpace(input.DateFrom)
	dateTo := strings.TrimSpace(input.DateTo)

	status, err := statusParam(input.Status)
	if err != nil {
		return match.Query{}, nil, err
	}

	switch {
	case match.Status(status) == match.StatusScheduled:
		start := s.clock.Now().UTC()
		if dateFrom != "" {
			if start, err = ParseDate(dateFrom); err != nil {
				return match.Query{}, nil, fmt.Errorf("%w: dateFrom: %v", ErrInvalidInput, err)
			}
		}
		query.DateFrom = FormatDate(start)
		query.DateTo = FormatDate(start.AddDate(0, 0, scheduledWindowDays))
		query.Status = status
	case dateFrom != "" && dateTo != "":
		clamped := ClampDateRange(dateFrom, dateTo, s.clock.Now())
		dateRange = &clamped
		query.DateFrom = clamped.From
		query.DateTo = clamped.To
		query.Status = status
	case dateFrom != "" || dateTo != "":
		if query.DateFrom, err = dateParam("dateFrom", dateFrom); err != nil {
			return match.Query{}, nil, err
		}
		if query.DateTo, err = dateParam("dateTo", dateTo); err != nil {
			return match.Query{}, nil, err
		}
		query.Status = status
	default:
		query.Status = status
	}

	query.Competitions = strings.ToUpper(strings.TrimSpace(input.CompetitionID))
	return query, dateRange, nil
}

func matchParams(query match.Query) map[string]string {
	params := make(map[string]string, 4)
	for key, value := range map[string]string{
		"dateFrom":     query.DateFrom,
		"dateTo":       query.DateTo,
		"status":       query.Status,
		"competitions": query.Competitions,
	} {
		if value != "" {
			params[key] = value
		}
	}
	return params
}
