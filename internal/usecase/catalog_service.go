package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/football-dashboard/internal/domain/competition"
	"github.com/riskibarqy/football-dashboard/internal/domain/highlight"
)

type AreaService struct {
	provider AreaProvider
}

func NewAreaService(provider AreaProvider) *AreaService {
	return &AreaService{provider: provider}
}

func (s *AreaService) ListAreas(ctx context.Context) ([]competition.Area, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AreaService.ListAreas")
	defer span.End()

	items, err := s.provider.ListAreas(ctx)
	if err != nil {
		return nil, fmt.Errorf("list areas: %w", err)
	}
	if items == nil {
		items = []competition.Area{}
	}
	return items, nil
}

// HighlightService serves the Scorebat feed. A nil provider means highlights are disabled.
type HighlightService struct {
	provider HighlightProvider
}

func NewHighlightService(provider HighlightProvider) *HighlightService {
	return &HighlightService{provider: provider}
}

func (s *HighlightService) Enabled() bool {
	return s.provider != nil
}

func (s *HighlightService) ListHighlights(ctx context.Context) ([]highlight.Video, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HighlightService.ListHighlights")
	defer span.End()

	if s.provider == nil {
		return nil, fmt.Errorf("%w: highlights are disabled", ErrDependencyUnavailable)
	}
	items, err := s.provider.ListHighlights(ctx)
	if err != nil {
		return nil, fmt.Errorf("list highlights: %w", err)
	}
	if items == nil {
		items = []highlight.Video{}
	}
	return items, nil
}
