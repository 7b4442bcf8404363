package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/football-dashboard/internal/domain/competition"
	"github.com/riskibarqy/football-dashboard/internal/platform/cache"
	"github.com/riskibarqy/football-dashboard/internal/platform/logging"
)

const (
	warmupStatusSuccess = "success"
	warmupStatusFailed  = "failed"

	defaultWarmupWorkers = 2
)

type WarmupServiceConfig struct {
	CompetitionCodes []string
	Workers          int
}

type WarmupTaskResult struct {
	Name       string
	Status     string
	Message    string
	DurationMs int64
}

type WarmupResult struct {
	TaskCount    int
	SuccessCount int
	FailedCount  int
	Tasks        []WarmupTaskResult
}

type warmupTask struct {
	name string
	run  func(ctx context.Context) error
}

// WarmupService refetches the most requested provider payloads and overwrites their
// cache entries with a full ttl, so entries are renewed before visitors see them expire.
type WarmupService struct {
	competitions CompetitionProvider
	areas        AreaProvider
	clock        clockwork.Clock
	logger       *logging.Logger
	cfg          WarmupServiceConfig
}

func NewWarmupService(competitions CompetitionProvider, areas AreaProvider, clock clockwork.Clock, logger *logging.Logger, cfg WarmupServiceConfig) *WarmupService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &WarmupService{
		competitions: competitions,
		areas:        areas,
		clock:        clock,
		logger:       logger,
		cfg:          cfg,
	}
}

// Run warms the cache immediately and then every interval until ctx is done.
func (s *WarmupService) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("warmup interval must be > 0")
	}

	ticker := s.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		result, err := s.RunOnce(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			s.logger.WarnContext(ctx, "cache warmup failed", "error", err)
		} else {
			s.logger.InfoContext(ctx, "cache warmup finished",
				"tasks", result.TaskCount,
				"success", result.SuccessCount,
				"failed", result.FailedCount,
			)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.Chan():
		}
	}
}

func (s *WarmupService) RunOnce(ctx context.Context) (WarmupResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WarmupService.RunOnce")
	defer span.End()
	ctx = cache.WithRefresh(ctx)

	tasks := s.tasks()
	workerCount := s.cfg.Workers
	if workerCount <= 0 {
		workerCount = defaultWarmupWorkers
	}
	if workerCount > len(tasks) {
		workerCount = len(tasks)
	}

	result := WarmupResult{
		TaskCount: len(tasks),
		Tasks:     make([]WarmupTaskResult, 0, len(tasks)),
	}
	if len(tasks) == 0 {
		return result, nil
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return WarmupResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan WarmupTaskResult, len(tasks))
	var successCount atomic.Int32
	var failedCount atomic.Int32

	var workers sync.WaitGroup
	for _, task := range tasks {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := s.clock.Now()
			row := WarmupTaskResult{Name: task.name, Status: warmupStatusSuccess}
			if err := task.run(ctx); err != nil {
				s.logger.WarnContext(ctx, "cache warmup task failed", "task", task.name, "error", err)
				row.Status = warmupStatusFailed
				row.Message = err.Error()
				failedCount.Add(1)
			} else {
				successCount.Add(1)
			}
			row.DurationMs = s.clock.Since(start).Milliseconds()
			results <- row
		}); err != nil {
			workers.Done()
			workers.Wait()
			return WarmupResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Tasks = append(result.Tasks, row)
	}
	sort.SliceStable(result.Tasks, func(i, j int) bool { return result.Tasks[i].Name < result.Tasks[j].Name })

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	return result, nil
}

func (s *WarmupService) tasks() []warmupTask {
	tasks := []warmupTask{
		{name: "competitions", run: func(ctx context.Context) error {
			_, err := s.competitions.ListCompetitions(ctx, competition.PlanTierOne, "")
			return err
		}},
		{name: "areas", run: func(ctx context.Context) error {
			_, err := s.areas.ListAreas(ctx)
			return err
		}},
	}
	for _, code := range s.cfg.CompetitionCodes {
		tasks = append(tasks, warmupTask{
			name: "teams:" + code,
			run: func(ctx context.Context) error {
				_, err := s.competitions.ListCompetitionTeams(ctx, code, "")
				return err
			},
		})
	}
	return tasks
}
