package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/football-dashboard/external/apifootball"
	"github.com/riskibarqy/football-dashboard/external/footballdata"
	"github.com/riskibarqy/football-dashboard/external/scorebat"
	"github.com/riskibarqy/football-dashboard/internal/config"
	"github.com/riskibarqy/football-dashboard/internal/domain/competition"
	"github.com/riskibarqy/football-dashboard/internal/domain/user"
	"github.com/riskibarqy/football-dashboard/internal/infrastructure/auth"
	"github.com/riskibarqy/football-dashboard/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/football-dashboard/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/football-dashboard/internal/interfaces/httpapi"
	"github.com/riskibarqy/football-dashboard/internal/platform/cache"
	"github.com/riskibarqy/football-dashboard/internal/platform/id"
	"github.com/riskibarqy/football-dashboard/internal/platform/logging"
	"github.com/riskibarqy/football-dashboard/internal/platform/ratelimit"
	"github.com/riskibarqy/football-dashboard/internal/platform/resilience"
	"github.com/riskibarqy/football-dashboard/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	devJWTSecret       = "football-dashboard-dev-secret"
	jwtIssuer          = "football-dashboard"
	memoryCacheTTL     = 5 * time.Minute
	redisCacheKeyspace = "football-dashboard:"
)

// App holds the HTTP server and the background pieces that share its lifetime.
type App struct {
	Server *http.Server
	// Warmup is nil when WARMUP_ENABLED=false.
	Warmup *usecase.WarmupService

	closers []func() error
}

// Close releases the user store and cache connections.
func (a *App) Close() error {
	var err error
	for i := len(a.closers) - 1; i >= 0; i-- {
		err = errors.CombineErrors(err, a.closers[i]())
	}
	return err
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	app := &App{}
	clock := clockwork.NewRealClock()

	loader := app.buildCache(ctx, cfg, clock, logger)

	footballData := footballdata.NewClient(footballdata.ClientConfig{
		HTTPClient:     tracedHTTPClient(cfg.FootballData.Timeout),
		BaseURL:        cfg.FootballData.BaseURL,
		Token:          cfg.FootballData.Token,
		Timeout:        cfg.FootballData.Timeout,
		MaxRetries:     cfg.FootballData.MaxRetries,
		Logger:         logger,
		CircuitBreaker: circuitBreakerConfig(cfg.FootballData),
		Cache:          loader,
		Clock:          clock,
	})
	apiFootball := apifootball.NewClient(apifootball.ClientConfig{
		HTTPClient:     tracedHTTPClient(cfg.APIFootball.Timeout),
		BaseURL:        cfg.APIFootball.BaseURL,
		Key:            cfg.APIFootball.Token,
		Host:           cfg.APIFootball.Host,
		Timeout:        cfg.APIFootball.Timeout,
		MaxRetries:     cfg.APIFootball.MaxRetries,
		Logger:         logger,
		CircuitBreaker: circuitBreakerConfig(cfg.APIFootball),
		Cache:          loader,
		Clock:          clock,
	})

	// A nil interface keeps the highlights route in its disabled state.
	var highlights usecase.HighlightProvider
	if cfg.ScorebatEnabled {
		highlights = scorebat.NewClient(scorebat.ClientConfig{
			HTTPClient:     tracedHTTPClient(cfg.Scorebat.Timeout),
			BaseURL:        cfg.Scorebat.BaseURL,
			Token:          cfg.Scorebat.Token,
			Timeout:        cfg.Scorebat.Timeout,
			MaxRetries:     cfg.Scorebat.MaxRetries,
			Logger:         logger,
			CircuitBreaker: circuitBreakerConfig(cfg.Scorebat),
			Cache:          loader,
			Clock:          clock,
		})
	}

	users, err := app.buildUserStore(ctx, cfg, logger)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	secret := cfg.AuthJWTSecret
	if secret == "" {
		logger.Warn("AUTH_JWT_SECRET empty, using development secret", "app_env", cfg.AppEnv)
		secret = devJWTSecret
	}
	tokens, err := auth.NewJWTService(secret, jwtIssuer, cfg.AuthJWTTTL, clock)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("build jwt service: %w", err)
	}

	aggregator := usecase.NewAggregator(clock, logger, competition.Names(cfg.CompetitionNames))
	services := httpapi.Services{
		Competitions: usecase.NewCompetitionService(footballData),
		Matches:      usecase.NewMatchService(footballData, clock),
		Teams: usecase.NewTeamService(footballData, aggregator, usecase.TeamServiceConfig{
			CompetitionCodes:        cfg.TeamCompetitionCodes,
			PopularCompetitionCodes: cfg.PopularTeamCompetitionCodes,
			Delay:                   cfg.TeamAggregationDelay,
			PopularDelay:            cfg.PopularTeamAggregationDelay,
		}),
		Players: usecase.NewPlayerService(apiFootball, footballData, aggregator, logger, usecase.PlayerServiceConfig{
			LeagueIDs:      cfg.PlayerLeagueIDs,
			Season:         cfg.APIFootballSeason,
			PageDelay:      cfg.PlayerPageDelay,
			PopularTeamIDs: cfg.PopularPlayerTeamIDs,
			PopularDelay:   cfg.PlayerAggregationDelay,
		}),
		Fixtures: usecase.NewFixtureService(apiFootball, aggregator, usecase.FixtureServiceConfig{
			LeagueIDs: cfg.FixtureLeagueIDs,
			Season:    cfg.APIFootballSeason,
			Delay:     cfg.FixtureAggregationDelay,
		}),
		Standings: usecase.NewStandingService(apiFootball, cfg.APIFootballSeason),
		Transfers: usecase.NewTransferService(apiFootball, aggregator, usecase.TransferServiceConfig{
			TeamIDs:          cfg.TransferTeamIDs,
			DefaultTeamCount: cfg.TransferDefaultTeamCount,
			Delay:            cfg.TransferAggregationDelay,
		}),
		Areas:      usecase.NewAreaService(footballData),
		Highlights: usecase.NewHighlightService(highlights),
		Auth: usecase.NewAuthService(
			users,
			auth.NewBcryptHasher(cfg.AuthBcryptCost),
			tokens,
			id.NewUUIDGenerator(),
			clock,
			logger,
			usecase.AuthServiceConfig{
				DemoUserEnabled: cfg.AuthDemoUserEnabled,
				DemoEmail:       cfg.AuthDemoEmail,
				DemoPassword:    cfg.AuthDemoPassword,
			},
		),
	}

	switch {
	case cfg.WarmupEnabled && loader == nil:
		logger.Warn("warmup skipped", "reason", "CACHE_ENABLED=false")
	case cfg.WarmupEnabled:
		app.Warmup = usecase.NewWarmupService(footballData, footballData, clock, logger, usecase.WarmupServiceConfig{
			CompetitionCodes: cfg.TeamCompetitionCodes,
			Workers:          cfg.WarmupWorkers,
		})
	}

	handler := httpapi.NewHandler(services, logger)
	router := httpapi.NewRouter(handler, tokens, logger, httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		AuthLimiter:        ratelimit.NewSlidingWindow(cfg.AuthRateLimit, cfg.AuthRateWindow, clock).WithMaxKeys(cfg.AuthRateMaxKeys),
		TrustedProxyHeader: cfg.TrustedProxyHeader,
	})

	app.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return app, nil
}

// buildCache returns nil when caching is off. An unreachable Redis degrades to the
// in-process store instead of failing startup.
func (a *App) buildCache(ctx context.Context, cfg config.Config, clock clockwork.Clock, logger *logging.Logger) cache.Loader {
	if !cfg.CacheEnabled {
		logger.Info("provider cache disabled", "reason", "CACHE_ENABLED=false")
		return nil
	}

	if cfg.CacheBackend == config.CacheBackendRedis {
		store, err := cache.NewRedisStore(ctx, cache.RedisConfig{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: redisCacheKeyspace,
			Logger:    logger,
		})
		if err == nil {
			a.closers = append(a.closers, store.Close)
			logger.Info("provider cache ready", "backend", config.CacheBackendRedis, "addr", cfg.RedisAddr)
			return store
		}
		logger.Warn("redis unavailable, falling back to memory cache", "addr", cfg.RedisAddr, "error", err)
	}

	logger.Info("provider cache ready", "backend", config.CacheBackendMemory)
	return cache.NewStoreWithClock(memoryCacheTTL, clock)
}

func (a *App) buildUserStore(ctx context.Context, cfg config.Config, logger *logging.Logger) (user.Repository, error) {
	if cfg.UserStore == config.UserStoreMemory {
		logger.Info("user store ready", "backend", config.UserStoreMemory)
		return memory.NewUserRepository(), nil
	}

	db, err := openPostgres(ctx, cfg.DBURL, cfg.DBDisablePreparedBinary)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, db.Close)

	logger.Info("user store ready", "backend", config.UserStorePostgres, "db_name", databaseName(cfg.DBURL))
	return postgres.NewUserRepository(db), nil
}

func tracedHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

func circuitBreakerConfig(p config.ProviderConfig) resilience.CircuitBreakerConfig {
	return resilience.NormalizeCircuitBreakerConfig(resilience.CircuitBreakerConfig{
		Enabled:          p.CircuitEnabled,
		FailureThreshold: p.CircuitFailureCount,
		OpenTimeout:      p.CircuitOpenTimeout,
		HalfOpenMaxReq:   p.CircuitHalfOpenMaxReq,
	})
}
