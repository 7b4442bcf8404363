package apifootball

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/football-dashboard/external/upstream"
	"github.com/riskibarqy/football-dashboard/internal/domain/fixture"
	"github.com/riskibarqy/football-dashboard/internal/domain/player"
	"github.com/riskibarqy/football-dashboard/internal/domain/standing"
	"github.com/riskibarqy/football-dashboard/internal/domain/transfer"
	"github.com/riskibarqy/football-dashboard/internal/platform/cache"
	"github.com/riskibarqy/football-dashboard/internal/platform/logging"
	"github.com/riskibarqy/football-dashboard/internal/platform/resilience"
	"github.com/riskibarqy/football-dashboard/internal/usecase"
)

const (
	DefaultBaseURL = "https://v3.football.api-sports.io"
	DefaultHost    = "v3.football.api-sports.io"
	ProviderName   = "api-football"
)

const (
	ttlFixtures  = 15 * time.Second
	ttlStandings = 1800 * time.Second
	ttlCatalog   = time.Hour
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Key            string
	Host           string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	Cache          cache.Loader
	Clock          clockwork.Clock
}

// Client reads API-Football v3 through the RapidAPI style headers.
type Client struct {
	http *upstream.Client
}

var (
	_ usecase.PlayerProvider   = (*Client)(nil)
	_ usecase.FixtureProvider  = (*Client)(nil)
	_ usecase.StandingProvider = (*Client)(nil)
	_ usecase.TransferProvider = (*Client)(nil)
)

func NewClient(cfg ClientConfig) *Client {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = DefaultHost
	}
	key := strings.TrimSpace(cfg.Key)

	return &Client{
		http: upstream.New(upstream.Config{
			Name:       ProviderName,
			HTTPClient: cfg.HTTPClient,
			BaseURL:    baseURL,
			Timeout:    cfg.Timeout,
			MaxRetries: cfg.MaxRetries,
			Headers: map[string]string{
				"X-RapidAPI-Key":  key,
				"X-RapidAPI-Host": host,
			},
			Secrets:   []string{key},
			Logger:    cfg.Logger,
			Breaker:   resilience.NewCircuitBreaker(cfg.CircuitBreaker, cfg.Clock),
			Cache:     cfg.Cache,
			Clock:     cfg.Clock,
			CheckBody: checkEnvelopeErrors,
		}),
	}
}

// ProbeLeague checks that the key and season are usable before a long player scan.
func (c *Client) ProbeLeague(ctx context.Context, leagueID int64, season int) error {
	query := url.Values{}
	query.Set("id", strconv.FormatInt(leagueID, 10))
	query.Set("season", strconv.Itoa(season))

	var out envelope[leagueItem]
	if err := c.get(ctx, "/leagues", query, ttlCatalog, &out); err != nil {
		return fmt.Errorf("probe league id=%d season=%d: %w", leagueID, season, err)
	}
	return nil
}

func (c *Client) ListPlayersPage(ctx context.Context, leagueID int64, season, page int) (usecase.PlayerPage, error) {
	if page < 1 {
		page = 1
	}
	query := url.Values{}
	query.Set("league", strconv.FormatInt(leagueID, 10))
	query.Set("season", strconv.Itoa(season))
	query.Set("page", strconv.Itoa(page))

	var out envelope[playerItem]
	if err := c.get(ctx, "/players", query, ttlCatalog, &out); err != nil {
		return usecase.PlayerPage{}, fmt.Errorf("list players league=%d season=%d page=%d: %w", leagueID, season, page, err)
	}

	players := make([]player.Player, 0, len(out.Response))
	for _, item := range out.Response {
		players = append(players, item.toDomain())
	}
	return usecase.PlayerPage{
		Players: players,
		Current: out.Paging.Current,
		Total:   out.Paging.Total,
	}, nil
}

func (c *Client) ListFixtures(ctx context.Context, q fixture.Query) ([]fixture.Fixture, error) {
	query := url.Values{}
	setIfPresent(query, "live", q.Live)
	setIfPresent(query, "date", q.Date)
	setIfPresent(query, "league", q.League)
	setIfPresent(query, "team", q.Team)
	setIfPresent(query, "next", q.Next)
	setIfPresent(query, "last", q.Last)
	setIfPresent(query, "status", q.Status)
	setIfPresent(query, "season", q.Season)

	var out envelope[fixtureItem]
	if err := c.get(ctx, "/fixtures", query, ttlFixtures, &out); err != nil {
		return nil, fmt.Errorf("list fixtures: %w", err)
	}

	items := make([]fixture.Fixture, 0, len(out.Response))
	for _, item := range out.Response {
		items = append(items, item.toDomain())
	}
	return items, nil
}

// ListStandings returns the first table of the league, which is the overall table
// for league competitions.
func (c *Client) ListStandings(ctx context.Context, league, season string) ([]standing.Row, error) {
	query := url.Values{}
	setIfPresent(query, "league", league)
	setIfPresent(query, "season", season)

	var out envelope[standingsItem]
	if err := c.get(ctx, "/standings", query, ttlStandings, &out); err != nil {
		return nil, fmt.Errorf("list standings league=%s season=%s: %w", league, season, err)
	}
	if len(out.Response) == 0 || len(out.Response[0].League.Standings) == 0 {
		return []standing.Row{}, nil
	}
	rows := out.Response[0].League.Standings[0]
	if rows == nil {
		return []standing.Row{}, nil
	}
	return rows, nil
}

func (c *Client) ListTransfers(ctx context.Context, q transfer.Query) ([]transfer.Item, error) {
	query := url.Values{}
	setIfPresent(query, "team", q.Team)
	setIfPresent(query, "player", q.Player)

	var out envelope[transferItem]
	if err := c.get(ctx, "/transfers", query, ttlCatalog, &out); err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}

	items := make([]transfer.Item, 0, len(out.Response))
	for _, item := range out.Response {
		items = append(items, item.toDomain())
	}
	return items, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, ttl time.Duration, target any) error {
	return c.http.GetJSON(ctx, path, query, ttl, target)
}

func checkEnvelopeErrors(raw []byte) error {
	var head struct {
		Errors any `json:"errors"`
	}
	if err := sonic.Unmarshal(raw, &head); err != nil {
		return fmt.Errorf("decode %s payload: %w", ProviderName, err)
	}
	return errorsToUpstream(head.Errors)
}

// errorsToUpstream converts the API-Football "errors" field, which is an empty array on
// success and an object keyed by error kind otherwise, into an UpstreamError.
func errorsToUpstream(raw any) error {
	var messages map[string]string
	switch v := raw.(type) {
	case map[string]any:
		if len(v) == 0 {
			return nil
		}
		messages = make(map[string]string, len(v))
		for key, value := range v {
			messages[key] = fmt.Sprint(value)
		}
	case []any:
		if len(v) == 0 {
			return nil
		}
		messages = make(map[string]string, len(v))
		for i, value := range v {
			messages[strconv.Itoa(i)] = fmt.Sprint(value)
		}
	default:
		return nil
	}

	keys := make([]string, 0, len(messages))
	for key := range messages {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	status := http.StatusBadRequest
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		switch strings.ToLower(key) {
		case "token", "access":
			status = http.StatusForbidden
		case "requests", "ratelimit":
			status = http.StatusTooManyRequests
		}
		parts = append(parts, key+": "+messages[key])
	}

	return &usecase.UpstreamError{
		Provider:   ProviderName,
		StatusCode: status,
		Body:       strings.Join(parts, "; "),
	}
}

func setIfPresent(query url.Values, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		query.Set(key, value)
	}
}
