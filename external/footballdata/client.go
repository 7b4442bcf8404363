package footballdata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/football-dashboard/external/upstream"
	"github.com/riskibarqy/football-dashboard/internal/domain/competition"
	"github.com/riskibarqy/football-dashboard/internal/domain/match"
	"github.com/riskibarqy/football-dashboard/internal/domain/standing"
	"github.com/riskibarqy/football-dashboard/internal/domain/team"
	"github.com/riskibarqy/football-dashboard/internal/platform/cache"
	"github.com/riskibarqy/football-dashboard/internal/platform/logging"
	"github.com/riskibarqy/football-dashboard/internal/platform/resilience"
	"github.com/riskibarqy/football-dashboard/internal/usecase"
)

const (
	DefaultBaseURL = "https://api.football-data.org/v4"
	ProviderName   = "football-data"
)

// Cache windows per resource class.
const (
	ttlMatches              = 30 * time.Second
	ttlCompetitionStandings = 300 * time.Second
	ttlCatalog              = time.Hour
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	Cache          cache.Loader
	Clock          clockwork.Clock
}

// Client reads football-data.org v4.
type Client struct {
	http *upstream.Client
}

var (
	_ usecase.CompetitionProvider = (*Client)(nil)
	_ usecase.MatchProvider       = (*Client)(nil)
	_ usecase.TeamProvider        = (*Client)(nil)
	_ usecase.AreaProvider        = (*Client)(nil)
)

func NewClient(cfg ClientConfig) *Client {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	token := strings.TrimSpace(cfg.Token)

	return &Client{
		http: upstream.New(upstream.Config{
			Name:       ProviderName,
			HTTPClient: cfg.HTTPClient,
			BaseURL:    baseURL,
			Timeout:    cfg.Timeout,
			MaxRetries: cfg.MaxRetries,
			Headers:    map[string]string{"X-Auth-Token": token},
			Secrets:    []string{token},
			Logger:     cfg.Logger,
			Breaker:    resilience.NewCircuitBreaker(cfg.CircuitBreaker, cfg.Clock),
			Cache:      cfg.Cache,
			Clock:      cfg.Clock,
		}),
	}
}

type competitionsEnvelope struct {
	Count        int                       `json:"count"`
	Competitions []competition.Competition `json:"competitions"`
}

type teamsEnvelope struct {
	Count int         `json:"count"`
	Teams []team.Team `json:"teams"`
}

type matchesEnvelope struct {
	Matches []match.Match `json:"matches"`
}

type scorersEnvelope struct {
	Count   int                  `json:"count"`
	Scorers []competition.Scorer `json:"scorers"`
}

type areasEnvelope struct {
	Count int                `json:"count"`
	Areas []competition.Area `json:"areas"`
}

func (c *Client) ListCompetitions(ctx context.Context, plan, areas string) ([]competition.Competition, error) {
	query := url.Values{}
	setIfPresent(query, "plan", plan)
	setIfPresent(query, "areas", areas)

	var out competitionsEnvelope
	if err := c.http.GetJSON(ctx, "/competitions", query, ttlCatalog, &out); err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}
	return nonNil(out.Competitions), nil
}

func (c *Client) GetCompetition(ctx context.Context, id string) (competition.Competition, error) {
	path, err := competitionPath(id, "")
	if err != nil {
		return competition.Competition{}, err
	}

	var out competition.Competition
	if err := c.http.GetJSON(ctx, path, nil, ttlCatalog, &out); err != nil {
		return competition.Competition{}, fmt.Errorf("get competition id=%s: %w", id, err)
	}
	return out, nil
}

func (c *Client) GetCompetitionStandings(ctx context.Context, id string, q standing.Query) (standing.Table, error) {
	path, err := competitionPath(id, "/standings")
	if err != nil {
		return standing.Table{}, err
	}
	query := url.Values{}
	setIfPresent(query, "matchday", q.Matchday)
	setIfPresent(query, "season", q.Season)
	setIfPresent(query, "date", q.Date)

	var out standing.Table
	if err := c.http.GetJSON(ctx, path, query, ttlCompetitionStandings, &out); err != nil {
		return standing.Table{}, fmt.Errorf("get competition standings id=%s: %w", id, err)
	}
	if out.Standings == nil {
		out.Standings = []standing.Group{}
	}
	return out, nil
}

func (c *Client) ListCompetitionScorers(ctx context.Context, id string, limit int, season string) ([]competition.Scorer, error) {
	path, err := competitionPath(id, "/scorers")
	if err != nil {
		return nil, err
	}
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	setIfPresent(query, "season", season)

	var out scorersEnvelope
	if err := c.http.GetJSON(ctx, path, query, ttlCatalog, &out); err != nil {
		return nil, fmt.Errorf("list competition scorers id=%s: %w", id, err)
	}
	return nonNil(out.Scorers), nil
}

func (c *Client) ListCompetitionTeams(ctx context.Context, id, season string) ([]team.Team, error) {
	path, err := competitionPath(id, "/teams")
	if err != nil {
		return nil, err
	}
	query := url.Values{}
	setIfPresent(query, "season", season)

	var out teamsEnvelope
	if err := c.http.GetJSON(ctx, path, query, ttlCatalog, &out); err != nil {
		return nil, fmt.Errorf("list competition teams id=%s: %w", id, err)
	}
	return nonNil(out.Teams), nil
}

func (c *Client) ListCompetitionMatches(ctx context.Context, id string, q match.Query) ([]match.Match, error) {
	path, err := competitionPath(id, "/matches")
	if err != nil {
		return nil, err
	}

	var out matchesEnvelope
	if err := c.http.GetJSON(ctx, path, matchQueryValues(q), ttlMatches, &out); err != nil {
		return nil, fmt.Errorf("list competition matches id=%s: %w", id, err)
	}
	return nonNil(out.Matches), nil
}

func (c *Client) ListMatches(ctx context.Context, q match.Query) ([]match.Match, error) {
	var out matchesEnvelope
	if err := c.http.GetJSON(ctx, "/matches", matchQueryValues(q), ttlMatches, &out); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return nonNil(out.Matches), nil
}

func (c *Client) GetTeam(ctx context.Context, id int64) (team.Team, error) {
	if id <= 0 {
		return team.Team{}, fmt.Errorf("%w: team id must be greater than zero", usecase.ErrInvalidInput)
	}

	var out team.Team
	if err := c.http.GetJSON(ctx, "/teams/"+strconv.FormatInt(id, 10), nil, ttlCatalog, &out); err != nil {
		return team.Team{}, fmt.Errorf("get team id=%d: %w", id, err)
	}
	return out, nil
}

func (c *Client) ListTeamMatches(ctx context.Context, id int64, q match.Query) ([]match.Match, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: team id must be greater than zero", usecase.ErrInvalidInput)
	}

	var out matchesEnvelope
	path := "/teams/" + strconv.FormatInt(id, 10) + "/matches"
	if err := c.http.GetJSON(ctx, path, matchQueryValues(q), ttlMatches, &out); err != nil {
		return nil, fmt.Errorf("list team matches id=%d: %w", id, err)
	}
	return nonNil(out.Matches), nil
}

func (c *Client) ListAreas(ctx context.Context) ([]competition.Area, error) {
	var out areasEnvelope
	if err := c.http.GetJSON(ctx, "/areas", nil, ttlCatalog, &out); err != nil {
		return nil, fmt.Errorf("list areas: %w", err)
	}
	return nonNil(out.Areas), nil
}

func competitionPath(id, suffix string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%w: competition id is required", usecase.ErrInvalidInput)
	}
	return "/competitions/" + url.PathEscape(id) + suffix, nil
}

func matchQueryValues(q match.Query) url.Values {
	query := url.Values{}
	setIfPresent(query, "dateFrom", q.DateFrom)
	setIfPresent(query, "dateTo", q.DateTo)
	setIfPresent(query, "status", q.Status)
	setIfPresent(query, "competitions", q.Competitions)
	setIfPresent(query, "stage", q.Stage)
	setIfPresent(query, "matchday", q.Matchday)
	setIfPresent(query, "group", q.Group)
	setIfPresent(query, "season", q.Season)
	setIfPresent(query, "venue", q.Venue)
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}
	return query
}

func setIfPresent(query url.Values, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		query.Set(key, value)
	}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
