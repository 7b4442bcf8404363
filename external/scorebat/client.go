package scorebat

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/football-dashboard/external/upstream"
	"github.com/riskibarqy/football-dashboard/internal/domain/highlight"
	"github.com/riskibarqy/football-dashboard/internal/platform/cache"
	"github.com/riskibarqy/football-dashboard/internal/platform/logging"
	"github.com/riskibarqy/football-dashboard/internal/platform/resilience"
	"github.com/riskibarqy/football-dashboard/internal/usecase"
)

const (
	DefaultBaseURL = "https://www.scorebat.com/video-api/v3"
	ProviderName   = "scorebat"

	ttlFeed = time.Hour
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

// Client reads the Scorebat highlights feed.
type Client struct {
	http  *upstream.Client
	token string
}

var _ usecase.HighlightProvider = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	token := strings.TrimSpace(cfg.Token)

	return &Client{
		token: token,
		http: upstream.New(upstream.Config{
			Name:       ProviderName,
			HTTPClient: cfg.HTTPClient,
			BaseURL:    baseURL,
			Timeout:    cfg.Timeout,
			MaxRetries: cfg.MaxRetries,
			Secrets:    []string{token},
			Logger:     cfg.Logger,
			Breaker:    resilience.NewCircuitBreaker(cfg.CircuitBreaker, cfg.Clock),
			Cache:      cfg.Cache,
			Clock:      cfg.Clock,
		}),
	}
}

type feedEnvelope struct {
	Response []highlight.Video `json:"response"`
}

func (c *Client) ListHighlights(ctx context.Context) ([]highlight.Video, error) {
	query := url.Values{}
	if c.token != "" {
		query.Set("token", c.token)
	}

	var out feedEnvelope
	if err := c.http.GetJSON(ctx, "/", query, ttlFeed, &out); err != nil {
		return nil, fmt.Errorf("list highlights: %w", err)
	}
	if out.Response == nil {
		return []highlight.Video{}, nil
	}
	return out.Response, nil
}
