package upstream

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/football-dashboard/internal/platform/cache"
	"github.com/riskibarqy/football-dashboard/internal/platform/logging"
	"github.com/riskibarqy/football-dashboard/internal/platform/resilience"
	"github.com/riskibarqy/football-dashboard/internal/usecase"
)

const maxBodyBytes = 6 << 20

var errTransient = crerr.New("provider transient failure")

var sensitiveParams = []string{"api_token", "token", "key", "apikey"}

type Config struct {
	// Name labels the provider in logs and upstream errors.
	Name       string
	HTTPClient *http.Client
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	Headers    map[string]string
	// Secrets are replaced with REDACTED wherever they would be logged.
	Secrets []string
	Logger  *logging.Logger
	Breaker *resilience.CircuitBreaker
	Cache   cache.Loader
	Clock   clockwork.Clock
	// CheckBody rejects 2xx bodies that carry a provider level error so they are
	// neither cached nor decoded.
	CheckBody func(raw []byte) error
}

// Client performs GET requests against one provider with retries, circuit breaking
// and an optional response cache.
type Client struct {
	name       string
	httpClient *http.Client
	baseURL    string
	maxRetries int
	headers    map[string]string
	secrets    []string
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	cache      cache.Loader
	clock      clockwork.Clock
	checkBody  func(raw []byte) error
	flight     resilience.SingleFlight
}

func New(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	headers := make(map[string]string, len(cfg.Headers))
	for k, v := range cfg.Headers {
		if strings.TrimSpace(v) == "" {
			continue
		}
		headers[k] = v
	}

	secrets := make([]string, 0, len(cfg.Secrets))
	for _, s := range cfg.Secrets {
		if s = strings.TrimSpace(s); s != "" {
			secrets = append(secrets, s)
		}
	}

	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = "provider"
	}

	return &Client{
		name:       name,
		httpClient: httpClient,
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		maxRetries: max(cfg.MaxRetries, 0),
		headers:    headers,
		secrets:    secrets,
		logger:     logger,
		breaker:    cfg.Breaker,
		cache:      cfg.Cache,
		clock:      clock,
		checkBody:  cfg.CheckBody,
	}
}

func (c *Client) Name() string {
	return c.name
}

// GetJSON fetches path and decodes the body into target.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, ttl time.Duration, target any) error {
	raw, err := c.Get(ctx, path, query, ttl)
	if err != nil {
		return err
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode %s payload: %w", c.name, err)
	}
	return nil
}

// Get returns the raw body of a successful response. Successful bodies are cached
// for ttl when a cache is configured and ttl is positive.
func (c *Client) Get(ctx context.Context, path string, query url.Values, ttl time.Duration) ([]byte, error) {
	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}
	key := c.name + ":" + c.redactURL(fullURL)

	if c.cache != nil && ttl > 0 {
		return c.cache.Load(ctx, key, ttl, func(ctx context.Context) ([]byte, error) {
			return c.fetch(ctx, fullURL)
		})
	}

	out, err, _ := c.flight.Do(ctx, key, func(ctx context.Context) (any, error) {
		return c.fetch(ctx, fullURL)
	})
	if err != nil {
		return nil, err
	}
	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}
	return raw, nil
}

func (c *Client) fetch(ctx context.Context, fullURL string) ([]byte, error) {
	if c.breaker != nil {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "circuit breaker rejected request", "provider", c.name, "state", c.breaker.State())
			return nil, fmt.Errorf("%w: %s is temporarily unavailable", usecase.ErrDependencyUnavailable, c.name)
		}
	}

	raw, err := c.executeRequest(ctx, fullURL)
	if c.breaker != nil {
		if err != nil && IsTransient(err) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		return nil, err
	}
	if c.checkBody != nil {
		if err := c.checkBody(raw); err != nil {
			c.logger.WarnContext(ctx, "provider returned an error payload", "provider", c.name, "url", c.redactURL(fullURL), "error", err)
			return nil, err
		}
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		for k, v := range c.headers {
			req.Header.Set(k, v)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("%w: %w: send request: %s", usecase.ErrDependencyUnavailable, errTransient, c.sanitize(err.Error()))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: %w: read response body: %v", usecase.ErrDependencyUnavailable, errTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			default:
				upstreamErr := &usecase.UpstreamError{
					Provider:   c.name,
					StatusCode: resp.StatusCode,
					Body:       c.sanitize(abbreviateBody(raw)),
				}
				if !isRetryableStatus(resp.StatusCode) {
					c.logger.WarnContext(ctx, "provider rejected request", "provider", c.name, "url", c.redactURL(fullURL), "status", resp.StatusCode)
					return nil, upstreamErr
				}
				lastErr = fmt.Errorf("%w: %w", errTransient, upstreamErr)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := c.clock.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.Chan():
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("%w: %s request failed", usecase.ErrDependencyUnavailable, c.name)
	}
	c.logger.WarnContext(ctx, "provider request failed", "provider", c.name, "url", c.redactURL(fullURL), "error", lastErr)
	return nil, lastErr
}

// IsTransient reports whether err should count against the circuit breaker.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errTransient)
}

func (c *Client) sanitize(value string) string {
	value = strings.TrimSpace(value)
	for _, secret := range c.secrets {
		value = strings.ReplaceAll(value, secret, "REDACTED")
	}
	return value
}

func (c *Client) redactURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return c.sanitize(rawURL)
	}
	query := parsed.Query()
	changed := false
	for _, name := range sensitiveParams {
		if query.Has(name) {
			query.Set(name, "REDACTED")
			changed = true
		}
	}
	if changed {
		parsed.RawQuery = query.Encode()
	}
	return c.sanitize(parsed.String())
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
