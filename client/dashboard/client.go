// Package dashboard is a typed client of the football-dashboard HTTP API.
package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/football-dashboard/internal/domain/competition"
	"github.com/riskibarqy/football-dashboard/internal/domain/user"
)

const maxResponseBytes = 8 << 20

type ClientConfig struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client calls the dashboard API. A token set by Login is sent as a bearer
// credential on later calls.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

func NewClient(cfg ClientConfig) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		httpClient: httpClient,
	}
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// APIError is an error envelope returned by the API.
type APIError struct {
	Status  int
	Reason  string
	Message string
}

func (e *APIError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("dashboard api: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("dashboard api: status %d (%s): %s", e.Status, e.Reason, e.Message)
}

type envelope struct {
	APIVersion string          `json:"apiVersion"`
	Data       json.RawMessage `json:"data"`
	Error      *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

func (c *Client) Competitions(ctx context.Context) ([]competition.Competition, error) {
	var out struct {
		Competitions []competition.Competition `json:"competitions"`
	}
	if err := c.get(ctx, "/api/competitions", nil, &out); err != nil {
		return nil, err
	}
	return out.Competitions, nil
}

func (c *Client) Matches(ctx context.Context, q MatchQuery) (Matches, error) {
	var out Matches
	err := c.get(ctx, "/api/matches", q.values(), &out)
	return out, err
}

func (c *Client) Standings(ctx context.Context, q StandingsQuery) (Standings, error) {
	var out Standings
	err := c.get(ctx, "/api/standings", q.values(), &out)
	return out, err
}

func (c *Client) Teams(ctx context.Context, q TeamQuery) (Teams, error) {
	var out Teams
	err := c.get(ctx, "/api/teams", q.values(), &out)
	return out, err
}

func (c *Client) Players(ctx context.Context, q PlayerQuery) (Players, error) {
	var out Players
	err := c.get(ctx, "/api/players", q.values(), &out)
	return out, err
}

func (c *Client) Fixtures(ctx context.Context, q FixtureQuery) (Fixtures, error) {
	var out Fixtures
	err := c.get(ctx, "/api/fixtures", q.values(), &out)
	return out, err
}

func (c *Client) Transfers(ctx context.Context, q TransferQuery) (Transfers, error) {
	var out Transfers
	err := c.get(ctx, "/api/transfers", q.values(), &out)
	return out, err
}

func (c *Client) Signup(ctx context.Context, email, password, name string) (user.User, error) {
	var out struct {
		Message string    `json:"message"`
		User    user.User `json:"user"`
	}
	body := map[string]string{"email": email, "password": password, "name": name}
	if err := c.post(ctx, "/api/auth/signup", body, &out); err != nil {
		return user.User{}, err
	}
	return out.User, nil
}

// Login stores the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	var out Session
	body := map[string]string{"email": email, "password": password}
	if err := c.post(ctx, "/api/auth/login", body, &out); err != nil {
		return Session{}, err
	}
	c.SetToken(out.Token)
	return out, nil
}

func (c *Client) Me(ctx context.Context) (user.Principal, error) {
	var out user.Principal
	err := c.get(ctx, "/api/auth/me", nil, &out)
	return out, err
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	raw, err := sonic.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read %s response: %w", req.URL.Path, err)
	}

	var env envelope
	if err := sonic.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
		}
		return fmt.Errorf("decode %s envelope: %w", req.URL.Path, err)
	}
	if env.Error != nil || resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		if env.Error != nil {
			apiErr.Message = env.Error.Message
			if len(env.Error.Errors) > 0 {
				apiErr.Reason = env.Error.Errors[0].Reason
			}
		}
		return apiErr
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode %s data: %w", req.URL.Path, err)
	}
	return nil
}

func setIfNotEmpty(values url.Values, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		values.Set(key, value)
	}
}

func setIfPositive(values url.Values, key string, value int) {
	if value > 0 {
		values.Set(key, strconv.Itoa(value))
	}
}
