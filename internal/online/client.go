package online

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/listenupapp/beatmap-server/internal/ratelimit"
)

const (
	defaultBaseURL = "https://osu.ppy.sh"
	defaultRPS     = 1.0
	defaultBurst   = 3
	defaultTimeout = 30 * time.Second

	userAgent = "beatmap-server/1.0"
)

// ClientConfig configures a Client. Zero values select the defaults.
type ClientConfig struct {
	BaseURL           string
	AccessToken       string // Sent as a bearer token when set
	RequestsPerSecond float64
	Burst             int
	Timeout           time.Duration
}

// Client is a rate-limited client for the online beatmap API.
// It fetches and decodes payloads; it does not retry or cache.
type Client struct {
	http    *http.Client
	limiter *ratelimit.KeyedRateLimiter
	baseURL *url.URL
	token   string
	logger  *slog.Logger
}

// New creates a new online API client.
func New(cfg ClientConfig, logger *slog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = defaultRPS
	}
	if cfg.Burst <= 0 {
		cfg.Burst = defaultBurst
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", cfg.BaseURL)
	}

	return &Client{
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: ratelimit.New(cfg.RequestsPerSecond, cfg.Burst),
		baseURL: base,
		token:   cfg.AccessToken,
		logger:  logger,
	}, nil
}

// Close releases resources held by the client.
func (c *Client) Close() {
	c.limiter.Stop()
}

// GetBeatmapSet fetches and decodes a single beatmap set.
func (c *Client) GetBeatmapSet(ctx context.Context, id int) (*BeatmapSet, error) {
	if id <= 0 {
		return nil, wrapError("getBeatmapSet", id, ErrBadRequest)
	}

	body, err := c.doRequest(ctx, "/api/v2/beatmapsets/"+strconv.Itoa(id), nil)
	if err != nil {
		return nil, wrapError("getBeatmapSet", id, err)
	}

	set, err := Decode(body)
	if err != nil {
		return nil, wrapError("getBeatmapSet", id, err)
	}

	return set, nil
}

// doRequest executes a GET request with rate limiting and maps error statuses.
func (c *Client) doRequest(ctx context.Context, p string, query url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx, c.baseURL.Host); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := *c.baseURL
	u.Path = path.Join(u.Path, p)
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debug("online request",
		"host", u.Host,
		"path", u.Path,
	)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case http.StatusBadRequest:
		return nil, ErrBadRequest
	default:
		if resp.StatusCode >= 500 {
			return nil, ErrServer
		}
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
}
