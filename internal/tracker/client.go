// Package tracker is a thin authenticated JSON client for the Jira Cloud
// REST API (v3). It owns the base URL and credentials, applies a fixed
// per-call timeout, and turns non-2xx responses and deadlines into typed
// errors (see errors.go).
package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/HendryAvila/jira-mcp/internal/config"
	"github.com/HendryAvila/jira-mcp/internal/metrics"
)

const (
	// APIPrefix is prepended to every request path.
	APIPrefix = "/rest/api/3"

	// DefaultTimeout bounds every call, connection included.
	DefaultTimeout = 20 * time.Second
)

// Client issues GET and POST requests against the tracker.
// It is safe for concurrent use.
type Client struct {
	baseURL   string
	email     string
	token     string
	userAgent string
	timeout   time.Duration

	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout overrides DefaultTimeout. Intended for tests.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithMetrics records every call in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithLogger sets the logger used for per-call debug lines.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient creates a Client from the loaded configuration.
func NewClient(cfg *config.Config, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(cfg.TrackerURL, "/"),
		email:      cfg.TrackerEmail,
		token:      cfg.TrackerToken,
		userAgent:  "jira-mcp",
		timeout:    DefaultTimeout,
		httpClient: &http.Client{},
		logger:     zap.NewNop(),
	}
	if cfg.RateLimit > 0 {
		burst := int(cfg.RateLimit)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get sends a GET with the given query parameters and returns the JSON body.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

// Post sends payload as JSON and returns the JSON body. An empty response
// body is returned as an empty object.
func (c *Client) Post(ctx context.Context, path string, payload any) (json.RawMessage, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, path, nil, data)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return json.RawMessage(`{}`), nil
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload []byte) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	status := 0
	defer func() {
		if c.metrics != nil {
			c.metrics.ObserveTrackerRequest(method, status, time.Since(start))
		}
	}()

	if c.limiter != nil {
		// Wait fails only when the deadline passes or would pass first.
		if err := c.limiter.Wait(ctx); err != nil {
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil, fmt.Errorf("waiting for rate limiter: %w", err)
			}
			return nil, &TimeoutError{Method: method, Path: path, Err: err}
		}
	}

	endpoint := c.baseURL + APIPrefix + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.SetBasicAuth(c.email, c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, &TimeoutError{Method: method, Path: path, Err: err}
		}
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()
	status = resp.StatusCode

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, &TimeoutError{Method: method, Path: path, Err: err}
		}
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	c.logger.Debug("tracker call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("duration", time.Since(start)),
	)

	if status < 200 || status >= 300 {
		return nil, &StatusError{StatusCode: status, Body: string(body)}
	}
	return body, nil
}

// IssuePath builds "/issue/{key}" followed by any extra segments, escaping
// the key.
func IssuePath(key string, segments ...string) string {
	p := "/issue/" + url.PathEscape(key)
	for _, s := range segments {
		p += "/" + s
	}
	return p
}

// API is the subset of Client used by the workflow resolver and the tools.
type API interface {
	Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error)
	Post(ctx context.Context, path string, payload any) (json.RawMessage, error)
}

var _ API = (*Client)(nil)
