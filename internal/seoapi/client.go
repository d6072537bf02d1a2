package seoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/seoscan/seoscan/internal/rate"
)

// Default client settings. Polling defaults are generous because SERP
// and crawl tasks routinely take tens of seconds on the provider side.
const (
	// DefaultRequestInterval is the minimum spacing between API calls.
	DefaultRequestInterval = 1 * time.Second

	// DefaultPollInterval is the spacing between task status checks.
	DefaultPollInterval = 2 * time.Second

	// DefaultMaxPollAttempts caps the poll loop; a task still pending
	// after this many checks fails with ErrPollTimeout.
	DefaultMaxPollAttempts = 30

	// maxErrorBodySize limits how much of an error response body is
	// kept in an APIError.
	maxErrorBodySize = 2048
)

// Client issues authenticated requests to the SEO data provider.
// Every request waits on the rate gate first, so callers never need to
// insert delays themselves.
type Client struct {
	// httpClient performs the actual HTTP requests.
	httpClient *http.Client

	// baseURL is the provider's API root, without a trailing slash.
	baseURL string

	// apiKey authenticates requests via the Authorization header.
	apiKey string

	// gate spaces out requests to respect provider rate limits.
	gate *rate.Gate

	// pollInterval and maxPollAttempts bound the task poll loop.
	pollInterval    time.Duration
	maxPollAttempts int

	// logger for structured logging.
	logger *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client. Used in tests with
// httptest servers.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRequestInterval sets the minimum spacing between API calls.
func WithRequestInterval(d time.Duration) ClientOption {
	return func(c *Client) {
		c.gate = rate.NewGate(d)
	}
}

// WithGate sets a pre-built rate gate, replacing the default.
func WithGate(g *rate.Gate) ClientOption {
	return func(c *Client) {
		c.gate = g
	}
}

// WithPollInterval sets the spacing between task status checks.
func WithPollInterval(d time.Duration) ClientOption {
	return func(c *Client) {
		c.pollInterval = d
	}
}

// WithMaxPollAttempts caps the number of task status checks.
func WithMaxPollAttempts(n int) ClientOption {
	return func(c *Client) {
		c.maxPollAttempts = n
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a provider client for the given base URL and API key.
func NewClient(baseURL, apiKey string, opts ...ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	c := &Client{
		httpClient:      &http.Client{Timeout: 60 * time.Second},
		baseURL:         baseURL,
		apiKey:          apiKey,
		gate:            rate.NewGate(DefaultRequestInterval),
		pollInterval:    DefaultPollInterval,
		maxPollAttempts: DefaultMaxPollAttempts,
		logger:          slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Request posts the payload to the given endpoint and returns the raw
// JSON response. Non-2xx responses yield an *APIError with the status
// and body preserved. The call blocks on the rate gate first.
func (c *Client) Request(ctx context.Context, endpoint string, payload any) (json.RawMessage, error) {
	if err := c.gate.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request payload: %w", err)
	}

	url := c.baseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.logger.Debug("api request", "endpoint", endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 50*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errBody := respBody
		if len(errBody) > maxErrorBodySize {
			errBody = errBody[:maxErrorBodySize]
		}
		return nil, &APIError{Status: resp.StatusCode, Body: string(errBody)}
	}

	return json.RawMessage(respBody), nil
}

// Poll repeatedly invokes check on a fixed interval until it reports
// done, the attempt cap is reached, or ctx is cancelled. When the cap is
// exhausted the returned error wraps ErrPollTimeout.
func (c *Client) Poll(ctx context.Context, taskName string, check func(ctx context.Context) (done bool, err error)) error {
	for attempt := 1; attempt <= c.maxPollAttempts; attempt++ {
		done, err := check(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		c.logger.Debug("task pending",
			"task", taskName,
			"attempt", attempt,
			"max_attempts", c.maxPollAttempts,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}

	return fmt.Errorf("%s: %w after %d attempts", taskName, ErrPollTimeout, c.maxPollAttempts)
}
