// Package client implements a synchronous HTTP client for a TSFM
// (time-series foundation model) forecasting service. A Client submits a
// univariate series and a forecast horizon and receives a point forecast,
// optionally with confidence intervals.
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"tsfm/history"
)

const (
	// DefaultBaseURL is where a locally run forecasting server listens.
	DefaultBaseURL = "http://localhost:8000"

	// APIKeyEnv is the environment variable consulted when no key is
	// configured explicitly.
	APIKeyEnv = "TSFM_API_KEY"

	defaultTimeout     = 30 * time.Second
	defaultMaxAttempts = 3
	defaultBackoff     = 500 * time.Millisecond
	defaultCacheTTL    = 5 * time.Minute
	modelCacheSize     = 32
)

var validate = validator.New()

// Client is a synchronous TSFM API client. It is safe for concurrent use.
type Client struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	maxAttempts int
	backoff     time.Duration
	logger      *zap.Logger
	store       *history.Store

	modelCache *lru.LRU[string, *ModelInfo]
	listCache  *lru.LRU[string, []string]
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a non-default service endpoint.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(url, "/") }
}

// WithAPIKey sets the API credential explicitly instead of reading it from
// the environment.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithTimeout bounds each HTTP request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetry configures how many times a request is attempted and the base
// backoff between attempts. Attempts below 1 are treated as 1.
func WithRetry(maxAttempts int, backoff time.Duration) Option {
	return func(c *Client) {
		if maxAttempts < 1 {
			maxAttempts = 1
		}
		c.maxAttempts = maxAttempts
		c.backoff = backoff
	}
}

// WithLogger attaches a zap logger for request-level debug logging.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithHistory records every prediction call into the given store.
func WithHistory(store *history.Store) Option {
	return func(c *Client) { c.store = store }
}

// WithModelCacheTTL overrides how long model listings and model info are
// served from cache.
func WithModelCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.modelCache = lru.NewLRU[string, *ModelInfo](modelCacheSize, nil, ttl)
		c.listCache = lru.NewLRU[string, []string](1, nil, ttl)
	}
}

// New creates a TSFM client. The API key falls back to the TSFM_API_KEY
// environment variable and the endpoint to http://localhost:8000.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		baseURL:     DefaultBaseURL,
		httpClient:  &http.Client{Timeout: defaultTimeout},
		maxAttempts: defaultMaxAttempts,
		backoff:     defaultBackoff,
		logger:      zap.NewNop(),
		modelCache:  lru.NewLRU[string, *ModelInfo](modelCacheSize, nil, defaultCacheTTL),
		listCache:   lru.NewLRU[string, []string](1, nil, defaultCacheTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.apiKey == "" {
		c.apiKey = os.Getenv(APIKeyEnv)
	}
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	return c, nil
}

// doJSON issues one API request with retry and decodes a 2xx response body
// into out. body may be nil for GET requests.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	url := c.baseURL + path
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			backoff := c.backoff * time.Duration(1<<(attempt-2))
			c.logger.Debug("retrying request",
				zap.String("path", path),
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		lastErr = c.doOnce(ctx, method, url, payload, out)
		if lastErr == nil {
			return nil
		}
		if !retryable(lastErr) {
			return lastErr
		}
	}
	return lastErr
}

func (c *Client) doOnce(ctx context.Context, method, url string, payload []byte, out any) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type apiErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body apiErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Code = body.Error.Code
		apiErr.Message = body.Error.Message
	}
	return apiErr
}

// retryable reports whether an attempt failed in a way a later attempt could
// succeed: transport errors and gateway-class statuses.
func retryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}
