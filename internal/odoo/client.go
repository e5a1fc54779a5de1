package odoo

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bmya/odoo-gateway/internal/domain/errors"
)

const (
	// DefaultTimeout is the total per-call timeout when none is configured.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxRetries is the number of additional attempts after the
	// first failure.
	DefaultMaxRetries = 3

	// DefaultBackoffBase is the delay before the first retry; it doubles
	// per attempt (1s, 2s, 4s, ...).
	DefaultBackoffBase = 1 * time.Second
)

// retryableStatuses are the HTTP statuses treated as transient. The set is
// method-agnostic even though the client only ever issues POST.
var retryableStatuses = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// ClientConfig holds the configuration for an Odoo client.
type ClientConfig struct {
	// URL is the base address of the Odoo instance. A trailing slash is
	// removed.
	URL string
	// Database is the tenant database name, sent as X-Odoo-Database.
	Database string
	// APIKey is the bearer credential.
	APIKey string

	// Timeout is the total per-call timeout. Defaults to DefaultTimeout.
	Timeout time.Duration
	// MaxRetries is the number of additional attempts after the first
	// failure. Defaults to DefaultMaxRetries.
	MaxRetries int
	// BackoffBase is the initial retry delay. Defaults to
	// DefaultBackoffBase.
	BackoffBase time.Duration

	// Logger is the client logger. Defaults to the global logger.
	Logger *zerolog.Logger
}

// Client is a client for one Odoo instance and database. Its endpoint
// identity never changes after construction; callers needing a different
// tenant construct a new client. The client performs no network activity at
// construction time and is safe for concurrent use.
type Client struct {
	url      string
	database string
	apiKey   string

	timeout     time.Duration
	maxRetries  int
	backoffBase time.Duration

	httpClient *http.Client
	logger     zerolog.Logger
	sleep      func(time.Duration)
}

// NewClient creates a new Odoo client. It fails with a configuration error
// when any identity field is empty.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.NewConfigurationError("odoo URL is required")
	}
	if cfg.Database == "" {
		return nil, errors.NewConfigurationError("odoo database is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.NewConfigurationError("odoo API key is required")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	maxRetries := cfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = DefaultMaxRetries
	}
	backoffBase := cfg.BackoffBase
	if backoffBase == 0 {
		backoffBase = DefaultBackoffBase
	}
	logger := log.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	c := &Client{
		url:         strings.TrimRight(cfg.URL, "/"),
		database:    cfg.Database,
		apiKey:      cfg.APIKey,
		timeout:     timeout,
		maxRetries:  maxRetries,
		backoffBase: backoffBase,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: logger,
		sleep:  time.Sleep,
	}

	c.logger.Info().
		Str("database", c.database).
		Str("url", c.url).
		Msg("initialized odoo client")

	return c, nil
}

// URL returns the normalized base address.
func (c *Client) URL() string { return c.url }

// Database returns the tenant database name.
func (c *Client) Database() string { return c.database }

// Timeout returns the total per-call timeout.
func (c *Client) Timeout() time.Duration { return c.timeout }

// SetSleep replaces the retry backoff sleep function (for testing purposes).
func (c *Client) SetSleep(fn func(time.Duration)) { c.sleep = fn }

// call issues one logical request to <base>/json/2/<model>/<method>,
// retrying transient failures with exponential backoff, and returns the
// decoded response body.
func (c *Client) call(ctx context.Context, model, method string, payload map[string]any) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/json/2/%s/%s", c.url, model, method)

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.NewConfigurationError(fmt.Sprintf("unencodable payload for %s.%s: %v", model, method, err))
	}

	start := time.Now()
	c.logger.Debug().
		Str("endpoint", endpoint).
		RawJSON("payload", body).
		Msg("making odoo request")

	var lastConnErr error
	backoff := c.backoffBase

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, errors.NewConfigurationError(fmt.Sprintf("invalid request for %s: %v", endpoint, err))
		}
		c.setHeaders(req)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if isTimeout(err) {
				c.logger.Error().Str("endpoint", endpoint).Dur("timeout", c.timeout).Msg("odoo request timed out")
				return nil, errors.NewTimeoutError(c.timeout, err)
			}

			// Connection-level failure: retryable until attempts run out.
			lastConnErr = err
			if attempt < c.maxRetries {
				c.logger.Warn().
					Err(err).
					Str("endpoint", endpoint).
					Int("attempt", attempt+1).
					Dur("backoff", backoff).
					Msg("odoo connection failed, retrying")
				c.sleep(backoff)
				backoff *= 2
				continue
			}
			return nil, errors.NewConnectivityError(lastConnErr)
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, errors.NewConnectivityError(readErr)
		}

		if retryableStatuses[resp.StatusCode] && attempt < c.maxRetries {
			c.logger.Warn().
				Int("status", resp.StatusCode).
				Str("endpoint", endpoint).
				Int("attempt", attempt+1).
				Dur("backoff", backoff).
				Msg("odoo returned transient status, retrying")
			c.sleep(backoff)
			backoff *= 2
			continue
		}

		c.logger.Debug().
			Int("status", resp.StatusCode).
			Dur("elapsed", time.Since(start)).
			Msg("odoo request completed")

		return c.validateResponse(resp.StatusCode, respBody)
	}

	return nil, errors.NewConnectivityError(lastConnErr)
}

// validateResponse classifies the final response of a call into a result or
// a gateway error.
func (c *Client) validateResponse(status int, body []byte) (json.RawMessage, error) {
	if status >= 400 {
		// Prefer the parsed error body; fall back to the raw text when the
		// error body is not valid JSON.
		var detail any
		if err := json.Unmarshal(body, &detail); err != nil {
			detail = string(body)
		}
		c.logger.Error().Int("status", status).Msg("odoo returned error status")
		return nil, errors.NewRemoteError(status, detail)
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, errors.NewDecodeError(err)
	}

	// The endpoint reports application-level failures as an object body
	// with an "error" key, even on HTTP 200. Array and scalar bodies are
	// legitimate results and never trigger this.
	if obj, ok := decoded.(map[string]any); ok {
		if errVal, found := obj["error"]; found {
			msg := "Unknown error"
			if errObj, ok := errVal.(map[string]any); ok {
				if m, ok := errObj["message"].(string); ok {
					msg = m
				}
			}
			c.logger.Error().Str("message", msg).Msg("odoo API returned error")
			return nil, errors.NewRemoteAppError(msg, errVal)
		}
	}

	return json.RawMessage(body), nil
}

// setHeaders sets the required headers for Odoo API requests.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Odoo-Database", c.database)
	req.Header.Set("Content-Type", "application/json")
}

// isTimeout reports whether err is a transport-level deadline failure.
func isTimeout(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return stderrors.As(err, &netErr) && netErr.Timeout()
}
