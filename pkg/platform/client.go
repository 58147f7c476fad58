// Package platform is the typed client for the Skill Bridge platform REST API.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/skillbridge/mobile-gateway/internal/observability"
)

var (
	// ErrUnauthorized indicates the platform rejected the bearer token or credentials.
	ErrUnauthorized = errors.New("platform: unauthorized")
	// ErrNotFound indicates the requested resource does not exist upstream.
	ErrNotFound = errors.New("platform: not found")
)

// APIError carries a non-2xx platform response that has no dedicated sentinel.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("platform: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("platform: status %d: %s", e.StatusCode, e.Message)
}

// Config contains the platform connection settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the platform API. It holds no credentials; every call is given
// the bearer token of the session it runs for.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// New constructs a platform client.
func New(cfg Config, logger zerolog.Logger) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("platform base url must be provided")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("invalid platform base url: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: base,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger.With().Str("component", "platform_client").Logger(),
	}, nil
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do executes a request and decodes a JSON body into out when out is non-nil.
// resource is a low-cardinality label for metrics.
func (c *Client) do(ctx context.Context, method, path, token, resource string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", resource, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", resource, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	authorize(req, token)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observability.UpstreamLatency().WithLabelValues(resource, "transport_error").Observe(time.Since(start).Seconds())
		return fmt.Errorf("%s request failed: %w", resource, err)
	}
	defer resp.Body.Close()

	observability.UpstreamLatency().WithLabelValues(resource, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.statusError(resp, resource)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", resource, err)
	}

	return nil
}

func (c *Client) statusError(resp *http.Response, resource string) error {
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}

	var parsed errorBody
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &parsed)
	}
	message := parsed.Message
	if message == "" {
		message = parsed.Error
	}

	c.logger.Warn().Str("resource", resource).Int("status", resp.StatusCode).Str("message", message).Msg("platform request failed")

	return &APIError{StatusCode: resp.StatusCode, Message: message}
}

// authorize attaches the session's bearer token. Anonymous calls pass an empty token.
func authorize(req *http.Request, token string) {
	if token = strings.TrimSpace(token); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}
