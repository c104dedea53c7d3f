package upstream

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the production Bot API endpoint.
const DefaultBaseURL = "https://api.telegram.org"

// Config contains configuration for the upstream client.
type Config struct {
	// BaseURL is the Bot API base URL. Default: DefaultBaseURL.
	BaseURL string

	// Timeout bounds every outbound call, including the token gate check.
	// Default: 10 seconds.
	Timeout time.Duration

	// MaxIdleConns is the connection pool size. Default: 100.
	MaxIdleConns int

	// MaxIdleConnsPerHost bounds idle connections per host. Default: 10.
	MaxIdleConnsPerHost int

	// IdleConnTimeout is how long idle connections are kept. Default: 90s.
	IdleConnTimeout time.Duration
}

// DefaultConfig returns the default upstream client configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:             DefaultBaseURL,
		Timeout:             10 * time.Second,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
}

// Response is a raw upstream response. Body is the exact bytes received;
// callers relaying it must not transform or re-serialize it.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Client issues Bot API calls over a pooled HTTP transport.
type Client struct {
	config Config
	client *http.Client
	logger *slog.Logger
}

// NewClient creates a new upstream client.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	if config.MaxIdleConns <= 0 {
		config.MaxIdleConns = 100
	}
	if config.MaxIdleConnsPerHost <= 0 {
		config.MaxIdleConnsPerHost = 10
	}
	if config.IdleConnTimeout <= 0 {
		config.IdleConnTimeout = 90 * time.Second
	}

	transport := &http.Transport{
		MaxIdleConns:        config.MaxIdleConns,
		MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
		IdleConnTimeout:     config.IdleConnTimeout,
		ForceAttemptHTTP2:   true,
	}

	return &Client{
		config: config,
		client: &http.Client{
			Transport: transport,
			Timeout:   config.Timeout,
		},
		logger: slog.Default().With("component", "upstream"),
	}
}

// Call issues a single Bot API method call and reads the full response. The
// supplied header is sent as-is; callers apply their allow-list before
// calling. Transport failures are returned as errors; upstream error statuses
// are returned as a normal Response.
func (c *Client) Call(ctx context.Context, token, method, httpMethod string, query url.Values, body []byte, header http.Header) (*Response, error) {
	callURL := fmt.Sprintf("%s/bot%s/%s", c.config.BaseURL, token, method)
	if len(query) > 0 {
		callURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, httpMethod, callURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("upstream: create request: %w", err)
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream: %s %s: %w", httpMethod, method, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("upstream: read response: %w", err)
	}

	c.logger.Debug("upstream call completed",
		"method", method,
		"http_method", httpMethod,
		"status", resp.StatusCode,
		"latency_ms", time.Since(start).Milliseconds(),
	)

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}
