// Package upstream talks to the OpenDota HTTP API.
package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultLiveURL = "https://api.opendota.com/api/live"
	DefaultProURL  = "https://api.opendota.com/api/proMatches"
	DefaultTimeout = 15 * time.Second
)

// Config holds the upstream endpoints and call limits
type Config struct {
	LiveURL  string        `mapstructure:"live_url"`
	ProURL   string        `mapstructure:"pro_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Coalesce bool          `mapstructure:"coalesce"`
}

// DefaultConfig returns the public OpenDota endpoints
func DefaultConfig() *Config {
	return &Config{
		LiveURL: DefaultLiveURL,
		ProURL:  DefaultProURL,
		Timeout: DefaultTimeout,
	}
}

// HTTPError is returned when the upstream answers with a non-200 status
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("OpenDota upstream error %d", e.StatusCode)
}

// Client issues single GET requests against the upstream API.
// There are no retries; every failure is returned to the caller.
type Client struct {
	http   *http.Client
	config *Config
	logger *zap.Logger
}

// NewClient creates a client whose requests are bounded by config.Timeout
func NewClient(config *Config, logger *zap.Logger) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		http:   &http.Client{Timeout: timeout},
		config: config,
		logger: logger,
	}
}

// LiveURL returns the live-matches endpoint with query appended when non-empty
func (c *Client) LiveURL(query string) string {
	if query == "" {
		return c.config.LiveURL
	}
	return c.config.LiveURL + "?" + query
}

// ProURL returns the recent pro matches endpoint
func (c *Client) ProURL() string {
	return c.config.ProURL
}

// Fetch GETs url and returns the body of a 200 response
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build upstream request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("upstream request failed", zap.Error(err), zap.String("url", url))
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("upstream returned non-200 status",
			zap.String("url", url),
			zap.Int("status_code", resp.StatusCode))
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: url}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream response: %w", err)
	}

	c.logger.Debug("upstream request completed",
		zap.String("url", url),
		zap.Int("bytes", len(body)),
		zap.Duration("latency", time.Since(start)))

	return body, nil
}
