// Package client provides the HTTP client for the ShopGoodwill ItemListing
// search endpoint: one JSON POST per page, typed errors and request metrics.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Sternrassler/goodwill-client/pkg/ratelimit"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultEndpoint is the marketplace search endpoint.
const DefaultEndpoint = "https://buyerapi.shopgoodwill.com/api/Search/ItemListing"

// Prometheus metrics for search requests.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "goodwill_requests_total",
		Help: "Total ItemListing requests by HTTP status",
	}, []string{"status"})

	requestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "goodwill_request_duration_seconds",
		Help:    "ItemListing request duration in seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
	})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "goodwill_errors_total",
		Help: "Total ItemListing errors by class",
	}, []string{"class"})
)

// ErrorClass represents a classification of request failures.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx (and other non-2xx, non-5xx) responses.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx responses.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassNetwork represents transport failures.
	ErrorClassNetwork ErrorClass = "network"

	// ErrorClassDecode represents bodies that are not the expected JSON.
	ErrorClassDecode ErrorClass = "decode"
)

// Config holds the client configuration.
type Config struct {
	// Endpoint is the full ItemListing URL
	Endpoint string

	// User-Agent header sent with every request
	UserAgent string

	// Timeout for a single page request (0 = no timeout)
	Timeout time.Duration

	// RequestInterval is the minimum spacing between page requests (0 = none)
	RequestInterval time.Duration
}

// DefaultConfig returns a configuration pointing at the live marketplace.
func DefaultConfig(userAgent string) Config {
	return Config{
		Endpoint:        DefaultEndpoint,
		UserAgent:       userAgent,
		Timeout:         30 * time.Second,
		RequestInterval: 0,
	}
}

// Client posts search configs to the ItemListing endpoint.
type Client struct {
	httpClient *http.Client
	pacer      *ratelimit.Pacer
	config     Config
	logger     zerolog.Logger
}

// New creates a new client.
func New(cfg Config) (*Client, error) {
	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("user-agent is required")
	}

	u, err := url.Parse(cfg.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("endpoint must be an absolute URL (got %q)", cfg.Endpoint)
	}

	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("timeout must be >= 0 (got %s)", cfg.Timeout)
	}

	if cfg.RequestInterval < 0 {
		return nil, fmt.Errorf("request_interval must be >= 0 (got %s)", cfg.RequestInterval)
	}

	logger := log.With().Str("component", "goodwill-client").Logger()

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		pacer:  ratelimit.NewPacer(cfg.RequestInterval, logger),
		config: cfg,
		logger: logger,
	}, nil
}

// FetchPage posts cfg as the request body and decodes one page of results.
// cfg is only read; the caller owns the page field.
func (c *Client) FetchPage(ctx context.Context, cfg SearchConfig) (*SearchResult, error) {
	body, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode search config: %w", err)
	}

	if err := c.pacer.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)

	c.logger.Debug().
		Interface("page", cfg[PageField]).
		Msg("Executing search request")

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	requestDuration.Observe(time.Since(startTime).Seconds())
	if err != nil {
		errorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		requestsTotal.WithLabelValues("network_error").Inc()
		c.logger.Error().Err(err).Msg("HTTP request failed")
		return nil, &APIError{
			Class:   ErrorClassNetwork,
			Message: "request failed",
			Err:     err,
		}
	}
	defer resp.Body.Close()

	requestsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	if class := classifyStatus(resp.StatusCode); class != "" {
		errorsTotal.WithLabelValues(string(class)).Inc()
		_, _ = io.Copy(io.Discard, resp.Body)

		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("error_class", string(class)).
			Msg("Search request error")

		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Class:      class,
			Message:    resp.Status,
		}
	}

	result, err := DecodeSearchResult(resp.Body)
	if err != nil {
		errorsTotal.WithLabelValues(string(ErrorClassDecode)).Inc()
		c.logger.Warn().Err(err).Msg("Failed to decode search response")
		return nil, err
	}

	return result, nil
}

// Endpoint returns the configured ItemListing URL.
func (c *Client) Endpoint() string {
	return c.config.Endpoint
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}
