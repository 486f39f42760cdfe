// Package ratelimit spaces out sequential requests to the marketplace API.
// It never retries and never runs requests in parallel; it only delays the
// next request until the configured interval has passed.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Prometheus metrics for request pacing.
var (
	pacerWaitSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "goodwill_pacer_wait_seconds",
		Help:    "Time spent waiting for the request pacer",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
	})

	pacerThrottlesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "goodwill_pacer_throttles_total",
		Help: "Total number of requests delayed by the pacer",
	})
)

// Pacer enforces a minimum interval between requests.
// A nil Pacer or a zero interval never waits.
type Pacer struct {
	limiter  *rate.Limiter
	interval time.Duration
	logger   zerolog.Logger
}

// NewPacer creates a pacer allowing one request per interval.
func NewPacer(interval time.Duration, logger zerolog.Logger) *Pacer {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}

	return &Pacer{
		limiter:  rate.NewLimiter(limit, 1),
		interval: interval,
		logger:   logger,
	}
}

// Interval returns the configured spacing.
func (p *Pacer) Interval() time.Duration {
	if p == nil {
		return 0
	}
	return p.interval
}

// Wait blocks until the next request may be sent or ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil || p.interval <= 0 {
		return nil
	}

	start := time.Now()
	if err := p.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("pacer wait: %w", err)
	}

	waited := time.Since(start)
	pacerWaitSeconds.Observe(waited.Seconds())

	// Sub-millisecond waits are scheduling noise, not throttling.
	if waited >= time.Millisecond {
		pacerThrottlesTotal.Inc()
		p.logger.Debug().
			Dur("waited", waited).
			Dur("interval", p.interval).
			Msg("Request delayed by pacer")
	}

	return nil
}
