// Package metrics exposes the Prometheus metrics registered by the client,
// pagination and ratelimit packages.
//
// Metrics are declared with promauto next to the code that records them; this
// package only serves them.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the registerer all goodwill metrics are registered with.
var Registry = prometheus.DefaultRegisterer

// Handler serves the default gatherer in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{})
}

// Metrics
//
// Requests (pkg/client):
//   - goodwill_requests_total{status} (Counter): ItemListing requests by HTTP status or "network_error"
//   - goodwill_request_duration_seconds (Histogram): ItemListing request latency
//   - goodwill_errors_total{class} (Counter): failures by class (client, server, network, decode)
//
// Accumulation (pkg/pagination):
//   - goodwill_pages_fetched_total (Counter): pages fetched
//   - goodwill_items_received_total (Counter): listings received before filtering
//   - goodwill_items_matched_total (Counter): listings kept after filtering
//   - goodwill_searches_total{outcome} (Counter): searches by stop reason or "error"
//
// Pacing (pkg/ratelimit):
//   - goodwill_pacer_wait_seconds (Histogram): time spent waiting before a request
//   - goodwill_pacer_throttles_total (Counter): requests that had to wait
//
// Example queries:
//
//	# Listings kept per search
//	rate(goodwill_items_matched_total[1h]) / rate(goodwill_searches_total[1h])
//
//	# P95 request latency
//	histogram_quantile(0.95, rate(goodwill_request_duration_seconds_bucket[5m]))
