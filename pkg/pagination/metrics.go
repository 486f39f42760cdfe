package pagination

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PagesFetched tracks pages retrieved by the accumulator
	PagesFetched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "goodwill_pages_fetched_total",
			Help: "Total number of search result pages fetched",
		},
	)

	// ItemsReceived tracks raw listings received, before keyword filtering
	ItemsReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "goodwill_items_received_total",
			Help: "Total number of listings received from the marketplace",
		},
	)

	// ItemsMatched tracks listings kept after keyword filtering
	ItemsMatched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "goodwill_items_matched_total",
			Help: "Total number of listings kept after keyword filtering",
		},
	)

	// Searches tracks completed searches by how they ended
	Searches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goodwill_searches_total",
			Help: "Total number of searches by outcome",
		},
		[]string{"outcome"}, // "complete", "page_limit", "item_limit", "empty_page", "error"
	)
)
