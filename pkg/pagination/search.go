package pagination

import (
	"context"
	"fmt"
	"time"

	"github.com/Sternrassler/goodwill-client/pkg/client"
	"github.com/Sternrassler/goodwill-client/pkg/logging"
	"github.com/rs/zerolog"
)

// Unlimited disables a page or item limit.
const Unlimited = -1

// PageFetcher retrieves the page of results selected by cfg's page field.
// *client.Client implements it.
type PageFetcher interface {
	FetchPage(ctx context.Context, cfg client.SearchConfig) (*client.SearchResult, error)
}

// Options controls filtering and truncation of a search.
type Options struct {
	// Keywords keeps only listings whose title contains at least one of them.
	// Empty means no filtering. Never modified.
	Keywords []string

	// MaxPages stops the search once the config's page number reaches it.
	// Negative means unbounded. Note the zero value stops after the first page.
	MaxPages int

	// MaxItems caps the number of listings returned. Negative means unbounded.
	MaxItems int
}

// DefaultOptions returns options with no filtering and no limits.
func DefaultOptions() Options {
	return Options{
		MaxPages: Unlimited,
		MaxItems: Unlimited,
	}
}

func (o Options) pageLimitReached(page int) bool {
	return o.MaxPages >= 0 && page >= o.MaxPages
}

func (o Options) itemLimitReached(n int) bool {
	return o.MaxItems >= 0 && n >= o.MaxItems
}

// Stop reasons, used as log fields and metric labels.
const (
	stopComplete  = "complete"
	stopPageLimit = "page_limit"
	stopItemLimit = "item_limit"
	stopEmptyPage = "empty_page"
)

// Accumulator walks search result pages through a PageFetcher.
type Accumulator struct {
	fetcher PageFetcher
	logger  zerolog.Logger
}

// NewAccumulator creates an accumulator on top of fetcher.
func NewAccumulator(fetcher PageFetcher) *Accumulator {
	return &Accumulator{
		fetcher: fetcher,
		logger:  logging.NewLogger("pagination"),
	}
}

// Search runs a search with a one-off accumulator.
func Search(ctx context.Context, fetcher PageFetcher, cfg client.SearchConfig, opts Options) ([]client.Item, error) {
	return NewAccumulator(fetcher).Search(ctx, cfg, opts)
}

// Search requests pages starting at cfg's page (1 if absent) until the
// server-reported item count has been processed or a limit in opts is hit.
//
// cfg is modified in place: its page field is set to 1 when missing and
// advanced by one after every page that does not end the search, so after a
// search that runs to completion it holds the page after the last one fetched.
//
// The first failing request aborts the search; no partial results are returned.
func (a *Accumulator) Search(ctx context.Context, cfg client.SearchConfig, opts Options) ([]client.Item, error) {
	page, err := cfg.EnsurePage()
	if err != nil {
		Searches.WithLabelValues("error").Inc()
		return nil, err
	}

	start := time.Now()
	results := []client.Item{}
	totalItems := 1
	itemsProcessed := 0
	pagesFetched := 0
	reason := stopComplete

	for itemsProcessed < totalItems {
		resp, err := a.fetcher.FetchPage(ctx, cfg)
		if err != nil {
			Searches.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("fetch page %d: %w", page, err)
		}
		pagesFetched++
		PagesFetched.Inc()
		ItemsReceived.Add(float64(len(resp.Items)))

		// The catalogue may change between requests; the latest count wins.
		totalItems = resp.ItemCount
		itemsProcessed += len(resp.Items)

		if len(opts.Keywords) > 0 {
			matched, err := FilterItems(resp.Items, opts.Keywords)
			if err != nil {
				Searches.WithLabelValues("error").Inc()
				return nil, fmt.Errorf("filter page %d: %w", page, err)
			}
			results = append(results, matched...)
			ItemsMatched.Add(float64(len(matched)))
		} else {
			results = append(results, resp.Items...)
			ItemsMatched.Add(float64(len(resp.Items)))
		}

		a.logger.Debug().
			Int("page", page).
			Int("items_on_page", len(resp.Items)).
			Int("item_count", totalItems).
			Int("items_processed", itemsProcessed).
			Int("results", len(results)).
			Msg("Page accumulated")

		if opts.pageLimitReached(page) || opts.itemLimitReached(len(results)) {
			reason = stopPageLimit
			if opts.itemLimitReached(len(results)) {
				reason = stopItemLimit
			}
			if opts.MaxItems >= 0 && len(results) > opts.MaxItems {
				results = results[:opts.MaxItems]
			}
			break
		}

		if len(resp.Items) == 0 && itemsProcessed < totalItems {
			reason = stopEmptyPage
			a.logger.Warn().
				Int("page", page).
				Int("item_count", totalItems).
				Int("items_processed", itemsProcessed).
				Msg("Empty page before item count reached, stopping")
			break
		}

		page++
		cfg.SetPage(page)
	}

	Searches.WithLabelValues(reason).Inc()
	a.logger.Info().
		Int("pages", pagesFetched).
		Int("results", len(results)).
		Str("stop_reason", reason).
		Dur("duration", time.Since(start)).
		Msg("Search complete")

	return results, nil
}
