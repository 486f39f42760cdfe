package client

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// PageField is the request body key holding the 1-based page number.
const PageField = "page"

// DefaultPageSize is the number of items the marketplace returns per page.
const DefaultPageSize = 40

// SearchConfig is the JSON request body sent to the ItemListing endpoint.
// Keys other than "page" are passed through unchanged.
type SearchConfig map[string]any

// NewSearchConfig returns the request body the marketplace's own search page
// sends for a plain text search, sorted by auctions ending soonest.
func NewSearchConfig(searchText string) SearchConfig {
	return SearchConfig{
		"searchText":                      searchText,
		"selectedGroup":                   "",
		"selectedCategoryIds":             "",
		"selectedSellerIds":               "",
		"lowPrice":                        "0",
		"highPrice":                       "999999",
		"searchBuyNowOnly":                "",
		"searchPickupOnly":                "false",
		"searchNoPickupOnly":              "false",
		"searchOneCentShippingOnly":       "false",
		"searchDescriptions":              "false",
		"searchClosedAuctions":            "false",
		"closedAuctionEndingDate":         "",
		"closedAuctionDaysBack":           "7",
		"searchCanadaShipping":            "false",
		"searchInternationalShippingOnly": "false",
		"searchUSOnlyShipping":            "true",
		"sortColumn":                      "1",
		"sortDescending":                  "false",
		"savedSearchId":                   0,
		"useBuyerPrefs":                   "true",
		"categoryLevelNo":                 "1",
		"categoryLevel":                   1,
		"categoryId":                      0,
		"partNumber":                      "",
		"catIds":                          "",
		"isSize":                          false,
		"isWeddingCatagory":               "false",
		"isMultipleCategoryIds":           false,
		"isFromHeaderMenuTab":             false,
		"isFromHomePage":                  false,
		"layout":                          "",
		"pageSize":                        DefaultPageSize,
		PageField:                         1,
	}
}

// Page returns the current page number.
// The value may be an integer, an integral float or a numeric string.
// ok is false when the config has no page field.
func (c SearchConfig) Page() (page int, ok bool, err error) {
	raw, ok := c[PageField]
	if !ok {
		return 0, false, nil
	}

	switch v := raw.(type) {
	case int:
		return v, true, nil
	case int32:
		return int(v), true, nil
	case int64:
		return int(v), true, nil
	case uint:
		return int(v), true, nil
	case uint64:
		return int(v), true, nil
	case float64:
		if v != math.Trunc(v) {
			return 0, true, fmt.Errorf("%w: %v is not a whole number", ErrInvalidPage, v)
		}
		return int(v), true, nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, true, fmt.Errorf("%w: %v", ErrInvalidPage, err)
		}
		return int(n), true, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, true, fmt.Errorf("%w: %q", ErrInvalidPage, v)
		}
		return n, true, nil
	default:
		return 0, true, fmt.Errorf("%w: unsupported type %T", ErrInvalidPage, raw)
	}
}

// SetPage stores page as an int.
func (c SearchConfig) SetPage(page int) {
	c[PageField] = page
}

// EnsurePage sets the page to 1 when absent and returns the current page.
func (c SearchConfig) EnsurePage() (int, error) {
	page, ok, err := c.Page()
	if err != nil {
		return 0, err
	}
	if !ok {
		c.SetPage(1)
		return 1, nil
	}
	return page, nil
}

// Item is a single listing as returned by the marketplace. Only the title is
// inspected; every other field is passed through.
type Item map[string]any

// Title returns the listing title. ok is false if the field is missing or not a string.
func (i Item) Title() (title string, ok bool) {
	title, ok = i["title"].(string)
	return title, ok
}

// SearchResult is one page of search results.
type SearchResult struct {
	// ItemCount is the total number of listings matching the query across all pages
	ItemCount int `json:"itemCount"`

	// Items are the listings on this page, in server order
	Items []Item `json:"items"`
}

type searchEnvelope struct {
	SearchResults *struct {
		ItemCount *int    `json:"itemCount"`
		Items     *[]Item `json:"items"`
	} `json:"searchResults"`
}

// DecodeSearchResult parses an ItemListing response body.
// Numbers inside items are kept as json.Number so they re-encode unchanged.
func DecodeSearchResult(r io.Reader) (*SearchResult, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var env searchEnvelope
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	switch {
	case env.SearchResults == nil:
		return nil, fmt.Errorf("%w: missing searchResults", ErrMalformedResponse)
	case env.SearchResults.ItemCount == nil:
		return nil, fmt.Errorf("%w: missing searchResults.itemCount", ErrMalformedResponse)
	case env.SearchResults.Items == nil:
		return nil, fmt.Errorf("%w: missing searchResults.items", ErrMalformedResponse)
	}

	return &SearchResult{
		ItemCount: *env.SearchResults.ItemCount,
		Items:     *env.SearchResults.Items,
	}, nil
}
