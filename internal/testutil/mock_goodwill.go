// Package testutil provides testing utilities for the goodwill client.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
)

// ListingPath is the path the mock serves search results on.
const ListingPath = "/api/Search/ItemListing"

// MockResponse defines a canned response for one request.
type MockResponse struct {
	StatusCode int
	Body       string
}

// MockGoodwill is a mock ItemListing server that pages through a fixed catalogue.
type MockGoodwill struct {
	server *httptest.Server
	mu     sync.RWMutex

	catalogue []map[string]any
	pageSize  int
	overrides map[int]MockResponse
	itemCount func(page int) int

	// Tracking
	requestCount int
	pages        []int
	bodies       []map[string]any
	lastHeader   http.Header
}

// NewMockGoodwill creates a mock serving catalogue in pages of pageSize items.
func NewMockGoodwill(catalogue []map[string]any, pageSize int) *MockGoodwill {
	if pageSize <= 0 {
		pageSize = 40
	}

	mock := &MockGoodwill{
		catalogue: catalogue,
		pageSize:  pageSize,
		overrides: make(map[int]MockResponse),
	}
	mock.server = httptest.NewServer(http.HandlerFunc(mock.handle))

	return mock
}

// URL returns the full ItemListing URL of the mock.
func (m *MockGoodwill) URL() string {
	return m.server.URL + ListingPath
}

// Close shuts down the mock server.
func (m *MockGoodwill) Close() {
	m.server.Close()
}

// SetPageResponse replaces the response for a single page number.
func (m *MockGoodwill) SetPageResponse(page int, resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overrides[page] = resp
}

// SetItemCount overrides the reported itemCount per page; nil restores the catalogue size.
func (m *MockGoodwill) SetItemCount(fn func(page int) int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.itemCount = fn
}

// RequestCount returns the number of requests received.
func (m *MockGoodwill) RequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.requestCount
}

// Pages returns the page numbers requested, in order.
func (m *MockGoodwill) Pages() []int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]int(nil), m.pages...)
}

// Bodies returns the decoded request bodies, in order.
func (m *MockGoodwill) Bodies() []map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]map[string]any(nil), m.bodies...)
}

// LastHeader returns the headers of the most recent request.
func (m *MockGoodwill) LastHeader() http.Header {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastHeader
}

func (m *MockGoodwill) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || r.URL.Path != ListingPath {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, fmt.Sprintf("bad body: %v", err), http.StatusBadRequest)
		return
	}

	page, err := pageOf(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m.mu.Lock()
	m.requestCount++
	m.pages = append(m.pages, page)
	m.bodies = append(m.bodies, body)
	m.lastHeader = r.Header.Clone()
	override, hasOverride := m.overrides[page]
	itemCount := len(m.catalogue)
	if m.itemCount != nil {
		itemCount = m.itemCount(page)
	}
	m.mu.Unlock()

	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	if hasOverride {
		w.WriteHeader(override.StatusCode)
		w.Write([]byte(override.Body))
		return
	}

	start := (page - 1) * m.pageSize
	end := start + m.pageSize
	if start < 0 || start > len(m.catalogue) {
		start = len(m.catalogue)
	}
	if end > len(m.catalogue) {
		end = len(m.catalogue)
	}
	if end < start {
		end = start
	}

	items := m.catalogue[start:end]
	if items == nil {
		items = []map[string]any{}
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"searchResults": map[string]any{
			"itemCount": itemCount,
			"items":     items,
		},
	})
}

// pageOf reads the page field the way the marketplace does: number or numeric string.
func pageOf(body map[string]any) (int, error) {
	switch v := body["page"].(type) {
	case float64:
		return int(v), nil
	case string:
		return strconv.Atoi(v)
	case nil:
		return 1, nil
	default:
		return 0, fmt.Errorf("unsupported page type %T", v)
	}
}

// Listing builds a catalogue entry with the given id and title.
func Listing(id int, title string) map[string]any {
	return map[string]any{
		"itemId":       id,
		"title":        title,
		"currentPrice": float64(id) + 0.99,
	}
}
