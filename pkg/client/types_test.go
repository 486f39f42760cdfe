package client

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestSearchConfig_Page(t *testing.T) {
	tests := []struct {
		name      string
		config    SearchConfig
		wantPage  int
		wantOK    bool
		wantError bool
	}{
		{name: "absent", config: SearchConfig{}, wantPage: 0, wantOK: false},
		{name: "int", config: SearchConfig{"page": 3}, wantPage: 3, wantOK: true},
		{name: "int64", config: SearchConfig{"page": int64(4)}, wantPage: 4, wantOK: true},
		{name: "whole float", config: SearchConfig{"page": float64(2)}, wantPage: 2, wantOK: true},
		{name: "json number", config: SearchConfig{"page": json.Number("7")}, wantPage: 7, wantOK: true},
		{name: "numeric string", config: SearchConfig{"page": "5"}, wantPage: 5, wantOK: true},
		{name: "fractional float", config: SearchConfig{"page": 1.5}, wantOK: true, wantError: true},
		{name: "word", config: SearchConfig{"page": "two"}, wantOK: true, wantError: true},
		{name: "bool", config: SearchConfig{"page": true}, wantOK: true, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, ok, err := tt.config.Page()

			if ok != tt.wantOK {
				t.Errorf("ok = %v, want %v", ok, tt.wantOK)
			}
			if tt.wantError {
				if !errors.Is(err, ErrInvalidPage) {
					t.Errorf("Expected ErrInvalidPage, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if page != tt.wantPage {
				t.Errorf("page = %d, want %d", page, tt.wantPage)
			}
		})
	}
}

func TestSearchConfig_EnsurePage(t *testing.T) {
	cfg := SearchConfig{"searchText": "chair"}

	page, err := cfg.EnsurePage()
	if err != nil {
		t.Fatalf("EnsurePage() failed: %v", err)
	}
	if page != 1 || cfg["page"] != 1 {
		t.Errorf("page = %d, cfg[page] = %v, want 1", page, cfg["page"])
	}

	cfg["page"] = "4"
	page, err = cfg.EnsurePage()
	if err != nil {
		t.Fatalf("EnsurePage() failed: %v", err)
	}
	if page != 4 {
		t.Errorf("page = %d, want 4", page)
	}
	if cfg["page"] != "4" {
		t.Errorf("EnsurePage rewrote an existing page: %v", cfg["page"])
	}
}

func TestNewSearchConfig(t *testing.T) {
	cfg := NewSearchConfig("oak chair")

	if cfg["searchText"] != "oak chair" {
		t.Errorf("searchText = %v", cfg["searchText"])
	}
	if page, ok, err := cfg.Page(); err != nil || !ok || page != 1 {
		t.Errorf("Page() = %d, %v, %v; want 1, true, nil", page, ok, err)
	}
	if cfg["pageSize"] != DefaultPageSize {
		t.Errorf("pageSize = %v, want %d", cfg["pageSize"], DefaultPageSize)
	}

	// Each call returns an independent map.
	cfg.SetPage(9)
	if other := NewSearchConfig("x"); other["page"] != 1 {
		t.Errorf("NewSearchConfig shares state: page = %v", other["page"])
	}
}

func TestItem_Title(t *testing.T) {
	if title, ok := (Item{"title": "Oak Chair"}).Title(); !ok || title != "Oak Chair" {
		t.Errorf("Title() = %q, %v", title, ok)
	}
	if _, ok := (Item{"itemId": 1}).Title(); ok {
		t.Error("Title() should report missing title")
	}
	if _, ok := (Item{"title": 42}).Title(); ok {
		t.Error("Title() should reject non-string title")
	}
}

func TestDecodeSearchResult(t *testing.T) {
	body := `{"searchResults": {"itemCount": 41, "items": [
		{"itemId": 184467440737095516, "title": "Oak Chair", "currentPrice": 12.5},
		{"itemId": 2, "title": "Pine Table"}
	]}}`

	result, err := DecodeSearchResult(strings.NewReader(body))
	if err != nil {
		t.Fatalf("DecodeSearchResult() failed: %v", err)
	}

	if result.ItemCount != 41 {
		t.Errorf("ItemCount = %d, want 41", result.ItemCount)
	}
	if len(result.Items) != 2 {
		t.Fatalf("Items = %d, want 2", len(result.Items))
	}

	// Large ids survive a round trip unchanged.
	out, err := json.Marshal(result.Items[0])
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(out), `"itemId":184467440737095516`) {
		t.Errorf("itemId not preserved: %s", out)
	}
}

func TestDecodeSearchResult_EmptyItems(t *testing.T) {
	result, err := DecodeSearchResult(strings.NewReader(`{"searchResults": {"itemCount": 0, "items": []}}`))
	if err != nil {
		t.Fatalf("DecodeSearchResult() failed: %v", err)
	}
	if result.ItemCount != 0 || len(result.Items) != 0 {
		t.Errorf("result = %+v, want empty", result)
	}
}
