package pagination

import (
	"fmt"
	"strings"

	"github.com/Sternrassler/goodwill-client/pkg/client"
)

// MatchesAny reports whether title contains at least one keyword.
// Matching is a case-sensitive substring test. No keywords matches everything.
func MatchesAny(title string, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	for _, kw := range keywords {
		if strings.Contains(title, kw) {
			return true
		}
	}
	return false
}

// FilterItems returns the items whose title matches any keyword, in input order.
func FilterItems(items []client.Item, keywords []string) ([]client.Item, error) {
	matched := make([]client.Item, 0, len(items))
	for i, item := range items {
		title, ok := item.Title()
		if !ok {
			return nil, fmt.Errorf("item %d: %w", i, client.ErrMissingTitle)
		}
		if MatchesAny(title, keywords) {
			matched = append(matched, item)
		}
	}
	return matched, nil
}
