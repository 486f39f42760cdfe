//go:build integration

package pagination

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Sternrassler/goodwill-client/pkg/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against the live marketplace: go test -tags integration ./pkg/pagination
func TestIntegration_LiveSearch(t *testing.T) {
	cfg := client.DefaultConfig("goodwill-client-integration/0.1.0")
	cfg.RequestInterval = time.Second
	c, err := client.New(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	body := client.NewSearchConfig("lamp")
	items, err := Search(ctx, c, body, Options{
		Keywords: []string{"Lamp", "lamp"},
		MaxPages: 2,
		MaxItems: 10,
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(items), 10)

	for _, it := range items {
		title, ok := it.Title()
		require.True(t, ok)
		assert.True(t, strings.Contains(title, "Lamp") || strings.Contains(title, "lamp"), title)
	}

	page, ok, err := body.Page()
	require.NoError(t, err)
	require.True(t, ok)
	assert.GreaterOrEqual(t, page, 1)
}
