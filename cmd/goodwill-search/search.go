package main

import (
	"encoding/json"
	"fmt"

	"github.com/Sternrassler/goodwill-client/internal/config"
	"github.com/Sternrassler/goodwill-client/pkg/client"
	"github.com/Sternrassler/goodwill-client/pkg/pagination"
	"github.com/spf13/cobra"
)

func newSearchCmd(a *app) *cobra.Command {
	var (
		query    string
		bodyFile string
		keywords []string
		maxPages int
		maxItems int
		pretty   bool
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run a search and print the matching listings as JSON",
		Long: `search posts the request body page by page until every result has been
seen or a limit is reached. With --keyword, only listings whose title contains
at least one keyword (case-sensitive) are kept; keywords never reduce the number
of pages requested.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := searchBody(query, bodyFile)
			if err != nil {
				return err
			}

			c, err := client.New(a.settings.ClientConfig())
			if err != nil {
				return err
			}

			opts := pagination.Options{
				Keywords: keywords,
				MaxPages: maxPages,
				MaxItems: maxItems,
			}
			items, err := pagination.Search(cmd.Context(), c, body, opts)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if pretty {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(items)
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "search text")
	cmd.Flags().StringVar(&bodyFile, "body", "", "YAML or JSON file with the full request body")
	cmd.Flags().StringArrayVarP(&keywords, "keyword", "k", nil, "keep listings whose title contains this keyword (repeatable)")
	cmd.Flags().IntVar(&maxPages, "max-pages", pagination.Unlimited, "stop once this page number has been fetched (-1 for all)")
	cmd.Flags().IntVar(&maxItems, "max-items", pagination.Unlimited, "maximum number of listings to return (-1 for all)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent JSON output")

	return cmd
}

// searchBody builds the request body from a file, a query or both; the query
// overrides the file's searchText.
func searchBody(query, bodyFile string) (client.SearchConfig, error) {
	switch {
	case bodyFile != "":
		body, err := config.LoadSearchBody(bodyFile)
		if err != nil {
			return nil, err
		}
		if query != "" {
			body["searchText"] = query
		}
		return body, nil
	case query != "":
		return client.NewSearchConfig(query), nil
	default:
		return nil, fmt.Errorf("either --query or --body is required")
	}
}
