// Package pagination walks the pages of a marketplace search and accumulates
// the listings into a single ordered result list.
//
// The marketplace returns a bounded page of items per request together with the
// total number of matching items. Accumulation is strictly sequential: one POST
// per page, page numbers increasing by one, until the reported total has been
// seen or a caller limit is reached.
//
// Example usage:
//
//	c, err := client.New(client.DefaultConfig("my-app/1.0 (me@example.com)"))
//	if err != nil {
//		return err
//	}
//	cfg := client.NewSearchConfig("oak chair")
//	opts := pagination.DefaultOptions()
//	opts.Keywords = []string{"Oak", "oak"}
//	opts.MaxItems = 100
//	items, err := pagination.Search(ctx, c, cfg, opts)
//
// The accumulator:
//   - Sets the "page" field of the config to 1 if it is absent
//   - Advances "page" in place on the caller's config after each page
//   - Trusts the latest itemCount reported by the server on every page
//   - Counts raw page items towards completion, not filtered ones
//   - Keeps listings whose title contains any keyword (case-sensitive)
//   - Stops on the first error and returns no partial results
package pagination
