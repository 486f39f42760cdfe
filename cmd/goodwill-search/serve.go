package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Sternrassler/goodwill-client/pkg/client"
	"github.com/Sternrassler/goodwill-client/pkg/logging"
	"github.com/Sternrassler/goodwill-client/pkg/metrics"
	"github.com/Sternrassler/goodwill-client/pkg/pagination"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve searches over HTTP",
		Long: `serve exposes the search over HTTP:

  GET  /health   liveness check
  GET  /metrics  Prometheus metrics
  POST /search   request body is the search config as JSON; query parameters
                 keyword (repeatable), max_pages and max_items`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.New(a.settings.ClientConfig())
			if err != nil {
				return err
			}
			return runServer(cmd.Context(), addr, newServeMux(c))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

func newServeMux(fetcher pagination.PageFetcher) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", healthHandler)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("POST /search", searchHandler(fetcher))
	return mux
}

func runServer(ctx context.Context, addr string, handler http.Handler) error {
	logger := logging.NewLogger("server")

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("Starting search server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		logger.Info().Msg("Shutting down search server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "OK")
}

func searchHandler(fetcher pagination.PageFetcher) http.HandlerFunc {
	logger := logging.NewLogger("server")

	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := searchOptions(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		var body client.SearchConfig
		if err := dec.Decode(&body); err != nil {
			http.Error(w, fmt.Sprintf("invalid search config: %v", err), http.StatusBadRequest)
			return
		}
		if body == nil {
			body = client.SearchConfig{}
		}

		items, err := pagination.Search(r.Context(), fetcher, body, opts)
		if err != nil {
			if errors.Is(err, client.ErrInvalidPage) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			logger.Warn().Err(err).Msg("Search failed")
			http.Error(w, fmt.Sprintf("search failed: %v", err), http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(items); err != nil {
			logger.Error().Err(err).Msg("Failed to write response")
		}
	}
}

// searchOptions reads keyword, max_pages and max_items from the query string.
func searchOptions(r *http.Request) (pagination.Options, error) {
	q := r.URL.Query()
	opts := pagination.DefaultOptions()
	opts.Keywords = q["keyword"]

	for name, dst := range map[string]*int{"max_pages": &opts.MaxPages, "max_items": &opts.MaxItems} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return pagination.Options{}, fmt.Errorf("%s must be an integer (got %q)", name, raw)
		}
		*dst = n
	}

	return opts, nil
}
