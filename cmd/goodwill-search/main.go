// Package main is the goodwill-search CLI: one-shot searches against the
// ShopGoodwill marketplace and a small HTTP front end for the same search.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sternrassler/goodwill-client/internal/config"
	"github.com/Sternrassler/goodwill-client/pkg/client"
	"github.com/Sternrassler/goodwill-client/pkg/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// app carries the settings resolved before any subcommand runs.
type app struct {
	viper    *viper.Viper
	settings config.Settings
}

func newRootCmd() *cobra.Command {
	a := &app{viper: config.NewViper()}

	root := &cobra.Command{
		Use:   "goodwill-search",
		Short: "Search ShopGoodwill listings across all result pages",
		Long: `goodwill-search pages through the ShopGoodwill ItemListing search API,
optionally keeps only listings whose title contains one of a set of keywords,
and prints the accumulated listings as JSON.

Settings come from flags, GOODWILL_* environment variables, or a
goodwill-search.yaml config file, in that order of precedence.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default: ./goodwill-search.yaml or ~/.config/goodwill-search/goodwill-search.yaml)")
	flags.String("endpoint", client.DefaultEndpoint, "ItemListing endpoint URL")
	flags.String("user-agent", config.DefaultUserAgent, "User-Agent header sent to the marketplace")
	flags.Duration("timeout", 30*time.Second, "timeout for a single page request")
	flags.Duration("request-interval", 0, "minimum spacing between page requests (0 disables)")
	flags.String("log-level", "info", "log level: debug, info, warn, error, off")
	flags.Bool("log-pretty", false, "human readable log output")

	for key, flag := range map[string]string{
		config.KeyEndpoint:        "endpoint",
		config.KeyUserAgent:       "user-agent",
		config.KeyTimeout:         "timeout",
		config.KeyRequestInterval: "request-interval",
		config.KeyLogLevel:        "log-level",
		config.KeyLogPretty:       "log-pretty",
	} {
		_ = a.viper.BindPFlag(key, flags.Lookup(flag))
	}

	root.AddCommand(newSearchCmd(a), newServeCmd(a), newVersionCmd())
	return root
}

// setup reads the config file, resolves settings and installs the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	if err := config.ReadConfigFile(a.viper, cfgFile); err != nil {
		return err
	}

	s, err := config.Load(a.viper)
	if err != nil {
		return err
	}
	a.settings = s

	logger := logging.Setup(s.LoggingConfig(cmd.ErrOrStderr()))
	if used := a.viper.ConfigFileUsed(); used != "" {
		logger.Debug().Str("file", used).Msg("Using config file")
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
