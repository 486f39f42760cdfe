// Package config loads CLI settings with viper and search request bodies from
// YAML or JSON files.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Sternrassler/goodwill-client/pkg/client"
	"github.com/Sternrassler/goodwill-client/pkg/logging"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"
)

// EnvPrefix is prepended to every environment variable, e.g. GOODWILL_USER_AGENT.
const EnvPrefix = "GOODWILL"

// DefaultUserAgent identifies this tool to the marketplace.
const DefaultUserAgent = "goodwill-client/0.1.0"

// Setting keys, shared by flags, environment and config file.
const (
	KeyEndpoint        = "endpoint"
	KeyUserAgent       = "user_agent"
	KeyTimeout         = "timeout"
	KeyRequestInterval = "request_interval"
	KeyLogLevel        = "log_level"
	KeyLogPretty       = "log_pretty"
)

// Settings holds the resolved runtime configuration.
type Settings struct {
	Endpoint        string
	UserAgent       string
	Timeout         time.Duration
	RequestInterval time.Duration
	LogLevel        logging.LogLevel
	LogPretty       bool
}

// NewViper returns a viper instance with defaults and GOODWILL_* environment binding.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyEndpoint, client.DefaultEndpoint)
	v.SetDefault(KeyUserAgent, DefaultUserAgent)
	v.SetDefault(KeyTimeout, 30*time.Second)
	v.SetDefault(KeyRequestInterval, time.Duration(0))
	v.SetDefault(KeyLogLevel, string(logging.LevelInfo))
	v.SetDefault(KeyLogPretty, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

// ReadConfigFile reads path, or when empty looks for goodwill-search.yaml in
// the working directory and ~/.config/goodwill-search. A missing default file
// is not an error.
func ReadConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("goodwill-search")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "goodwill-search"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	return nil
}

// Load resolves and validates settings from v.
func Load(v *viper.Viper) (Settings, error) {
	level, err := logging.ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", KeyLogLevel, err)
	}

	s := Settings{
		Endpoint:        v.GetString(KeyEndpoint),
		UserAgent:       v.GetString(KeyUserAgent),
		Timeout:         v.GetDuration(KeyTimeout),
		RequestInterval: v.GetDuration(KeyRequestInterval),
		LogLevel:        level,
		LogPretty:       v.GetBool(KeyLogPretty),
	}

	if s.UserAgent == "" {
		return Settings{}, fmt.Errorf("%s must not be empty", KeyUserAgent)
	}

	return s, nil
}

// ClientConfig maps settings onto the HTTP client configuration.
func (s Settings) ClientConfig() client.Config {
	cfg := client.DefaultConfig(s.UserAgent)
	cfg.Endpoint = s.Endpoint
	cfg.Timeout = s.Timeout
	cfg.RequestInterval = s.RequestInterval
	return cfg
}

// LoggingConfig maps settings onto the logger configuration.
func (s Settings) LoggingConfig(out io.Writer) logging.Config {
	return logging.Config{
		Level:  s.LogLevel,
		Pretty: s.LogPretty,
		Output: out,
	}
}

// LoadSearchBody reads a search request body from a YAML or JSON file.
func LoadSearchBody(path string) (client.SearchConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read search body: %w", err)
	}
	return ParseSearchBody(data)
}

// ParseSearchBody decodes a YAML or JSON mapping into a search config.
func ParseSearchBody(data []byte) (client.SearchConfig, error) {
	var body map[string]any
	if err := yaml.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("parse search body: %w", err)
	}
	if body == nil {
		return nil, fmt.Errorf("parse search body: document is empty")
	}
	return client.SearchConfig(body), nil
}
