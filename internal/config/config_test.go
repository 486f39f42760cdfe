package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Sternrassler/goodwill-client/pkg/client"
	"github.com/Sternrassler/goodwill-client/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	s, err := Load(NewViper())
	require.NoError(t, err)

	assert.Equal(t, client.DefaultEndpoint, s.Endpoint)
	assert.Equal(t, DefaultUserAgent, s.UserAgent)
	assert.Equal(t, 30*time.Second, s.Timeout)
	assert.Equal(t, time.Duration(0), s.RequestInterval)
	assert.Equal(t, logging.LevelInfo, s.LogLevel)
	assert.False(t, s.LogPretty)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("GOODWILL_USER_AGENT", "env-agent/2.0")
	t.Setenv("GOODWILL_TIMEOUT", "5s")
	t.Setenv("GOODWILL_REQUEST_INTERVAL", "250ms")
	t.Setenv("GOODWILL_LOG_LEVEL", "debug")
	t.Setenv("GOODWILL_LOG_PRETTY", "true")

	s, err := Load(NewViper())
	require.NoError(t, err)

	assert.Equal(t, "env-agent/2.0", s.UserAgent)
	assert.Equal(t, 5*time.Second, s.Timeout)
	assert.Equal(t, 250*time.Millisecond, s.RequestInterval)
	assert.Equal(t, logging.LevelDebug, s.LogLevel)
	assert.True(t, s.LogPretty)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := writeFile(t, "goodwill-search.yaml", `
endpoint: http://localhost:9999/api/Search/ItemListing
user_agent: file-agent/1.0
request_interval: 1s
log_level: warn
`)

	v := NewViper()
	require.NoError(t, ReadConfigFile(v, path))

	s, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/api/Search/ItemListing", s.Endpoint)
	assert.Equal(t, "file-agent/1.0", s.UserAgent)
	assert.Equal(t, time.Second, s.RequestInterval)
	assert.Equal(t, logging.LevelWarn, s.LogLevel)
}

func TestReadConfigFile_MissingExplicitFile(t *testing.T) {
	err := ReadConfigFile(NewViper(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestReadConfigFile_NoDefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	assert.NoError(t, ReadConfigFile(NewViper(), ""))
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("log level", func(t *testing.T) {
		v := NewViper()
		v.Set(KeyLogLevel, "chatty")
		_, err := Load(v)
		assert.ErrorContains(t, err, "log_level")
	})

	t.Run("empty user agent", func(t *testing.T) {
		v := NewViper()
		v.Set(KeyUserAgent, "")
		_, err := Load(v)
		assert.ErrorContains(t, err, "user_agent")
	})
}

func TestSettings_ClientConfig(t *testing.T) {
	s := Settings{
		Endpoint:        "http://example.test/api/Search/ItemListing",
		UserAgent:       "agent/1",
		Timeout:         2 * time.Second,
		RequestInterval: 500 * time.Millisecond,
	}

	cfg := s.ClientConfig()

	assert.Equal(t, s.Endpoint, cfg.Endpoint)
	assert.Equal(t, s.UserAgent, cfg.UserAgent)
	assert.Equal(t, s.Timeout, cfg.Timeout)
	assert.Equal(t, s.RequestInterval, cfg.RequestInterval)

	_, err := client.New(cfg)
	assert.NoError(t, err)
}

func TestSettings_LoggingConfig(t *testing.T) {
	s := Settings{LogLevel: logging.LevelError, LogPretty: true}

	cfg := s.LoggingConfig(os.Stdout)

	assert.Equal(t, logging.LevelError, cfg.Level)
	assert.True(t, cfg.Pretty)
	assert.Equal(t, os.Stdout, cfg.Output)
}

func TestLoadSearchBody_YAML(t *testing.T) {
	path := writeFile(t, "search.yaml", `
searchText: oak chair
lowPrice: "0"
page: 2
categoryIds: [10, 12]
filters:
  pickup: false
`)

	body, err := LoadSearchBody(path)
	require.NoError(t, err)

	assert.Equal(t, "oak chair", body["searchText"])
	page, ok, err := body.Page()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, page)

	// Nested values must stay JSON-encodable.
	_, err = json.Marshal(body)
	assert.NoError(t, err)
}

func TestLoadSearchBody_JSON(t *testing.T) {
	path := writeFile(t, "search.json", `{"searchText": "lamp", "pageSize": 40}`)

	body, err := LoadSearchBody(path)
	require.NoError(t, err)

	assert.Equal(t, "lamp", body["searchText"])
	assert.Equal(t, 40, body["pageSize"])
	_, hasPage, _ := body.Page()
	assert.False(t, hasPage)
}

func TestLoadSearchBody_Errors(t *testing.T) {
	_, err := LoadSearchBody(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read search body")

	_, err = ParseSearchBody([]byte("- just\n- a list\n"))
	assert.ErrorContains(t, err, "parse search body")

	_, err = ParseSearchBody([]byte(""))
	assert.ErrorContains(t, err, "empty")
}
