// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/papershelf/pkg/types"
)

func loadFrom(t *testing.T, cfgFile string) types.AppConfig {
	t.Helper()
	v := New(cfgFile)
	_, err := Read(v, cfgFile != "")
	require.NoError(t, err)
	cfg, err := Decode(v)
	require.NoError(t, err)
	return cfg
}

func TestDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg := loadFrom(t, "")

	assert.Equal(t, "https://eutils.ncbi.nlm.nih.gov/entrez/eutils", cfg.Search.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Search.Timeout)
	assert.Equal(t, 3.0, cfg.Search.RateLimit)
	assert.Equal(t, 1, cfg.Search.Burst)
	assert.Equal(t, 3, cfg.Search.MaxRetries)
	assert.Equal(t, 365, cfg.Search.DefaultDays)
	assert.Equal(t, "pub+date", cfg.Search.DefaultSort)
	assert.Equal(t, types.StoreSQLite, cfg.Store.Backend)
	assert.NotEmpty(t, cfg.Store.Path)
	assert.Equal(t, "en", cfg.UI.Locale)
	assert.Equal(t, DefaultRecommendedTerms, cfg.UI.RecommendedTerms)
	assert.Empty(t, cfg.Metrics.Addr)
}

func TestFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
search:
  default_days: 30
  default_sort: relevance
  rate_limit: 10
  timeout: 5s
store:
  backend: leveldb
  path: /tmp/shelf
ui:
  locale: ko
  recommended_terms: [diabetes, asthma]
metrics:
  addr: 127.0.0.1:9464
`), 0o644))

	cfg := loadFrom(t, path)

	assert.Equal(t, 30, cfg.Search.DefaultDays)
	assert.Equal(t, "relevance", cfg.Search.DefaultSort)
	assert.Equal(t, 10.0, cfg.Search.RateLimit)
	assert.Equal(t, 5*time.Second, cfg.Search.Timeout)
	assert.Equal(t, types.StoreLevelDB, cfg.Store.Backend)
	assert.Equal(t, "/tmp/shelf", cfg.Store.Path)
	assert.Equal(t, "ko", cfg.UI.Locale)
	assert.Equal(t, []string{"diabetes", "asthma"}, cfg.UI.RecommendedTerms)
	assert.Equal(t, "127.0.0.1:9464", cfg.Metrics.Addr)
	assert.Equal(t, "https://eutils.ncbi.nlm.nih.gov/entrez/eutils", cfg.Search.BaseURL, "unset keys keep defaults")
}

func TestEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PAPERSHELF_SEARCH_API_KEY", "env-key")
	t.Setenv("PAPERSHELF_SEARCH_DEFAULT_DAYS", "7")
	t.Setenv("PAPERSHELF_LOGGING_LEVEL", "debug")

	cfg := loadFrom(t, "")

	assert.Equal(t, "env-key", cfg.Search.APIKey)
	assert.Equal(t, 7, cfg.Search.DefaultDays)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestExplicitMissingFile(t *testing.T) {
	v := New(filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Read(v, true)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Chdir(t.TempDir())
	base := loadFrom(t, "")

	tests := []struct {
		name   string
		mutate func(*types.AppConfig)
		key    string
	}{
		{"bad sort", func(c *types.AppConfig) { c.Search.DefaultSort = "date" }, "search.default_sort"},
		{"zero days", func(c *types.AppConfig) { c.Search.DefaultDays = 0 }, "search.default_days"},
		{"bad url", func(c *types.AppConfig) { c.Search.BaseURL = "not a url" }, "search.base_url"},
		{"negative rate", func(c *types.AppConfig) { c.Search.RateLimit = -1 }, "search.rate_limit"},
		{"bad email", func(c *types.AppConfig) { c.Search.Email = "nobody" }, "search.email"},
		{"bad backend", func(c *types.AppConfig) { c.Store.Backend = "redis" }, "store.backend"},
		{"empty path", func(c *types.AppConfig) { c.Store.Path = "" }, "store.path"},
		{"bad locale", func(c *types.AppConfig) { c.UI.Locale = "fr" }, "ui.locale"},
		{"blank preset", func(c *types.AppConfig) { c.UI.RecommendedTerms = []string{"ok", ""} }, "ui.recommended_terms[1]"},
		{"bad metrics addr", func(c *types.AppConfig) { c.Metrics.Addr = "nope" }, "metrics.addr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			require.NoError(t, Validate(cfg))

			tt.mutate(&cfg)
			err := Validate(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
