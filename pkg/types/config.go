// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by the network-facing components.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "papershelf/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// RateLimit is the sustained request rate per second toward E-utilities.
	// NCBI allows 3 req/s without an API key and 10 req/s with one.
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit" mapstructure:"rate_limit" validate:"gte=0"`

	// Burst is the token bucket size for RateLimit.
	Burst int `json:"burst" yaml:"burst" mapstructure:"burst" validate:"gte=0"`

	// MaxRetries bounds retries on HTTP 429 and 5xx responses.
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries" validate:"gte=0"`
}

// SearchConfig holds settings for the search gateway and detail fetcher.
type SearchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the E-utilities root; esearch.fcgi and efetch.fcgi are
	// resolved relative to it.
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url" validate:"required,url"`

	// APIKey is the optional NCBI API key.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// Email and Tool identify the client to NCBI, as their usage policy asks.
	Email string `json:"email,omitempty" yaml:"email,omitempty" mapstructure:"email" validate:"omitempty,email"`
	Tool  string `json:"tool,omitempty" yaml:"tool,omitempty" mapstructure:"tool"`

	// DefaultDays is the lookback window used when the user leaves the
	// days field empty or enters something that is not a positive integer.
	DefaultDays int `json:"default_days" yaml:"default_days" mapstructure:"default_days" validate:"gte=1"`

	// DefaultSort is the sort key used when none is given.
	DefaultSort string `json:"default_sort" yaml:"default_sort" mapstructure:"default_sort" validate:"oneof=pub+date relevance author journal"`
}

// StoreBackend selects the durable key-value engine behind the saved set.
type StoreBackend string

const (
	StoreSQLite  StoreBackend = "sqlite"
	StoreLevelDB StoreBackend = "leveldb"
)

// StoreConfig holds settings for the saved-papers store.
type StoreConfig struct {
	// Backend is sqlite or leveldb.
	Backend StoreBackend `json:"backend" yaml:"backend" mapstructure:"backend" validate:"oneof=sqlite leveldb"`

	// Path is the data directory. The sqlite backend keeps papershelf.db in
	// it; the leveldb backend uses it as the database directory.
	Path string `json:"path" yaml:"path" mapstructure:"path" validate:"required"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	// Level is trace, debug, info, warn, or error.
	Level string `json:"level" yaml:"level" mapstructure:"level" validate:"oneof=trace debug info warn error"`

	// Format is console or json.
	Format string `json:"format" yaml:"format" mapstructure:"format" validate:"oneof=console json"`

	// Output is stderr or stdout. Stderr keeps stdout clean for --format json.
	Output string `json:"output" yaml:"output" mapstructure:"output" validate:"oneof=stderr stdout"`
}

// UIConfig holds presentation settings shared by the CLI and TUI.
type UIConfig struct {
	// Locale selects the message catalog: en or ko.
	Locale string `json:"locale" yaml:"locale" mapstructure:"locale" validate:"oneof=en ko"`

	// RecommendedTerms are the preset shortcuts that fill the query field
	// and search immediately.
	RecommendedTerms []string `json:"recommended_terms" yaml:"recommended_terms" mapstructure:"recommended_terms" validate:"dive,required"`
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	// Addr is the listen address for /metrics (e.g. "127.0.0.1:9464").
	// Empty disables the endpoint.
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty" mapstructure:"addr" validate:"omitempty,hostname_port"`
}

// AppConfig groups all component configurations.
type AppConfig struct {
	Search  SearchConfig  `json:"search" yaml:"search" mapstructure:"search"`
	Store   StoreConfig   `json:"store" yaml:"store" mapstructure:"store"`
	Logging LoggingConfig `json:"logging" yaml:"logging" mapstructure:"logging"`
	UI      UIConfig      `json:"ui" yaml:"ui" mapstructure:"ui"`
	Metrics MetricsConfig `json:"metrics" yaml:"metrics" mapstructure:"metrics"`
}
