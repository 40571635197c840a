// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config binds the papershelf configuration: defaults, an
// optional YAML file, PAPERSHELF_* environment variables, and the NCBI
// secrets directory, validated into a types.AppConfig.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/pdiddy/papershelf/pkg/types"
)

const (
	// EnvPrefix prefixes every environment override, e.g. PAPERSHELF_SEARCH_API_KEY.
	EnvPrefix = "PAPERSHELF"

	// FileName is the config file base name searched in . and ~/.config/papershelf.
	FileName = "papershelf"
)

// DefaultRecommendedTerms are the preset searches offered out of the box.
var DefaultRecommendedTerms = []string{
	"cancer immunotherapy",
	"CRISPR",
	"long COVID",
	"Alzheimer disease",
	"gut microbiome",
}

// SetDefaults registers every key with its default so environment
// overrides resolve during Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("search.base_url", "https://eutils.ncbi.nlm.nih.gov/entrez/eutils")
	v.SetDefault("search.timeout", 30*time.Second)
	v.SetDefault("search.user_agent", "papershelf/dev")
	v.SetDefault("search.api_key", "")
	v.SetDefault("search.email", "")
	v.SetDefault("search.tool", "papershelf")
	v.SetDefault("search.rate_limit", 3.0)
	v.SetDefault("search.burst", 1)
	v.SetDefault("search.max_retries", 3)
	v.SetDefault("search.default_days", 365)
	v.SetDefault("search.default_sort", "pub+date")

	v.SetDefault("store.backend", string(types.StoreSQLite))
	v.SetDefault("store.path", defaultStorePath())

	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("ui.locale", "en")
	v.SetDefault("ui.recommended_terms", DefaultRecommendedTerms)

	v.SetDefault("metrics.addr", "")
}

func defaultStorePath() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "papershelf")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".papershelf")
	}
	return filepath.Join(home, ".local", "share", "papershelf")
}

// New returns a viper instance with defaults, env binding, and the config
// search path. cfgFile, when set, replaces the search path.
func New(cfgFile string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "papershelf"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Read loads the config file into v. A missing file is not an error unless
// it was named explicitly. It returns the file used, or "".
func Read(v *viper.Viper, explicit bool) (string, error) {
	err := v.ReadInConfig()
	if err == nil {
		return v.ConfigFileUsed(), nil
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) && !explicit {
		return "", nil
	}
	return "", fmt.Errorf("reading config: %w", err)
}

// Decode unmarshals and validates v.
func Decode(v *viper.Viper) (types.AppConfig, error) {
	var cfg types.AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return types.AppConfig{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return types.AppConfig{}, err
	}
	return cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks cfg against its struct tags and reports every failing
// field by its config key.
func Validate(cfg types.AppConfig) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", keyFor(fe.Namespace()), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// keyFor turns a validator namespace like "AppConfig.search.HTTPConfig.rate_limit"
// into the config key "search.rate_limit".
func keyFor(ns string) string {
	parts := strings.Split(ns, ".")
	out := make([]string, 0, len(parts))
	for i, p := range parts {
		if i == 0 || p == "HTTPConfig" {
			continue
		}
		out = append(out, p)
	}
	return strings.Join(out, ".")
}
