// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/papershelf/internal/config"
	"github.com/pdiddy/papershelf/internal/controller"
	"github.com/pdiddy/papershelf/internal/httputil"
	"github.com/pdiddy/papershelf/internal/observability"
	"github.com/pdiddy/papershelf/internal/present"
	"github.com/pdiddy/papershelf/internal/saved"
	"github.com/pdiddy/papershelf/internal/search"
	"github.com/pdiddy/papershelf/internal/secrets"
	"github.com/pdiddy/papershelf/pkg/types"
)

// app holds the wired components for one invocation.
type app struct {
	cfg      types.AppConfig
	log      zerolog.Logger
	catalog  present.Catalog
	registry *prometheus.Registry
	metrics  *observability.Metrics

	store *saved.Store
	ctrl  *controller.Controller
}

var current *app

// flagKeys binds persistent flags to config keys.
var flagKeys = map[string]string{
	"log-level":     "logging.level",
	"log-format":    "logging.format",
	"locale":        "ui.locale",
	"store-backend": "store.backend",
	"store-path":    "store.path",
}

// loadApp resolves configuration and secrets and builds the logger. The
// store and controller open lazily so "version" never touches disk.
func loadApp(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	v := config.New(cfgFile)
	if err := bindFlags(v, cmd); err != nil {
		return err
	}

	used, err := config.Read(v, cfgFile != "")
	if err != nil {
		return err
	}
	cfg, err := config.Decode(v)
	if err != nil {
		return err
	}

	log := observability.NewLogger(cfg.Logging)
	if used != "" {
		log.Debug().Str("file", used).Msg("using config file")
	}

	dir, _ := cmd.Flags().GetString("secrets-dir")
	s, err := secrets.Load(dir, log)
	if err != nil {
		return err
	}
	if len(s) > 0 {
		keys := make([]string, 0, len(s))
		for k := range s {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		log.Debug().Strs("keys", keys).Msg("loaded secrets")
	}
	secrets.Apply(&cfg.Search, s)
	if cfg.Search.APIKey != "" && cfg.Search.RateLimit <= 3 {
		// NCBI raises the ceiling to 10 req/s for keyed clients.
		cfg.Search.RateLimit = 10
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	current = &app{
		cfg:      cfg,
		log:      log,
		catalog:  present.CatalogFor(cfg.UI.Locale),
		registry: reg,
		metrics:  observability.NewMetrics(reg),
	}
	return nil
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for flag, key := range flagKeys {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding --%s: %w", flag, err)
		}
	}
	return nil
}

// controller opens the saved store and wires the search pipeline.
func (a *app) controller() (*controller.Controller, error) {
	if a.ctrl != nil {
		return a.ctrl, nil
	}
	store, err := a.openStore()
	if err != nil {
		return nil, err
	}

	client := httputil.NewClient(a.cfg.Search.HTTPConfig, a.log)
	builder := search.NewQueryBuilder(a.cfg.Search.DefaultDays, a.cfg.Search.DefaultSort)

	a.ctrl = controller.New(controller.Config{
		Builder:  builder,
		Gateway:  search.NewGateway(client, a.cfg.Search, a.log),
		Fetcher:  search.NewFetcher(client, a.cfg.Search, a.catalog.Placeholders, a.log),
		Store:    store,
		Renderer: present.NewRenderer(a.catalog),
		Presets:  a.cfg.UI.RecommendedTerms,
		Metrics:  a.metrics,
		Log:      a.log,
	})
	return a.ctrl, nil
}

func (a *app) openStore() (*saved.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	kv, err := saved.OpenKV(a.cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("opening saved store: %w", err)
	}
	store, err := saved.Open(kv, a.log, saved.WithMutationHook(a.metrics.RecordSavedMutation))
	if err != nil {
		kv.Close()
		return nil, err
	}
	a.store = store
	return store, nil
}

func closeApp() {
	if current == nil || current.store == nil {
		return
	}
	if err := current.store.Close(); err != nil {
		fmt.Fprintln(os.Stderr, "closing saved store:", err)
	}
}
