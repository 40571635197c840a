// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package controller runs the search and bookmark workflows shared by the
// CLI and the terminal UI. It owns the currently displayed result set and
// turns every request into a display-ready outcome.
package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/papershelf/internal/observability"
	"github.com/pdiddy/papershelf/internal/present"
	"github.com/pdiddy/papershelf/internal/search"
	"github.com/pdiddy/papershelf/pkg/types"
)

// Gateway resolves a descriptor to PMIDs.
type Gateway interface {
	Search(ctx context.Context, d search.Descriptor) ([]string, error)
}

// Fetcher resolves PMIDs to records.
type Fetcher interface {
	Fetch(ctx context.Context, ids []string) ([]types.Record, error)
}

// SavedStore is the bookmark set.
type SavedStore interface {
	All() []types.Record
	Contains(id string) bool
	Add(rec types.Record) (bool, error)
	Remove(id string) (bool, error)
}

// ErrNotDisplayed is returned by Save for an id that is not in the
// current results.
var ErrNotDisplayed = errors.New("paper is not in the current results")

// Status classifies a search outcome.
type Status int

const (
	StatusEmptyQuery Status = iota
	StatusNoResults
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusEmptyQuery:
		return observability.OutcomeEmptyQuery
	case StatusNoResults:
		return observability.OutcomeNoResults
	case StatusLoaded:
		return observability.OutcomeLoaded
	case StatusFailed:
		return observability.OutcomeFailed
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// SearchInput is the raw form input.
type SearchInput struct {
	Term     string
	DaysBack string
	Sort     string
}

// Outcome is the result of one search.
type Outcome struct {
	Status  Status
	Message string
	Cards   []present.Card
	Records []types.Record

	// Descriptor is the query that ran. It is zero for StatusEmptyQuery.
	Descriptor search.Descriptor

	// Generation numbers searches in submission order. Stale is set when a
	// later search started before this one finished; a stale outcome did not
	// replace the displayed results.
	Generation uint64
	Stale      bool

	// Err is the upstream failure behind StatusFailed.
	Err error
}

// Controller coordinates searches and the saved set. It is safe for
// concurrent use.
type Controller struct {
	builder  *search.QueryBuilder
	gateway  Gateway
	fetcher  Fetcher
	store    SavedStore
	renderer *present.Renderer
	presets  []string
	metrics  *observability.Metrics
	log      zerolog.Logger

	mu         sync.Mutex
	generation uint64
	results    []types.Record
}

// Config wires a Controller.
type Config struct {
	Builder  *search.QueryBuilder
	Gateway  Gateway
	Fetcher  Fetcher
	Store    SavedStore
	Renderer *present.Renderer
	Presets  []string
	Metrics  *observability.Metrics
	Log      zerolog.Logger
}

// New returns a Controller. Builder and Renderer default when nil.
func New(cfg Config) *Controller {
	if cfg.Builder == nil {
		cfg.Builder = search.NewQueryBuilder(search.DefaultDaysBack, string(search.SortPubDate))
	}
	if cfg.Renderer == nil {
		cfg.Renderer = present.NewRenderer(present.CatalogFor(""))
	}
	return &Controller{
		builder:  cfg.Builder,
		gateway:  cfg.Gateway,
		fetcher:  cfg.Fetcher,
		store:    cfg.Store,
		renderer: cfg.Renderer,
		presets:  append([]string(nil), cfg.Presets...),
		metrics:  cfg.Metrics,
		log:      cfg.Log.With().Str("component", "controller").Logger(),
	}
}

// Catalog returns the active message catalog.
func (c *Controller) Catalog() present.Catalog { return c.renderer.Catalog() }

// Renderer returns the card renderer.
func (c *Controller) Renderer() *present.Renderer { return c.renderer }

// Search runs one search. An empty term never reaches the network. A
// search with no ids skips the fetch. Upstream errors are logged and
// reported with the generic failure message.
func (c *Controller) Search(ctx context.Context, in SearchInput) Outcome {
	cat := c.renderer.Catalog()

	term := strings.TrimSpace(in.Term)
	if term == "" {
		c.metrics.RecordSearch(observability.OutcomeEmptyQuery, 0, 0)
		return Outcome{Status: StatusEmptyQuery, Message: cat.EmptyQuery}
	}

	gen := c.begin()
	d := c.builder.Build(term, in.DaysBack, in.Sort)
	start := time.Now()

	log := c.log.With().Uint64("generation", gen).Str("term", d.Term).Logger()

	out := Outcome{Descriptor: d, Generation: gen}

	ids, err := c.gateway.Search(ctx, d)
	if err != nil {
		return c.fail(log, out, err, start)
	}
	if len(ids) == 0 {
		out.Status = StatusNoResults
		out.Message = cat.NoResults
		return c.finish(out, nil, start)
	}

	records, err := c.fetcher.Fetch(ctx, ids)
	if err != nil {
		return c.fail(log, out, err, start)
	}

	log.Debug().Int("ids", len(ids)).Int("records", len(records)).Msg("search loaded")

	out.Status = StatusLoaded
	out.Message = cat.Loaded(len(records))
	out.Records = records
	out.Cards = c.renderer.SearchCards(records, c.store.Contains)
	return c.finish(out, records, start)
}

func (c *Controller) fail(log zerolog.Logger, out Outcome, err error, start time.Time) Outcome {
	log.Error().Err(err).Msg("search failed")
	out.Status = StatusFailed
	out.Message = c.renderer.Catalog().Failed
	out.Err = err
	return c.finish(out, nil, start)
}

func (c *Controller) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	return c.generation
}

// finish installs records as the displayed results unless a newer search
// has started.
func (c *Controller) finish(out Outcome, records []types.Record, start time.Time) Outcome {
	c.mu.Lock()
	if out.Generation != c.generation {
		out.Stale = true
	} else {
		c.results = records
	}
	c.mu.Unlock()

	if out.Stale {
		c.log.Debug().Uint64("generation", out.Generation).Msg("dropping stale search outcome")
	}
	c.metrics.RecordSearch(out.Status.String(), len(records), time.Since(start))
	return out
}

// Presets returns the recommended search terms.
func (c *Controller) Presets() []string {
	return append([]string(nil), c.presets...)
}

// Preset searches recommended term i with the other fields of in.
func (c *Controller) Preset(ctx context.Context, i int, in SearchInput) (Outcome, error) {
	if i < 0 || i >= len(c.presets) {
		return Outcome{}, fmt.Errorf("preset %d out of range (have %d)", i, len(c.presets))
	}
	in.Term = c.presets[i]
	return c.Search(ctx, in), nil
}

// Results re-renders the displayed results against the current saved set.
func (c *Controller) Results() []present.Card {
	c.mu.Lock()
	records := c.results
	c.mu.Unlock()
	return c.renderer.SearchCards(records, c.store.Contains)
}

// Save bookmarks the displayed record with id.
func (c *Controller) Save(id string) (present.SavedView, error) {
	rec, ok := c.displayed(id)
	if !ok {
		return c.SavedList(), fmt.Errorf("saving %s: %w", id, ErrNotDisplayed)
	}
	if _, err := c.store.Add(rec); err != nil {
		return c.SavedList(), fmt.Errorf("saving %s: %w", id, err)
	}
	return c.SavedList(), nil
}

func (c *Controller) displayed(id string) (types.Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range c.results {
		if r.ID == id {
			return r, true
		}
	}
	return types.Record{}, false
}

// Remove deletes id from the saved set.
func (c *Controller) Remove(id string) (present.SavedView, error) {
	if _, err := c.store.Remove(id); err != nil {
		return c.SavedList(), fmt.Errorf("removing %s: %w", id, err)
	}
	return c.SavedList(), nil
}

// SavedList renders the saved set.
func (c *Controller) SavedList() present.SavedView {
	return c.renderer.SavedList(c.store.All())
}

// Bookmark fetches ids and saves every record returned. It reports the
// records that were newly added.
func (c *Controller) Bookmark(ctx context.Context, ids []string) ([]types.Record, error) {
	records, err := c.fetcher.Fetch(ctx, ids)
	if err != nil {
		return nil, err
	}
	var added []types.Record
	// Reverse so the first id ends up newest.
	for i := len(records) - 1; i >= 0; i-- {
		ok, err := c.store.Add(records[i])
		if err != nil {
			return added, err
		}
		if ok {
			added = append(added, records[i])
		}
	}
	return added, nil
}
