// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package observability

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const namespace = "papershelf"

// Search outcome labels.
const (
	OutcomeEmptyQuery = "empty_query"
	OutcomeNoResults  = "no_results"
	OutcomeLoaded     = "loaded"
	OutcomeFailed     = "failed"
)

// Metrics holds the Prometheus collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	// Searches counts searches by outcome.
	Searches *prometheus.CounterVec

	// SearchDuration observes round trips that reached the network, in seconds.
	SearchDuration prometheus.Histogram

	// RecordsFetched counts records decoded from efetch.
	RecordsFetched prometheus.Counter

	// SavedMutations counts persisted saved-set changes by op.
	SavedMutations *prometheus.CounterVec
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Searches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Searches by outcome.",
		}, []string{"outcome"}),
		SearchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Duration of esearch plus efetch round trips.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}),
		RecordsFetched: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_fetched_total",
			Help:      "Records decoded from efetch responses.",
		}),
		SavedMutations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "saved_mutations_total",
			Help:      "Persisted saved-set mutations by op.",
		}, []string{"op"}),
	}
}

// RecordSearch counts a search outcome. A zero elapsed is not observed.
func (m *Metrics) RecordSearch(outcome string, records int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Searches.WithLabelValues(outcome).Inc()
	if records > 0 {
		m.RecordsFetched.Add(float64(records))
	}
	if elapsed > 0 {
		m.SearchDuration.Observe(elapsed.Seconds())
	}
}

// RecordSavedMutation counts a saved-set change.
func (m *Metrics) RecordSavedMutation(op string) {
	if m == nil {
		return
	}
	m.SavedMutations.WithLabelValues(op).Inc()
}

// Serve exposes reg on addr at /metrics until ctx is done.
func Serve(ctx context.Context, addr string, reg prometheus.Gatherer, log zerolog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("serving metrics")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
