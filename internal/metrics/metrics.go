// Package metrics exposes prometheus counters for analysis runs, plan
// matches and scene picks, on a private registry.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ramanasai/mindcloud/internal/logging"
)

const namespace = "mindcloud"

// Metrics holds the collectors. The zero value is not usable; a nil *Metrics
// is, and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	analyses *prometheus.CounterVec
	duration prometheus.Histogram
	terms    prometheus.Histogram
	plans    *prometheus.CounterVec
	picks    *prometheus.CounterVec
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Analysis runs by outcome (ok, empty, stale, error).",
		}, []string{"status"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Wall time of one analysis run.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
		terms: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_points",
			Help:      "Points produced per analysis run.",
			Buckets:   prometheus.LinearBuckets(0, 3, 7),
		}),
		plans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plans_matched_total",
			Help:      "Action plans returned, by category.",
		}, []string{"category"}),
		picks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "picks_total",
			Help:      "Scene clicks by outcome (hit, miss, filtered).",
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(m.analyses, m.duration, m.terms, m.plans, m.picks)
	return m
}

// RecordAnalysis counts a run and, unless it was dropped as stale, its timing.
func (m *Metrics) RecordAnalysis(status string, d time.Duration, points int) {
	if m == nil {
		return
	}
	m.analyses.WithLabelValues(status).Inc()
	if status == "stale" {
		return
	}
	m.duration.Observe(d.Seconds())
	m.terms.Observe(float64(points))
}

// RecordPlan counts one matched plan.
func (m *Metrics) RecordPlan(category string) {
	if m == nil {
		return
	}
	m.plans.WithLabelValues(category).Inc()
}

// RecordPick counts a scene click outcome.
func (m *Metrics) RecordPick(outcome string) {
	if m == nil {
		return
	}
	m.picks.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string, logger logging.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics endpoint listening", logging.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("metrics: shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics: listen %s: %w", addr, err)
	}
}
